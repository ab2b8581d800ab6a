package parallel

import "runtime"

import "github.com/klauspost/cpuid/v2"

// Threads reports the default worker count: physical cores when cpuid can
// detect them, the logical CPU count otherwise. Never returns less than 1.
func Threads() int {
	if cpuid.CPU.PhysicalCores > 0 {
		return cpuid.CPU.PhysicalCores
	}
	if cpuid.CPU.LogicalCores > 0 {
		return cpuid.CPU.LogicalCores
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// CPU describes the host processor for startup logging.
func CPU() (brand string, avx2 bool) {
	return cpuid.CPU.BrandName, cpuid.CPU.Supports(cpuid.AVX2)
}
