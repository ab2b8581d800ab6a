package onehot

import "cmp"
import "slices"

// CollectGroups transposes rows into columns and returns the distinct values of
// each column sorted ascending. Like zip, only the columns present in every row
// are collected.
func CollectGroups[T cmp.Ordered](rows [][]T) [][]T {
	if len(rows) == 0 {
		return nil
	}
	width := len(rows[0])
	for _, row := range rows[1:] {
		width = min(width, len(row))
	}
	groups := make([][]T, width)
	for c := range groups {
		seen := make(map[T]struct{})
		group := make([]T, 0, 8)
		for _, row := range rows {
			if _, ok := seen[row[c]]; ok {
				continue
			}
			seen[row[c]] = struct{}{}
			group = append(group, row[c])
		}
		slices.Sort(group)
		groups[c] = group
	}
	return groups
}

// SingletonIndices returns, ascending, the indices of groups holding fewer than two values.
func SingletonIndices[T any](groups [][]T) (o []int) {
	o = []int{}
	for i, group := range groups {
		if len(group) < 2 {
			o = append(o, i)
		}
	}
	return o
}

// RemoveIndices returns a copy of ls without the elements at ixs. ls is not modified
// and ixs may be in any order; indices out of range are ignored.
func RemoveIndices[T any](ls []T, ixs []int) []T {
	drop := make(map[int]struct{}, len(ixs))
	for _, i := range ixs {
		drop[i] = struct{}{}
	}
	o := make([]T, 0, len(ls))
	for i, v := range ls {
		if _, ok := drop[i]; !ok {
			o = append(o, v)
		}
	}
	return o
}

// Counts returns the cardinality of each group.
func Counts[T any](groups [][]T) []int {
	o := make([]int, len(groups))
	for i, group := range groups {
		o[i] = len(group)
	}
	return o
}
