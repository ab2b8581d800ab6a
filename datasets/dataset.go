// Package datasets implements the labelled sample sets fed to the classifier
package datasets

import "math/rand"
import "sort"

// Sample is one encoded row: a feature vector and its class.
type Sample struct {
	Input []float64
	Class int
}

// Dataset is an ordered set of samples.
type Dataset []Sample

// New pairs feature rows with their classes. Both slices must have the same length.
func New(inputs [][]float64, classes []int) Dataset {
	d := make(Dataset, min(len(inputs), len(classes)))
	for i := range d {
		d[i] = Sample{Input: inputs[i], Class: classes[i]}
	}
	return d
}

// Indim is the feature vector length, 0 for an empty dataset.
func (d Dataset) Indim() int {
	if len(d) == 0 {
		return 0
	}
	return len(d[0].Input)
}

// Classes returns the expected class of every sample.
func (d Dataset) Classes() []int {
	o := make([]int, len(d))
	for i, s := range d {
		o[i] = s.Class
	}
	return o
}

// SplitDataset splits dataset into one subset per class
func SplitDataset(d Dataset) map[int]Dataset {
	o := make(map[int]Dataset)
	for _, s := range d {
		o[s.Class] = append(o[s.Class], s)
	}
	return o
}

// SplitWithProportion randomly splits d so that first holds proportion p of
// every class and second holds the rest. Classes are visited in ascending order,
// so a seeded rng gives a reproducible split.
func SplitWithProportion(d Dataset, p float64, rng *rand.Rand) (first, second Dataset) {
	byClass := SplitDataset(d)
	classes := make([]int, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	for _, c := range classes {
		set := byClass[c]
		rng.Shuffle(len(set), func(i, j int) { set[i], set[j] = set[j], set[i] })
		n := int(p*float64(len(set)) + 0.5)
		n = max(0, min(n, len(set)))
		first = append(first, set[:n]...)
		second = append(second, set[n:]...)
	}
	rng.Shuffle(len(first), func(i, j int) { first[i], first[j] = first[j], first[i] })
	rng.Shuffle(len(second), func(i, j int) { second[i], second[j] = second[j], second[i] })
	return
}
