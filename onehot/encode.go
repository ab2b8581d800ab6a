package onehot

import "cmp"
import "fmt"
import "slices"

// Indices replaces every token with its position in the group of its column.
// Each row must be exactly as wide as groups.
func Indices[T cmp.Ordered](rows [][]T, groups [][]T) ([][]int, error) {
	o := make([][]int, len(rows))
	for r, row := range rows {
		if len(row) != len(groups) {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", r, len(row), len(groups), ErrWidth)
		}
		ixs := make([]int, len(row))
		for c, word := range row {
			i, ok := slices.BinarySearch(groups[c], word)
			if !ok {
				return nil, &UnknownTokenError{Column: c, Token: fmt.Sprint(word)}
			}
			ixs[c] = i
		}
		o[r] = ixs
	}
	return o, nil
}

// Decode maps positions back to the tokens of their groups.
func Decode[T any](row []int, groups [][]T) ([]T, error) {
	if len(row) != len(groups) {
		return nil, fmt.Errorf("row has %d columns, want %d: %w", len(row), len(groups), ErrWidth)
	}
	o := make([]T, len(row))
	for c, i := range row {
		if i < 0 || i >= len(groups[c]) {
			return nil, fmt.Errorf("index %d out of range for column %d of %d values", i, c, len(groups[c]))
		}
		o[c] = groups[c][i]
	}
	return o, nil
}

// SplitData separates the first ywidth columns (the outputs) from the rest (the inputs).
func SplitData[T any](mix [][]T, ywidth int) (inputs, ys [][]T) {
	inputs = make([][]T, len(mix))
	ys = make([][]T, len(mix))
	for i, row := range mix {
		w := min(ywidth, len(row))
		ys[i] = row[:w:w]
		inputs[i] = row[w:]
	}
	return
}

// OneToMany expands a row of positions into concatenated one-hot segments, one
// per column, sized by groupCounts. A position outside its segment (such as -1)
// leaves the segment all zero.
func OneToMany(row []int, groupCounts []int) []float64 {
	n := min(len(row), len(groupCounts))
	var width int
	for _, gc := range groupCounts[:n] {
		width += gc
	}
	o := make([]float64, width)
	var base int
	for c := 0; c < n; c++ {
		if row[c] >= 0 && row[c] < groupCounts[c] {
			o[base+row[c]] = 1
		}
		base += groupCounts[c]
	}
	return o
}
