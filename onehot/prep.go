package onehot

import "fmt"

import "github.com/neurlang/mushroom/parallel"

// LabelWidth is the number of leading columns treated as the label.
const LabelWidth = 1

// Prepared is the encoded dataset together with the vocabulary that produced it.
type Prepared struct {
	// Inputs are the one-hot feature rows.
	Inputs [][]float64

	// Labels holds the class of every row.
	Labels []int

	// Counts are the feature group cardinalities, in feature column order.
	Counts []int

	Encoder *Encoder
}

type options struct {
	unknown UnknownPolicy
	threads int
}

// Option configures Prep.
type Option func(*options)

// WithUnknownPolicy sets the policy stored in the resulting Encoder.
func WithUnknownPolicy(p UnknownPolicy) Option {
	return func(o *options) { o.unknown = p }
}

// WithThreads bounds the goroutines used to expand rows.
func WithThreads(n int) Option {
	return func(o *options) { o.threads = n }
}

// Prep encodes raw rows: it collects the groups, drops singleton columns,
// index-encodes the rows, splits off the label column and expands the
// features into one-hot rows.
func Prep(rows [][]string, opts ...Option) (*Prepared, error) {
	o := options{unknown: Reject}
	for _, opt := range opts {
		opt(&o)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	columns := len(rows[0])
	for i, row := range rows {
		if len(row) != columns {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), columns, ErrRagged)
		}
	}
	if columns <= LabelWidth {
		return nil, ErrNoFeatures
	}

	groups := CollectGroups(rows)
	singletons := SingletonIndices(groups)
	if len(singletons) > 0 && singletons[0] < LabelWidth {
		return nil, ErrSingleClass
	}

	reduced := make([][]string, len(rows))
	for i, row := range rows {
		reduced[i] = RemoveIndices(row, singletons)
	}
	groups = RemoveIndices(groups, singletons)
	if len(groups) <= LabelWidth {
		return nil, ErrNoFeatures
	}

	ixs, err := Indices(reduced, groups)
	if err != nil {
		return nil, err
	}
	features, ys := SplitData(ixs, LabelWidth)

	var kept []int
	for c := 0; c < columns; c++ {
		kept = append(kept, c)
	}
	kept = RemoveIndices(kept, singletons)[LabelWidth:]

	enc := &Encoder{
		Columns:  columns,
		Kept:     kept,
		Label:    groups[0],
		Features: groups[LabelWidth:],
		Unknown:  o.unknown,
	}
	p := &Prepared{
		Inputs:  make([][]float64, len(features)),
		Labels:  make([]int, len(ys)),
		Counts:  enc.Counts(),
		Encoder: enc,
	}
	parallel.ForEach(len(features), o.threads, func(i int) {
		p.Inputs[i] = OneToMany(features[i], p.Counts)
		p.Labels[i] = ys[i][0]
	})
	return p, nil
}
