package onehot

import "errors"
import "strconv"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func stringFixture() [][]string {
	rows := make([][]string, len(fixture))
	for i, row := range fixture {
		for _, v := range row {
			rows[i] = append(rows[i], strconv.Itoa(v))
		}
	}
	return rows
}

func TestPrep(t *testing.T) {
	p, err := Prep(stringFixture(), WithThreads(2))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, p.Labels)
	assert.Equal(t, []int{2, 3, 3, 2, 3}, p.Counts)
	assert.Equal(t, [][]float64{
		{0, 1, 0, 0, 1, 0, 0, 1, 1, 0, 0, 0, 1},
		{1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 1, 0},
		{1, 0, 1, 0, 0, 1, 0, 0, 1, 0, 1, 0, 0},
	}, p.Inputs)

	enc := p.Encoder
	assert.Equal(t, 7, enc.Columns)
	assert.Equal(t, []int{1, 2, 4, 5, 6}, enc.Kept)
	assert.Equal(t, []string{"1", "2", "3"}, enc.Label)
	assert.Equal(t, 13, enc.Width())
	assert.Equal(t, 3, enc.Classes())
	assert.Equal(t, Reject, enc.Unknown)
}

func TestPrepEncoderReproducesTrainingRows(t *testing.T) {
	rows := stringFixture()
	p, err := Prep(rows)
	require.NoError(t, err)
	for i, row := range rows {
		full, err := p.Encoder.Encode(row)
		require.NoError(t, err)
		assert.Equal(t, p.Inputs[i], full)

		short, err := p.Encoder.Encode(row[1:])
		require.NoError(t, err)
		assert.Equal(t, p.Inputs[i], short)

		class, err := p.Encoder.LabelIndex(row[0])
		require.NoError(t, err)
		assert.Equal(t, p.Labels[i], class)
		label, err := p.Encoder.LabelOf(class)
		require.NoError(t, err)
		assert.Equal(t, row[0], label)
	}
}

func TestEncoderUnknownToken(t *testing.T) {
	p, err := Prep(stringFixture())
	require.NoError(t, err)
	row := []string{"1", "9", "3", "4", "5", "4", "6"}

	_, err = p.Encoder.Encode(row)
	var unknown *UnknownTokenError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, 1, unknown.Column)
	assert.Equal(t, "9", unknown.Token)

	_, err = p.Encoder.Encode([]string{"2", "3", "4", "5", "4", "x"})
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, 6, unknown.Column, "raw column, also for rows without the label")

	_, err = p.Encoder.LabelIndex("7")
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, 0, unknown.Column)

	p.Encoder.Unknown = ZeroSegment
	vec, err := p.Encoder.Encode(row)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 0, 1}, vec)
}

func TestEncoderWidth(t *testing.T) {
	p, err := Prep(stringFixture())
	require.NoError(t, err)
	_, err = p.Encoder.Encode([]string{"1", "2"})
	assert.ErrorIs(t, err, ErrWidth)
	_, err = p.Encoder.LabelOf(3)
	assert.Error(t, err)
	_, err = p.Encoder.LabelIndex("7")
	assert.Error(t, err)
}

func TestEncoderValidate(t *testing.T) {
	p, err := Prep(stringFixture())
	require.NoError(t, err)
	require.NoError(t, p.Encoder.Validate())

	tests := map[string]func(e *Encoder){
		"kept and groups differ": func(e *Encoder) { e.Kept = e.Kept[:4] },
		"kept out of range":      func(e *Encoder) { e.Kept[4] = 7 },
		"kept the label column":  func(e *Encoder) { e.Kept[0] = 0 },
		"kept not increasing":    func(e *Encoder) { e.Kept[0], e.Kept[1] = e.Kept[1], e.Kept[0] },
		"unsorted group":         func(e *Encoder) { e.Features[1] = []string{"3", "1"} },
		"duplicate in group":     func(e *Encoder) { e.Features[1] = []string{"1", "1"} },
		"empty group":            func(e *Encoder) { e.Features[1] = nil },
		"single label":           func(e *Encoder) { e.Label = []string{"1"} },
		"no columns":             func(e *Encoder) { e.Columns = 1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := Prep(stringFixture())
			require.NoError(t, err)
			mutate(p.Encoder)
			assert.ErrorIs(t, p.Encoder.Validate(), ErrEncoder)
		})
	}

	p.Encoder.Unknown = "guess"
	assert.ErrorIs(t, p.Encoder.Validate(), ErrUnknownPolicy)
}

func TestPrepErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want error
	}{
		{"empty", nil, ErrEmpty},
		{"ragged", [][]string{{"a", "b"}, {"a"}}, ErrRagged},
		{"label only", [][]string{{"a"}, {"b"}}, ErrNoFeatures},
		{"single class", [][]string{{"p", "x"}, {"p", "y"}}, ErrSingleClass},
		{"no informative features", [][]string{{"p", "x"}, {"e", "x"}}, ErrNoFeatures},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Prep(tt.rows)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseUnknownPolicy(t *testing.T) {
	p, err := ParseUnknownPolicy("")
	require.NoError(t, err)
	assert.Equal(t, Reject, p)
	p, err = ParseUnknownPolicy(" Zero ")
	require.NoError(t, err)
	assert.Equal(t, ZeroSegment, p)
	_, err = ParseUnknownPolicy("bucket")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}
