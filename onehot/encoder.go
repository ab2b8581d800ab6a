package onehot

import "cmp"
import "fmt"
import "slices"
import "strings"

// Encoder is the vocabulary captured by Prep. It re-encodes raw rows exactly the
// way the training rows were encoded.
type Encoder struct {
	// Columns is the width of a raw row, label included.
	Columns int `json:"columns"`

	// Kept holds the raw column index of every encoded feature column.
	Kept []int `json:"kept"`

	// Label is the group of the label column, index = class.
	Label []string `json:"label"`

	// Features holds the group of every kept feature column.
	Features [][]string `json:"features"`

	Unknown UnknownPolicy `json:"unknown"`
}

// Validate checks that the vocabulary is consistent, so that Index cannot
// fail on anything but the row it is given.
func (e *Encoder) Validate() error {
	if e.Columns <= LabelWidth {
		return fmt.Errorf("%d columns: %w", e.Columns, ErrEncoder)
	}
	if len(e.Kept) == 0 || len(e.Kept) != len(e.Features) {
		return fmt.Errorf("%d kept columns for %d feature groups: %w", len(e.Kept), len(e.Features), ErrEncoder)
	}
	if !increasing(e.Kept) || e.Kept[0] < LabelWidth || e.Kept[len(e.Kept)-1] >= e.Columns {
		return fmt.Errorf("kept columns %v outside [%d,%d): %w", e.Kept, LabelWidth, e.Columns, ErrEncoder)
	}
	if len(e.Label) < 2 || !increasing(e.Label) {
		return fmt.Errorf("label group %q: %w", e.Label, ErrEncoder)
	}
	for c, group := range e.Features {
		if len(group) == 0 || !increasing(group) {
			return fmt.Errorf("group of column %d %q: %w", e.Kept[c], group, ErrEncoder)
		}
	}
	if _, err := ParseUnknownPolicy(string(e.Unknown)); err != nil {
		return err
	}
	return nil
}

// increasing reports whether s is sorted without duplicates.
func increasing[T cmp.Ordered](s []T) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] >= s[i] {
			return false
		}
	}
	return true
}

// Counts returns the feature group cardinalities.
func (e *Encoder) Counts() []int {
	return Counts(e.Features)
}

// Width is the length of an encoded feature vector.
func (e *Encoder) Width() (o int) {
	for _, f := range e.Features {
		o += len(f)
	}
	return
}

// Classes is the number of label values.
func (e *Encoder) Classes() int {
	return len(e.Label)
}

// feature picks the raw token for kept feature column c. Rows may be full width
// (label first) or feature width (label omitted).
func (e *Encoder) feature(raw []string, c int) string {
	col := e.Kept[c]
	if len(raw) == e.Columns-1 {
		col--
	}
	return strings.TrimSpace(raw[col])
}

// Index encodes a raw row into feature positions. Unknown tokens become -1
// under ZeroSegment, and an *UnknownTokenError otherwise.
func (e *Encoder) Index(raw []string) ([]int, error) {
	if len(raw) != e.Columns && len(raw) != e.Columns-1 {
		return nil, fmt.Errorf("row has %d columns, want %d or %d: %w", len(raw), e.Columns, e.Columns-1, ErrWidth)
	}
	o := make([]int, len(e.Kept))
	for c := range e.Kept {
		tok := e.feature(raw, c)
		i, ok := slices.BinarySearch(e.Features[c], tok)
		if !ok {
			if e.Unknown == ZeroSegment {
				o[c] = -1
				continue
			}
			return nil, &UnknownTokenError{Column: e.Kept[c], Token: tok}
		}
		o[c] = i
	}
	return o, nil
}

// Encode encodes a raw row into a one-hot feature vector.
func (e *Encoder) Encode(raw []string) ([]float64, error) {
	ixs, err := e.Index(raw)
	if err != nil {
		return nil, err
	}
	return OneToMany(ixs, e.Counts()), nil
}

// LabelIndex returns the class of a raw label token.
func (e *Encoder) LabelIndex(tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	i, ok := slices.BinarySearch(e.Label, tok)
	if !ok {
		return -1, &UnknownTokenError{Column: 0, Token: tok}
	}
	return i, nil
}

// LabelOf returns the raw label token of a class.
func (e *Encoder) LabelOf(class int) (string, error) {
	if class < 0 || class >= len(e.Label) {
		return "", fmt.Errorf("onehot: class %d out of range [0,%d)", class, len(e.Label))
	}
	return e.Label[class], nil
}
