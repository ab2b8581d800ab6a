package trainer

import "errors"
import "os"
import "slices"

import "github.com/neurlang/mushroom/inference"
import "github.com/neurlang/mushroom/onehot"

// ErrResume is returned when a saved model was trained on a different vocabulary.
var ErrResume = errors.New("trainer: saved model does not match the dataset vocabulary")

// Resume loads the model at dstmodel when resume is set. A missing file is not
// an error: training then starts from scratch.
func Resume(resume bool, dstmodel string) (*inference.Model, error) {
	if !resume || dstmodel == "" {
		return nil, nil
	}
	m, err := inference.LoadFile(dstmodel)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return m, err
}

// sameVocabulary reports whether two encoders encode rows identically.
func sameVocabulary(a, b *onehot.Encoder) bool {
	return a.Columns == b.Columns &&
		slices.Equal(a.Kept, b.Kept) &&
		slices.Equal(a.Label, b.Label) &&
		slices.EqualFunc(a.Features, b.Features, func(x, y []string) bool { return slices.Equal(x, y) })
}
