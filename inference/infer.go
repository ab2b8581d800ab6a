// Package inference classifies raw rows with a trained model
package inference

import "errors"
import "fmt"

import "github.com/neurlang/mushroom/net/feedforward"
import "github.com/neurlang/mushroom/onehot"
import "github.com/neurlang/mushroom/parallel"

// ErrModel is returned for a model whose network does not fit its encoder.
var ErrModel = errors.New("inference: network and encoder disagree")

// Model is a trained network together with the vocabulary its inputs were encoded with.
type Model struct {
	Net     *feedforward.FeedforwardNetwork `json:"network"`
	Encoder *onehot.Encoder                 `json:"encoder"`
}

// Check verifies that the encoder is consistent and that the network accepts
// its vectors and predicts its classes.
func (m *Model) Check() error {
	if m.Net == nil || m.Encoder == nil {
		return fmt.Errorf("incomplete model: %w", ErrModel)
	}
	if err := m.Encoder.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrModel, err)
	}
	if m.Net.Indim() != m.Encoder.Width() {
		return fmt.Errorf("network takes %d inputs, encoder produces %d: %w", m.Net.Indim(), m.Encoder.Width(), ErrModel)
	}
	if m.Net.Outdim() != m.Encoder.Classes() {
		return fmt.Errorf("network has %d outputs, encoder has %d classes: %w", m.Net.Outdim(), m.Encoder.Classes(), ErrModel)
	}
	return nil
}

// Classify encodes a raw row and returns the class activation vector.
func (m *Model) Classify(raw []string) ([]float64, error) {
	in, err := m.Encoder.Encode(raw)
	if err != nil {
		return nil, err
	}
	return m.Net.Activate(in)
}

// Predict returns the raw label token of the most active class, with the activations.
func (m *Model) Predict(raw []string) (string, []float64, error) {
	act, err := m.Classify(raw)
	if err != nil {
		return "", nil, err
	}
	label, err := m.Encoder.LabelOf(feedforward.Argmax(act))
	if err != nil {
		return "", nil, err
	}
	return label, act, nil
}

// ClassifyAll classifies rows concurrently. The first failing row, by index, fails the call.
func (m *Model) ClassifyAll(rows [][]string, threads int) ([][]float64, error) {
	o := make([][]float64, len(rows))
	err := parallel.ForEachErr(len(rows), threads, func(i int) error {
		act, err := m.Classify(rows[i])
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		o[i] = act
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}
