package learning

import "errors"
import "fmt"

import "go.uber.org/zap"

// HyperParameters configure the network shape and the backpropagation run.
type HyperParameters struct {
	Hidden int // hidden layer width, 0 means half the input width

	Epochs int // number of passes over the training set

	LearningRate float64
	Momentum     float64
	WeightDecay  float64

	TestProportion float64 // share of every class held out for testing, in (0,1)

	Seed    int64 // seed for weight init, split and shuffling, 0 means time based
	Shuffle bool  // visit training samples in a new random order every epoch

	Threads int // goroutines used for evaluation, 0 means one per core

	l *zap.Logger
}

// Defaults returns the hyperparameters of the reference training run.
func Defaults() HyperParameters {
	return HyperParameters{
		Epochs:         20,
		LearningRate:   0.1,
		TestProportion: 0.25,
		Shuffle:        true,
	}
}

// SetLogger sets the logger receiving per-epoch diagnostics
func (h *HyperParameters) SetLogger(l *zap.Logger) {
	h.l = l
}

// Logger returns the configured logger, a no-op logger if none was set
func (h *HyperParameters) Logger() *zap.Logger {
	if h.l == nil {
		return zap.NewNop()
	}
	return h.l
}

// HiddenFor resolves the hidden layer width for the given input width.
func (h *HyperParameters) HiddenFor(indim int) int {
	if h.Hidden > 0 {
		return h.Hidden
	}
	return max(1, indim/2)
}

var ErrHyperParameters = errors.New("learning: invalid hyperparameters")

// Validate reports the first out-of-range value.
func (h *HyperParameters) Validate() error {
	switch {
	case h.Hidden < 0:
		return fmt.Errorf("hidden %d: %w", h.Hidden, ErrHyperParameters)
	case h.Epochs < 0:
		return fmt.Errorf("epochs %d: %w", h.Epochs, ErrHyperParameters)
	case h.LearningRate <= 0:
		return fmt.Errorf("learning rate %g: %w", h.LearningRate, ErrHyperParameters)
	case h.Momentum < 0 || h.Momentum >= 1:
		return fmt.Errorf("momentum %g: %w", h.Momentum, ErrHyperParameters)
	case h.WeightDecay < 0:
		return fmt.Errorf("weight decay %g: %w", h.WeightDecay, ErrHyperParameters)
	case h.TestProportion <= 0 || h.TestProportion >= 1:
		return fmt.Errorf("test proportion %g: %w", h.TestProportion, ErrHyperParameters)
	case h.Threads < 0:
		return fmt.Errorf("threads %d: %w", h.Threads, ErrHyperParameters)
	}
	return nil
}
