package trainer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/neurlang/mushroom/datasets"
	"github.com/neurlang/mushroom/inference"
	"github.com/neurlang/mushroom/learning"
	"github.com/neurlang/mushroom/metrics"
	"github.com/neurlang/mushroom/net/feedforward"
	"github.com/neurlang/mushroom/onehot"
)

// ErrNoTrainingData is returned when the split leaves no training samples.
var ErrNoTrainingData = errors.New("trainer: no training samples")

// ErrNoTestData is returned when the split leaves no test samples. Test error
// selects the checkpoint, so training without a test set is refused.
var ErrNoTestData = errors.New("trainer: no test samples")

// Learner trains a network in place, a number of epochs at a time, and
// returns the mean loss of the last epoch.
type Learner interface {
	TrainEpochs(n int) (float64, error)
}

// NewLearnerFunc creates the Learner for a network and its training set.
type NewLearnerFunc func(net *feedforward.FeedforwardNetwork, train datasets.Dataset, h learning.HyperParameters, rng *rand.Rand) Learner

// Backprop is the default NewLearnerFunc.
func Backprop(net *feedforward.FeedforwardNetwork, train datasets.Dataset, h learning.HyperParameters, rng *rand.Rand) Learner {
	return learning.NewBackprop(net, train, h, rng)
}

type options struct {
	newLearner NewLearnerFunc
	dstmodel   string
	resume     *inference.Model
	metrics    *metrics.Training
	progress   func(EpochReport)
	log        *zap.Logger
}

// Option configures Train.
type Option func(*options)

// WithLearner replaces the backpropagation learner.
func WithLearner(f NewLearnerFunc) Option {
	return func(o *options) { o.newLearner = f }
}

// WithCheckpoint writes the model to path whenever the test error reaches a new low.
func WithCheckpoint(path string) Option {
	return func(o *options) { o.dstmodel = path }
}

// WithResume continues training the network of a saved model.
func WithResume(m *inference.Model) Option {
	return func(o *options) { o.resume = m }
}

// WithMetrics records every epoch on m.
func WithMetrics(m *metrics.Training) Option {
	return func(o *options) { o.metrics = m }
}

// WithProgress calls fn after every epoch.
func WithProgress(fn func(EpochReport)) Option {
	return func(o *options) { o.progress = fn }
}

// WithLogger sets the logger for per-epoch lines.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// Train trains a classifier on the prepared dataset. It holds out
// h.TestProportion of every class for testing, trains h.Epochs epochs and
// returns the final model with one report per epoch. When ctx is cancelled
// between epochs, the model trained so far is returned together with ctx's error.
func Train(ctx context.Context, p *onehot.Prepared, h learning.HyperParameters, opts ...Option) (*inference.Model, []EpochReport, error) {
	o := options{newLearner: Backprop, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := h.Validate(); err != nil {
		return nil, nil, err
	}
	h.SetLogger(o.log)
	if o.resume != nil && !sameVocabulary(o.resume.Encoder, p.Encoder) {
		return nil, nil, ErrResume
	}

	seed := h.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ds := datasets.New(p.Inputs, p.Labels)
	test, train := datasets.SplitWithProportion(ds, h.TestProportion, rng)
	if len(train) == 0 {
		return nil, nil, ErrNoTrainingData
	}
	if len(test) == 0 {
		return nil, nil, ErrNoTestData
	}

	indim := p.Encoder.Width()
	model := &inference.Model{Encoder: p.Encoder}
	if o.resume != nil {
		model.Net = o.resume.Net
		o.log.Info("resuming", zap.Int("parameters", model.Net.Len()))
	} else {
		net, err := feedforward.New(indim, h.HiddenFor(indim), p.Encoder.Classes(), rng)
		if err != nil {
			return nil, nil, err
		}
		model.Net = net
	}
	if err := model.Check(); err != nil {
		return nil, nil, err
	}

	o.log.Info("training",
		zap.Int("indim", indim),
		zap.Int("hidden", hiddenWidth(model.Net)),
		zap.Int("outdim", model.Net.Outdim()),
		zap.Int("train", len(train)),
		zap.Int("test", len(test)),
		zap.Int64("seed", seed))

	learner := o.newLearner(model.Net, train, h, rng)
	evaluate := NewEvaluateFunc(model.Net, h.Threads)
	best := -1.0

	step := func(e int) (r EpochReport, err error) {
		start := time.Now()
		if r.Loss, err = learner.TrainEpochs(1); err != nil {
			return r, err
		}
		trainTally, err := evaluate(train)
		if err != nil {
			return r, err
		}
		testTally, err := evaluate(test)
		if err != nil {
			return r, err
		}
		r.Epoch = e
		r.TrainError = trainTally.PercentError()
		r.TestError = testTally.PercentError()
		r.Confusion = testTally.Confusion()

		o.log.Debug("epoch",
			zap.Int("epoch", e),
			zap.Float64("train_error", r.TrainError),
			zap.Float64("test_error", r.TestError),
			zap.Float64("loss", r.Loss))
		if o.metrics != nil {
			o.metrics.ObserveEpoch(e, r.TrainError, r.TestError, r.Loss, len(train), time.Since(start))
		}
		if o.dstmodel != "" && (best < 0 || r.TestError < best) {
			best = r.TestError
			if err := model.SaveFile(o.dstmodel); err != nil {
				return r, fmt.Errorf("checkpoint: %w", err)
			}
			o.log.Debug("checkpoint", zap.String("path", o.dstmodel), zap.Float64("test_error", best))
		}
		if o.progress != nil {
			o.progress(r)
		}
		return r, nil
	}

	reports, err := NewLoopFunc(1, h.Epochs, step)(ctx)
	return model, reports, err
}

// hiddenWidth is the output width of the first layer, 0 for a network without
// hidden layers.
func hiddenWidth(net *feedforward.FeedforwardNetwork) int {
	if net.LenLayers() < 2 {
		return 0
	}
	_, out := net.GetLayer(0).Dims()
	return out
}
