package learning

import "math/rand"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/neurlang/mushroom/datasets"
import "github.com/neurlang/mushroom/net/feedforward"

// xor in one-hot form: two binary columns, each as a two-wide segment
func xorSet() datasets.Dataset {
	var inputs [][]float64
	var classes []int
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			in := make([]float64, 4)
			in[a] = 1
			in[2+b] = 1
			inputs = append(inputs, in)
			classes = append(classes, a^b)
		}
	}
	return datasets.New(inputs, classes)
}

func TestBackpropLearnsXor(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	net, err := feedforward.New(4, 4, 2, rng)
	require.NoError(t, err)

	h := Defaults()
	h.LearningRate = 0.5
	h.Momentum = 0.5
	b := NewBackprop(net, xorSet(), h, rng)

	first, err := b.TrainEpochs(1)
	require.NoError(t, err)
	last, err := b.TrainEpochs(1999)
	require.NoError(t, err)
	assert.Less(t, last, first)

	for _, s := range xorSet() {
		c, err := net.Infer(s.Input)
		require.NoError(t, err)
		assert.Equal(t, s.Class, c)
	}
}

func TestStepMovesTowardsTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	net, err := feedforward.New(3, 2, 2, rng)
	require.NoError(t, err)
	h := Defaults()
	h.WeightDecay = 0.01
	b := NewBackprop(net, nil, h, rng)

	s := datasets.Sample{Input: []float64{1, 0, 1}, Class: 1}
	before, err := net.Activate(s.Input)
	require.NoError(t, err)
	_, err = b.Step(s)
	require.NoError(t, err)
	after, err := net.Activate(s.Input)
	require.NoError(t, err)
	assert.Greater(t, after[1], before[1])
}

func TestStepShapeError(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	net, err := feedforward.New(3, 2, 2, rng)
	require.NoError(t, err)
	b := NewBackprop(net, datasets.Dataset{{Input: []float64{1}, Class: 0}}, Defaults(), rng)
	_, err = b.TrainEpochs(1)
	assert.ErrorIs(t, err, feedforward.ErrShape)
}

func TestHyperParameters(t *testing.T) {
	h := Defaults()
	require.NoError(t, h.Validate())
	assert.Equal(t, 58, h.HiddenFor(117))
	assert.Equal(t, 1, h.HiddenFor(1))
	h.Hidden = 10
	assert.Equal(t, 10, h.HiddenFor(117))
	assert.NotNil(t, h.Logger())

	for _, mutate := range []func(*HyperParameters){
		func(h *HyperParameters) { h.Hidden = -1 },
		func(h *HyperParameters) { h.Epochs = -1 },
		func(h *HyperParameters) { h.LearningRate = 0 },
		func(h *HyperParameters) { h.Momentum = 1 },
		func(h *HyperParameters) { h.WeightDecay = -0.1 },
		func(h *HyperParameters) { h.TestProportion = 1 },
		func(h *HyperParameters) { h.TestProportion = 0 },
		func(h *HyperParameters) { h.Threads = -2 },
	} {
		bad := Defaults()
		mutate(&bad)
		assert.ErrorIs(t, bad.Validate(), ErrHyperParameters)
	}
}
