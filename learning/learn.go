// Package learning implements online backpropagation for feedforward networks
package learning

import "math"
import "math/rand"

import "go.uber.org/zap"
import "gonum.org/v1/gonum/mat"

import "github.com/neurlang/mushroom/datasets"
import "github.com/neurlang/mushroom/net/feedforward"

// Backprop trains a network by stochastic gradient descent, one sample at a time.
type Backprop struct {
	net     *feedforward.FeedforwardNetwork
	dataset datasets.Dataset
	h       HyperParameters
	rng     *rand.Rand

	// velocity per layer, for momentum
	vw []*mat.Dense
	vb []*mat.VecDense

	epochs int
}

// NewBackprop prepares training of net on dataset.
func NewBackprop(net *feedforward.FeedforwardNetwork, dataset datasets.Dataset, h HyperParameters, rng *rand.Rand) *Backprop {
	b := &Backprop{net: net, dataset: dataset, h: h, rng: rng}
	for i := 0; i < net.LenLayers(); i++ {
		in, out := net.GetLayer(i).Dims()
		b.vw = append(b.vw, mat.NewDense(out, in, nil))
		b.vb = append(b.vb, mat.NewVecDense(out, nil))
	}
	return b
}

// TrainEpochs runs n passes over the training set. It returns the mean
// cross-entropy of the last pass.
func (b *Backprop) TrainEpochs(n int) (loss float64, err error) {
	for e := 0; e < n; e++ {
		order := make([]int, len(b.dataset))
		for i := range order {
			order[i] = i
		}
		if b.h.Shuffle {
			b.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}
		var sum float64
		for _, i := range order {
			l, err := b.Step(b.dataset[i])
			if err != nil {
				return 0, err
			}
			sum += l
		}
		b.epochs++
		if len(order) > 0 {
			loss = sum / float64(len(order))
		}
		b.h.Logger().Debug("backprop epoch", zap.Int("epoch", b.epochs), zap.Float64("loss", loss))
	}
	return loss, nil
}

// Step trains on one sample and returns its cross-entropy before the update.
func (b *Backprop) Step(s datasets.Sample) (float64, error) {
	acts, err := b.net.Forward(s.Input)
	if err != nil {
		return 0, err
	}
	out := acts[len(acts)-1]

	// the output error is target - output
	delta := mat.NewVecDense(out.Len(), nil)
	delta.ScaleVec(-1, out)
	var loss float64
	if s.Class >= 0 && s.Class < out.Len() {
		delta.SetVec(s.Class, delta.AtVec(s.Class)+1)
		loss = -math.Log(math.Max(out.AtVec(s.Class), 1e-300))
	}

	for l := b.net.LenLayers() - 1; l >= 0; l-- {
		layer := b.net.GetLayer(l)

		// error of the previous layer, before this layer's weights move
		var prev *mat.VecDense
		if l > 0 {
			prev = mat.NewVecDense(acts[l].Len(), nil)
			prev.MulVec(layer.Weights.T(), delta)
			below := b.net.GetLayer(l - 1)
			for i := 0; i < prev.Len(); i++ {
				prev.SetVec(i, prev.AtVec(i)*below.Derivative(acts[l].AtVec(i)))
			}
		}

		vw, vb := b.vw[l], b.vb[l]
		vw.Scale(b.h.Momentum, vw)
		vw.RankOne(vw, b.h.LearningRate, delta, acts[l])
		vb.ScaleVec(b.h.Momentum, vb)
		vb.AddScaledVec(vb, b.h.LearningRate, delta)
		if b.h.WeightDecay > 0 {
			var decay mat.Dense
			decay.Scale(-b.h.LearningRate*b.h.WeightDecay, layer.Weights)
			vw.Add(vw, &decay)
		}
		layer.Weights.Add(layer.Weights, vw)
		layer.Bias.AddVec(layer.Bias, vb)

		delta = prev
	}
	return loss, nil
}
