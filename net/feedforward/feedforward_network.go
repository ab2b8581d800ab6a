// Package feedforward implements a feedforward network type
package feedforward

import "errors"
import "fmt"
import "math"
import "math/rand"

import "gonum.org/v1/gonum/mat"

// Activation is the nonlinearity applied to a layer's weighted sum.
type Activation string

const (
	Linear  Activation = "linear"
	Sigmoid Activation = "sigmoid"
	Softmax Activation = "softmax"
)

// ErrShape is returned when dimensions of layers or inputs do not line up.
var ErrShape = errors.New("feedforward: shape mismatch")

// Layer is one fully connected layer: out = act(Weights * in + Bias).
type Layer struct {
	Weights    *mat.Dense    // out x in
	Bias       *mat.VecDense // out
	Activation Activation
}

// Dims reports the input and output width of the layer.
func (l *Layer) Dims() (in, out int) {
	out, in = l.Weights.Dims()
	return
}

// Derivative returns the derivative of the activation given its output y.
// Softmax and linear layers pass the error through unchanged, which for
// softmax is the cross-entropy gradient with respect to the weighted sum.
func (l *Layer) Derivative(y float64) float64 {
	if l.Activation == Sigmoid {
		return y * (1 - y)
	}
	return 1
}

// FeedforwardNetwork is the feedforward network
type FeedforwardNetwork struct {
	indim  int
	layers []Layer
}

// New builds a network with one sigmoid hidden layer and a softmax output layer,
// weights drawn from a normal distribution scaled by the fan-in.
func New(indim, hidden, outdim int, rng *rand.Rand) (*FeedforwardNetwork, error) {
	if indim <= 0 || hidden <= 0 || outdim <= 0 {
		return nil, fmt.Errorf("indim %d, hidden %d, outdim %d: %w", indim, hidden, outdim, ErrShape)
	}
	f := &FeedforwardNetwork{indim: indim}
	f.NewLayer(hidden, Sigmoid, rng)
	f.NewLayer(outdim, Softmax, rng)
	return f, nil
}

// NewInput creates an empty network accepting indim (> 0) inputs. Add layers with NewLayer.
func NewInput(indim int) *FeedforwardNetwork {
	return &FeedforwardNetwork{indim: indim}
}

// NewLayer adds a fully connected layer of n (> 0) units to the end of the network.
func (f *FeedforwardNetwork) NewLayer(n int, act Activation, rng *rand.Rand) {
	in := f.Outdim()
	scale := 1 / math.Sqrt(float64(in))
	w := make([]float64, n*in)
	for i := range w {
		w[i] = rng.NormFloat64() * scale
	}
	b := make([]float64, n)
	for i := range b {
		b[i] = rng.NormFloat64() * scale
	}
	f.layers = append(f.layers, Layer{
		Weights:    mat.NewDense(n, in, w),
		Bias:       mat.NewVecDense(n, b),
		Activation: act,
	})
}

// Indim is the width of the input vector.
func (f *FeedforwardNetwork) Indim() int {
	return f.indim
}

// Outdim is the width of the output vector.
func (f *FeedforwardNetwork) Outdim() int {
	if len(f.layers) == 0 {
		return f.indim
	}
	_, out := f.layers[len(f.layers)-1].Dims()
	return out
}

// LenLayers returns the number of layers.
func (f *FeedforwardNetwork) LenLayers() int {
	return len(f.layers)
}

// Len returns the number of trainable parameters.
func (f *FeedforwardNetwork) Len() (o int) {
	for i := range f.layers {
		in, out := f.layers[i].Dims()
		o += in*out + out
	}
	return
}

// GetLayer gets the n-th layer pointer. Trainers update weights through it.
func (f *FeedforwardNetwork) GetLayer(n int) *Layer {
	if n < 0 || n >= len(f.layers) {
		return nil
	}
	return &f.layers[n]
}

// Forward returns the output of every layer, preceded by the input itself.
func (f *FeedforwardNetwork) Forward(input []float64) ([]*mat.VecDense, error) {
	if len(input) != f.indim {
		return nil, fmt.Errorf("input has %d features, want %d: %w", len(input), f.indim, ErrShape)
	}
	acts := make([]*mat.VecDense, 0, len(f.layers)+1)
	acts = append(acts, mat.NewVecDense(len(input), append([]float64(nil), input...)))
	for i := range f.layers {
		l := &f.layers[i]
		_, out := l.Dims()
		z := mat.NewVecDense(out, nil)
		z.MulVec(l.Weights, acts[len(acts)-1])
		z.AddVec(z, l.Bias)
		activate(z, l.Activation)
		acts = append(acts, z)
	}
	return acts, nil
}

// Activate returns the output activation vector for input. For the default
// network this is the class probability vector.
func (f *FeedforwardNetwork) Activate(input []float64) ([]float64, error) {
	acts, err := f.Forward(input)
	if err != nil {
		return nil, err
	}
	last := acts[len(acts)-1]
	o := make([]float64, last.Len())
	for i := range o {
		o[i] = last.AtVec(i)
	}
	return o, nil
}

// Infer returns the class with the highest activation.
func (f *FeedforwardNetwork) Infer(input []float64) (int, error) {
	out, err := f.Activate(input)
	if err != nil {
		return -1, err
	}
	return Argmax(out), nil
}

// Argmax returns the index of the largest value, the first one on ties, -1 when empty.
func Argmax(v []float64) int {
	best := -1
	for i, x := range v {
		if best == -1 || x > v[best] {
			best = i
		}
	}
	return best
}

func activate(z *mat.VecDense, act Activation) {
	switch act {
	case Sigmoid:
		for i := 0; i < z.Len(); i++ {
			z.SetVec(i, 1/(1+math.Exp(-z.AtVec(i))))
		}
	case Softmax:
		maxz := math.Inf(-1)
		for i := 0; i < z.Len(); i++ {
			maxz = math.Max(maxz, z.AtVec(i))
		}
		var sum float64
		for i := 0; i < z.Len(); i++ {
			e := math.Exp(z.AtVec(i) - maxz)
			z.SetVec(i, e)
			sum += e
		}
		z.ScaleVec(1/sum, z)
	}
}
