package feedforward

import "fmt"

import gojson "github.com/goccy/go-json"
import "gonum.org/v1/gonum/mat"

type layerJSON struct {
	In         int        `json:"in"`
	Out        int        `json:"out"`
	Activation Activation `json:"activation"`
	Weights    []float64  `json:"weights"` // row-major, out x in
	Bias       []float64  `json:"bias"`
}

type networkJSON struct {
	Indim  int         `json:"indim"`
	Layers []layerJSON `json:"layers"`
}

// MarshalJSON serializes the layer shapes and weights.
func (f *FeedforwardNetwork) MarshalJSON() ([]byte, error) {
	n := networkJSON{Indim: f.indim, Layers: make([]layerJSON, len(f.layers))}
	for i := range f.layers {
		l := &f.layers[i]
		in, out := l.Dims()
		w := make([]float64, 0, in*out)
		for r := 0; r < out; r++ {
			w = append(w, l.Weights.RawRowView(r)...)
		}
		b := make([]float64, out)
		for r := range b {
			b[r] = l.Bias.AtVec(r)
		}
		n.Layers[i] = layerJSON{In: in, Out: out, Activation: l.Activation, Weights: w, Bias: b}
	}
	return gojson.Marshal(n)
}

// UnmarshalJSON restores a network written by MarshalJSON, checking that layers chain.
func (f *FeedforwardNetwork) UnmarshalJSON(data []byte) error {
	var n networkJSON
	if err := gojson.Unmarshal(data, &n); err != nil {
		return err
	}
	if n.Indim <= 0 {
		return fmt.Errorf("indim %d: %w", n.Indim, ErrShape)
	}
	layers := make([]Layer, len(n.Layers))
	prev := n.Indim
	for i, l := range n.Layers {
		if l.In != prev || l.Out <= 0 || len(l.Weights) != l.In*l.Out || len(l.Bias) != l.Out {
			return fmt.Errorf("layer %d (%dx%d): %w", i, l.Out, l.In, ErrShape)
		}
		switch l.Activation {
		case Linear, Sigmoid, Softmax:
		default:
			return fmt.Errorf("layer %d: unknown activation %q", i, l.Activation)
		}
		layers[i] = Layer{
			Weights:    mat.NewDense(l.Out, l.In, l.Weights),
			Bias:       mat.NewVecDense(l.Out, l.Bias),
			Activation: l.Activation,
		}
		prev = l.Out
	}
	f.indim, f.layers = n.Indim, layers
	return nil
}
