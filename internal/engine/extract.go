package engine

import (
	"fmt"

	"piro/internal/model"
)

// layer is one extracted weighted stage of the chain. pos is the layer's
// original index in Network.Layers, kept for error reporting after
// structural layers are filtered out.
type layer struct {
	pos        int
	weights    [][]float64
	bias       []float64
	activation Activation
	in         int
	out        int
}

// Validate checks a network description without attributing anything:
// supported activations, rectangular weights, and a consistent affine
// chain.
func Validate(net model.Network) error {
	_, err := extractLayers(net)
	return err
}

// extractLayers reads the weighted layers of the description in order,
// skipping structural entries that carry no weights, and validates the
// affine chain: rectangular weight rows, bias length matching the row
// count, and each layer's input width matching the previous output width.
func extractLayers(net model.Network) ([]layer, error) {
	layers := make([]layer, 0, len(net.Layers))
	prevOut := -1
	for pos, spec := range net.Layers {
		if len(spec.Weights) == 0 {
			continue
		}

		activation, ok := ParseActivation(spec.Activation)
		if !ok {
			return nil, layerError(pos, ErrUnsupportedLayerKind, "activation %q", spec.Activation)
		}

		out := len(spec.Weights)
		in := len(spec.Weights[0])
		for row := range spec.Weights {
			if len(spec.Weights[row]) != in {
				return nil, layerError(pos, ErrDimensionMismatch, "weight row %d has %d columns, want %d", row, len(spec.Weights[row]), in)
			}
		}
		if len(spec.Bias) != out {
			return nil, layerError(pos, ErrDimensionMismatch, "bias length %d, want %d", len(spec.Bias), out)
		}
		if prevOut >= 0 && in != prevOut {
			return nil, layerError(pos, ErrDimensionMismatch, "input width %d, previous layer output width %d", in, prevOut)
		}

		prevOut = out
		layers = append(layers, layer{
			pos:        pos,
			weights:    spec.Weights,
			bias:       spec.Bias,
			activation: activation,
			in:         in,
			out:        out,
		})
	}

	if len(layers) == 0 {
		return nil, fmt.Errorf("%w: network has no weighted layers", ErrDimensionMismatch)
	}
	return layers, nil
}
