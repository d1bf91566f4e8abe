// Package engine decomposes a frozen feed-forward classifier's pre-softmax
// output on one sample into per-feature, per-class contributions plus an
// aggregate bias term, by linearizing each activation at its recorded
// operating point and redistributing contributions backward through every
// affine layer. Each call is a pure function of (network, sample, options);
// calls share nothing and are safe to run concurrently.
package engine

import (
	"math"

	"piro/internal/model"
)

// Options control one attribution call.
type Options struct {
	// Weighted scales each feature column of the matrix by the sample's
	// corresponding feature value, producing value-weighted attributions
	// instead of raw sensitivities. The bias column is never scaled.
	Weighted bool
}

// Result is one finished attribution.
type Result struct {
	// Matrix has one row per output class and one column per input
	// feature, plus a trailing column holding the accumulated bias
	// contribution from every layer.
	Matrix [][]float64

	// Outputs are the network's true pre-softmax outputs for the sample.
	// For class c, sum(Matrix[c][i] * sample[i]) + Matrix[c][features]
	// equals Outputs[c] up to rounding; with Weighted set the plain row
	// sum equals Outputs[c].
	Outputs []float64

	// Exact reports whether the decomposition is exact rather than a
	// first-order approximation. It is false when any layer activation is
	// not piecewise-linear.
	Exact bool
}

// Attribute computes the contribution matrix for one sample against a
// frozen network. It fails with ErrUnsupportedLayerKind,
// ErrDimensionMismatch or ErrNumericInstability (each wrapped in a
// LayerError carrying the failing layer) and never returns a partial
// matrix: a truncated decomposition would silently break the conservation
// property.
func Attribute(net model.Network, sample []float64, opts Options) (Result, error) {
	layers, err := extractLayers(net)
	if err != nil {
		return Result{}, err
	}

	trace, err := forwardPass(layers, sample)
	if err != nil {
		return Result{}, err
	}

	matrix, err := compose(layers, trace)
	if err != nil {
		return Result{}, err
	}

	if opts.Weighted {
		for c := range matrix {
			for i := range sample {
				matrix[c][i] *= sample[i]
			}
		}
	}

	exact := true
	for _, l := range layers {
		if !l.activation.PiecewiseLinear() {
			exact = false
		}
	}

	last := trace[len(trace)-1]
	outputs := make([]float64, len(last.post))
	copy(outputs, last.post)

	return Result{Matrix: matrix, Outputs: outputs, Exact: exact}, nil
}

// compose walks the layers strictly backward, output to input, carrying a
// running matrix of shape classes x (currentInputWidth + 1) whose last
// column accumulates bias contributions. It starts from the identity
// decomposition over the output units and, per layer, rewrites each unit's
// contribution through the linearized activation and the affine transform.
//
// For unit j with slope s at the recorded pre-activation, the unit's
// post-activation satisfies post = s*pre + r, where the residual
// r = post - s*pre absorbs the activation's intercept (hard_sigmoid's 0.5)
// and saturation plateaus. Feature columns receive C[:,j]*s*W[j,i]; the
// bias column receives C[:,j]*(s*b[j] + r). Folding r into the bias column
// is what keeps every row conserved through saturated units.
func compose(layers []layer, trace []traceStep) ([][]float64, error) {
	last := len(layers) - 1
	classes := layers[last].out

	current := make([][]float64, classes)
	for c := range current {
		row := make([]float64, classes+1)
		row[c] = 1
		current[c] = row
	}

	for li := last; li >= 0; li-- {
		l := layers[li]
		pre := trace[li].pre
		post := trace[li].post

		next := make([][]float64, classes)
		for c := 0; c < classes; c++ {
			row := make([]float64, l.in+1)
			row[l.in] = current[c][l.out]

			for j := 0; j < l.out; j++ {
				carried := current[c][j]
				slope := l.activation.Slope(pre[j])
				residual := post[j] - slope*pre[j]
				weights := l.weights[j]
				for i := 0; i < l.in; i++ {
					row[i] += carried * slope * weights[i]
				}
				row[l.in] += carried * (slope*l.bias[j] + residual)
			}

			for i := range row {
				if math.IsNaN(row[i]) || math.IsInf(row[i], 0) {
					return nil, unitError(l.pos, i, ErrNumericInstability, "contribution %v for class %d", row[i], c)
				}
			}
			next[c] = row
		}
		current = next
	}

	return current, nil
}
