package engine

import "math"

// traceStep holds the vectors one layer produced during the forward pass.
// The backward composer linearizes each activation at the recorded
// pre-activation values.
type traceStep struct {
	pre  []float64
	post []float64
}

// forwardPass runs the sample through the chain exactly once, recording the
// pre-activation and post-activation vector of every layer. Deterministic,
// no resampling. NaN or infinity at any unit aborts with the numeric
// sentinel rather than propagating silently.
func forwardPass(layers []layer, sample []float64) ([]traceStep, error) {
	if len(sample) != layers[0].in {
		return nil, layerError(layers[0].pos, ErrDimensionMismatch, "sample length %d, input width %d", len(sample), layers[0].in)
	}

	trace := make([]traceStep, len(layers))
	x := sample
	for li := range layers {
		l := layers[li]
		pre := make([]float64, l.out)
		post := make([]float64, l.out)
		for j := 0; j < l.out; j++ {
			sum := l.bias[j]
			row := l.weights[j]
			for i := 0; i < l.in; i++ {
				sum += row[i] * x[i]
			}
			if math.IsNaN(sum) || math.IsInf(sum, 0) {
				return nil, unitError(l.pos, j, ErrNumericInstability, "pre-activation %v", sum)
			}
			pre[j] = sum
			post[j] = l.activation.Value(sum)
		}
		trace[li] = traceStep{pre: pre, post: post}
		x = post
	}
	return trace, nil
}
