package engine

// Activation enumerates the activation kinds the engine can linearize. The
// set is closed: a new kind means a new case in Value, Slope and
// PiecewiseLinear, never open-ended dispatch.
type Activation int

const (
	Identity Activation = iota
	ReLU
	HardSigmoid
	HardTanh
)

// ParseActivation maps the serialized activation name to its kind.
func ParseActivation(name string) (Activation, bool) {
	switch name {
	case "", "identity", "linear":
		return Identity, true
	case "relu":
		return ReLU, true
	case "hard_sigmoid":
		return HardSigmoid, true
	case "hard_tanh":
		return HardTanh, true
	default:
		return Identity, false
	}
}

func (a Activation) String() string {
	switch a {
	case ReLU:
		return "relu"
	case HardSigmoid:
		return "hard_sigmoid"
	case HardTanh:
		return "hard_tanh"
	default:
		return "identity"
	}
}

// Value evaluates the activation at x.
func (a Activation) Value(x float64) float64 {
	switch a {
	case ReLU:
		if x > 0 {
			return x
		}
		return 0
	case HardSigmoid:
		// clamp(0.2*x + 0.5, 0, 1), the Keras piecewise sigmoid.
		y := 0.2*x + 0.5
		if y < 0 {
			return 0
		}
		if y > 1 {
			return 1
		}
		return y
	case HardTanh:
		if x < -1 {
			return -1
		}
		if x > 1 {
			return 1
		}
		return x
	default:
		return x
	}
}

// Slope returns the local derivative at pre-activation x, the multiplier
// that linearizes the unit during backward redistribution. A unit sitting
// exactly on a piecewise knee (relu at 0, hard_sigmoid at +/-2.5, hard_tanh
// at +/-1) takes the saturated slope 0; the choice is fixed so repeated
// calls on boundary samples stay deterministic.
func (a Activation) Slope(x float64) float64 {
	switch a {
	case ReLU:
		if x > 0 {
			return 1
		}
		return 0
	case HardSigmoid:
		if x > -2.5 && x < 2.5 {
			return 0.2
		}
		return 0
	case HardTanh:
		if x > -1 && x < 1 {
			return 1
		}
		return 0
	default:
		return 1
	}
}

// PiecewiseLinear reports whether linearizing this activation is exact.
// Every supported kind is piecewise-linear today; a smooth kind added later
// must return false so callers learn the decomposition is an approximation.
func (a Activation) PiecewiseLinear() bool {
	switch a {
	case Identity, ReLU, HardSigmoid, HardTanh:
		return true
	default:
		return false
	}
}
