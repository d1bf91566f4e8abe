package engine

import "testing"

func TestParseActivation(t *testing.T) {
	cases := []struct {
		name string
		want Activation
	}{
		{"identity", Identity},
		{"linear", Identity},
		{"", Identity},
		{"relu", ReLU},
		{"hard_sigmoid", HardSigmoid},
		{"hard_tanh", HardTanh},
	}
	for _, c := range cases {
		got, ok := ParseActivation(c.name)
		if !ok {
			t.Fatalf("parse %q failed", c.name)
		}
		if got != c.want {
			t.Fatalf("parse %q: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestParseActivationUnsupported(t *testing.T) {
	if _, ok := ParseActivation("softmax"); ok {
		t.Fatal("expected softmax to be unsupported")
	}
}

func TestSlope(t *testing.T) {
	cases := []struct {
		activation Activation
		x          float64
		want       float64
	}{
		{Identity, -7, 1},
		{ReLU, 2, 1},
		{ReLU, -2, 0},
		{ReLU, 0, 0}, // knee takes the saturated slope
		{HardSigmoid, 0, 0.2},
		{HardSigmoid, 2.4, 0.2},
		{HardSigmoid, 2.5, 0},
		{HardSigmoid, -3, 0},
		{HardTanh, 0.5, 1},
		{HardTanh, 1, 0},
		{HardTanh, -4, 0},
	}
	for _, c := range cases {
		if got := c.activation.Slope(c.x); got != c.want {
			t.Fatalf("%s slope at %v: got %v, want %v", c.activation, c.x, got, c.want)
		}
	}
}

func TestValue(t *testing.T) {
	cases := []struct {
		activation Activation
		x          float64
		want       float64
	}{
		{Identity, -7, -7},
		{ReLU, 3, 3},
		{ReLU, -3, 0},
		{HardSigmoid, 0, 0.5},
		{HardSigmoid, 10, 1},
		{HardSigmoid, -10, 0},
		{HardTanh, 0.25, 0.25},
		{HardTanh, 5, 1},
		{HardTanh, -5, -1},
	}
	for _, c := range cases {
		if got := c.activation.Value(c.x); got != c.want {
			t.Fatalf("%s value at %v: got %v, want %v", c.activation, c.x, got, c.want)
		}
	}
}

func TestPiecewiseLinear(t *testing.T) {
	for _, a := range []Activation{Identity, ReLU, HardSigmoid, HardTanh} {
		if !a.PiecewiseLinear() {
			t.Fatalf("%s should be piecewise-linear", a)
		}
	}
}
