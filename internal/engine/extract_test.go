package engine

import (
	"errors"
	"testing"

	"piro/internal/model"
)

func TestExtractLayersSkipsStructural(t *testing.T) {
	net := model.Network{Layers: []model.LayerSpec{
		{Kind: "input"},
		{Activation: "relu", Weights: [][]float64{{1, 2}, {3, 4}}, Bias: []float64{0, 0}},
		{Kind: "dropout"},
		{Activation: "identity", Weights: [][]float64{{1, -1}}, Bias: []float64{0.5}},
	}}

	layers, err := extractLayers(net)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(layers) != 2 {
		t.Fatalf("expected 2 weighted layers, got %d", len(layers))
	}
	if layers[0].pos != 1 || layers[1].pos != 3 {
		t.Fatalf("unexpected layer positions: %d, %d", layers[0].pos, layers[1].pos)
	}
	if layers[0].activation != ReLU || layers[1].activation != Identity {
		t.Fatalf("unexpected activations: %v, %v", layers[0].activation, layers[1].activation)
	}
}

func TestExtractLayersUnsupportedActivation(t *testing.T) {
	net := model.Network{Layers: []model.LayerSpec{
		{Activation: "softmax", Weights: [][]float64{{1}}, Bias: []float64{0}},
	}}

	_, err := extractLayers(net)
	if !errors.Is(err, ErrUnsupportedLayerKind) {
		t.Fatalf("expected ErrUnsupportedLayerKind, got %v", err)
	}
	var le *LayerError
	if !errors.As(err, &le) || le.Layer != 0 {
		t.Fatalf("expected layer index 0 in %v", err)
	}
}

func TestExtractLayersDimensionErrors(t *testing.T) {
	cases := []struct {
		name   string
		layers []model.LayerSpec
	}{
		{
			name: "ragged weight rows",
			layers: []model.LayerSpec{
				{Weights: [][]float64{{1, 2}, {3}}, Bias: []float64{0, 0}},
			},
		},
		{
			name: "bias length",
			layers: []model.LayerSpec{
				{Weights: [][]float64{{1, 2}}, Bias: []float64{0, 0}},
			},
		},
		{
			name: "chain width",
			layers: []model.LayerSpec{
				{Weights: [][]float64{{1, 2}, {3, 4}}, Bias: []float64{0, 0}},
				{Weights: [][]float64{{1, 2, 3}}, Bias: []float64{0}},
			},
		},
		{
			name:   "no weighted layers",
			layers: []model.LayerSpec{{Kind: "input"}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := extractLayers(model.Network{Layers: c.layers})
			if !errors.Is(err, ErrDimensionMismatch) {
				t.Fatalf("expected ErrDimensionMismatch, got %v", err)
			}
		})
	}
}

func TestExtractLayersChainErrorReportsLayer(t *testing.T) {
	net := model.Network{Layers: []model.LayerSpec{
		{Kind: "input"},
		{Weights: [][]float64{{1, 2}, {3, 4}}, Bias: []float64{0, 0}},
		{Weights: [][]float64{{1, 2, 3}}, Bias: []float64{0}},
	}}

	_, err := extractLayers(net)
	var le *LayerError
	if !errors.As(err, &le) {
		t.Fatalf("expected LayerError, got %v", err)
	}
	if le.Layer != 2 {
		t.Fatalf("expected layer index 2, got %d", le.Layer)
	}
}
