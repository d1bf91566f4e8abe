package storage

import (
	"errors"
	"reflect"
	"testing"

	"piro/internal/model"
)

func TestNetworkCodecRoundTrip(t *testing.T) {
	network := model.Network{
		VersionedRecord: versioned(),
		ID:              "net-1",
		Layers: []model.LayerSpec{
			{Kind: "input"},
			{Activation: "hard_tanh", Weights: [][]float64{{0.5, -1}, {2, 0}}, Bias: []float64{0, 0.1}},
		},
		ClassNames: []string{"up", "down"},
	}

	payload, err := EncodeNetwork(network)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeNetwork(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, network) {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestAttributionCodecRoundTrip(t *testing.T) {
	record := model.AttributionRecord{
		VersionedRecord: versioned(),
		ID:              "r1",
		NetworkID:       "net-1",
		CreatedAtUTC:    "2026-03-01T10:00:00Z",
		Weighted:        true,
		Exact:           true,
		Sample:          []float64{1, 1},
		Matrix:          [][]float64{{2, -1, 0.5}},
		Outputs:         []float64{1.5},
	}

	payload, err := EncodeAttribution(record)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeAttribution(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, record) {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	network := model.Network{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion + 1, CodecVersion: CurrentCodecVersion},
		ID:              "net-1",
	}
	payload, err := EncodeNetwork(network)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeNetwork(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}

	record := model.AttributionRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion + 1},
		ID:              "r1",
	}
	payload, err = EncodeAttribution(record)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeAttribution(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
}

func TestDecodeMalformedPayload(t *testing.T) {
	if _, err := DecodeNetwork([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := DecodeAttribution([]byte("{")); err == nil {
		t.Fatal("expected decode error")
	}
}
