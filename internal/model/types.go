package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// LayerSpec describes one layer of a frozen feed-forward classifier.
// Weights has one row per output unit and one column per input unit.
// Structural layers (input markers, dropout) carry nil Weights and are
// filtered out by the attribution engine without disturbing layer order.
type LayerSpec struct {
	Kind       string      `json:"kind,omitempty"`
	Activation string      `json:"activation,omitempty"`
	Weights    [][]float64 `json:"weights,omitempty"`
	Bias       []float64   `json:"bias,omitempty"`
}

// Network is a frozen classifier description. Layers are in definition
// order, input side first. The description is immutable once constructed;
// attribution calls only read it.
type Network struct {
	VersionedRecord
	ID           string      `json:"id"`
	Name         string      `json:"name,omitempty"`
	Layers       []LayerSpec `json:"layers"`
	FeatureNames []string    `json:"feature_names,omitempty"`
	ClassNames   []string    `json:"class_names,omitempty"`
}

// AttributionRecord is one persisted attribution result: the sample, the
// contribution matrix (classes x features+1, bias last), and the network's
// true pre-softmax outputs recorded for cross-checking.
type AttributionRecord struct {
	VersionedRecord
	ID           string      `json:"id"`
	NetworkID    string      `json:"network_id"`
	CreatedAtUTC string      `json:"created_at_utc"`
	Weighted     bool        `json:"weighted"`
	Exact        bool        `json:"exact"`
	Sample       []float64   `json:"sample"`
	Matrix       [][]float64 `json:"matrix"`
	Outputs      []float64   `json:"outputs"`
	FeatureNames []string    `json:"feature_names,omitempty"`
	ClassNames   []string    `json:"class_names,omitempty"`
}
