package storage

import (
	"encoding/json"
	"errors"

	"piro/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeNetwork(n model.Network) ([]byte, error) {
	return json.Marshal(n)
}

func DecodeNetwork(data []byte) (model.Network, error) {
	var network model.Network
	if err := json.Unmarshal(data, &network); err != nil {
		return model.Network{}, err
	}
	if err := checkVersion(network.VersionedRecord); err != nil {
		return model.Network{}, err
	}
	return network, nil
}

func EncodeAttribution(r model.AttributionRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeAttribution(data []byte) (model.AttributionRecord, error) {
	var record model.AttributionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.AttributionRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.AttributionRecord{}, err
	}
	return record, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
