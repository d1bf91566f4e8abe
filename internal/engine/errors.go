package engine

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedLayerKind = errors.New("unsupported layer kind")
	ErrDimensionMismatch    = errors.New("dimension mismatch")
	ErrNumericInstability   = errors.New("numeric instability")
)

// LayerError ties an engine failure to the network layer where it was
// detected. Layer is an index into Network.Layers, counting structural
// layers, so callers can point at the offending entry of the description
// they supplied. Unit is -1 when the failure is not unit-specific.
type LayerError struct {
	Layer  int
	Unit   int
	Detail string
	Err    error
}

func (e *LayerError) Error() string {
	if e.Unit >= 0 {
		return fmt.Sprintf("layer %d unit %d: %s: %v", e.Layer, e.Unit, e.Err, e.Detail)
	}
	return fmt.Sprintf("layer %d: %s: %v", e.Layer, e.Err, e.Detail)
}

func (e *LayerError) Unwrap() error { return e.Err }

func layerError(layer int, sentinel error, format string, args ...any) error {
	return &LayerError{Layer: layer, Unit: -1, Detail: fmt.Sprintf(format, args...), Err: sentinel}
}

func unitError(layer, unit int, sentinel error, format string, args ...any) error {
	return &LayerError{Layer: layer, Unit: unit, Detail: fmt.Sprintf(format, args...), Err: sentinel}
}
