package storage

import (
	"context"

	"piro/internal/model"
)

// Store defines persistence for frozen network descriptions and the
// attribution reports computed against them.
type Store interface {
	Init(ctx context.Context) error
	SaveNetwork(ctx context.Context, network model.Network) error
	GetNetwork(ctx context.Context, id string) (model.Network, bool, error)
	ListNetworks(ctx context.Context) ([]model.Network, error)
	SaveAttribution(ctx context.Context, record model.AttributionRecord) error
	GetAttribution(ctx context.Context, id string) (model.AttributionRecord, bool, error)
	// ListAttributions returns reports newest first, filtered to one
	// network when networkID is non-empty, truncated to limit when
	// limit > 0.
	ListAttributions(ctx context.Context, networkID string, limit int) ([]model.AttributionRecord, error)
	Reset(ctx context.Context) error
}
