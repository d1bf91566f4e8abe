package storage

import (
	"context"
	"sort"
	"sync"

	"piro/internal/model"
)

type MemoryStore struct {
	mu           sync.RWMutex
	networks     map[string]model.Network
	attributions map[string]model.AttributionRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.networks = make(map[string]model.Network)
	s.attributions = make(map[string]model.AttributionRecord)
	return nil
}

func (s *MemoryStore) SaveNetwork(_ context.Context, network model.Network) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.networks[network.ID] = network
	return nil
}

func (s *MemoryStore) GetNetwork(_ context.Context, id string) (model.Network, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	network, ok := s.networks[id]
	return network, ok, nil
}

func (s *MemoryStore) ListNetworks(_ context.Context) ([]model.Network, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	networks := make([]model.Network, 0, len(s.networks))
	for _, network := range s.networks {
		networks = append(networks, network)
	}
	sort.Slice(networks, func(i, j int) bool { return networks[i].ID < networks[j].ID })
	return networks, nil
}

func (s *MemoryStore) SaveAttribution(_ context.Context, record model.AttributionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attributions[record.ID] = record
	return nil
}

func (s *MemoryStore) GetAttribution(_ context.Context, id string) (model.AttributionRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.attributions[id]
	return record, ok, nil
}

func (s *MemoryStore) ListAttributions(_ context.Context, networkID string, limit int) ([]model.AttributionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.AttributionRecord, 0, len(s.attributions))
	for _, record := range s.attributions {
		if networkID != "" && record.NetworkID != networkID {
			continue
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAtUTC != records[j].CreatedAtUTC {
			return records[i].CreatedAtUTC > records[j].CreatedAtUTC
		}
		return records[i].ID > records[j].ID
	})
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	return s.Init(ctx)
}
