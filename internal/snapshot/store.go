// Package snapshot holds the process-wide product/historical/elasticity
// dataset as an immutable, atomically swapped value. Loading new data or
// attaching a model set builds a fresh snapshot and swaps the current pointer
// under a narrow lock; in-flight readers keep the snapshot they already hold.
package snapshot

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pricelab/pricing-sim/internal/model"
)

// Snapshot is a read-only view of the loaded dataset. None of its fields are
// mutated after construction.
type Snapshot struct {
	ID       string
	LoadedAt time.Time

	Products     []model.Product
	Observations map[string][]model.HistoricalObservation
	Models       map[string]model.ElasticityModel

	byID map[string]model.Product
}

// Product looks up a product by id.
func (s *Snapshot) Product(id string) (model.Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// WithModels returns a copy-on-write successor snapshot carrying the given
// elasticity model set. The receiver is left untouched.
func (s *Snapshot) WithModels(models map[string]model.ElasticityModel) *Snapshot {
	return &Snapshot{
		ID:           uuid.NewString(),
		LoadedAt:     s.LoadedAt,
		Products:     s.Products,
		Observations: s.Observations,
		Models:       models,
		byID:         s.byID,
	}
}

// Store is the single indirection to the current snapshot.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

// NewStore returns an empty store; Current is nil until the first Load.
func NewStore() *Store {
	return &Store{}
}

// Load builds a snapshot from products and observations and makes it current.
// Observations are grouped by product id; their slice order is preserved.
func (st *Store) Load(products []model.Product, observations []model.HistoricalObservation) *Snapshot {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	grouped := make(map[string][]model.HistoricalObservation)
	for _, o := range observations {
		grouped[o.ProductID] = append(grouped[o.ProductID], o)
	}

	snap := &Snapshot{
		ID:           uuid.NewString(),
		LoadedAt:     time.Now().UTC(),
		Products:     products,
		Observations: grouped,
		byID:         byID,
	}

	st.mu.Lock()
	st.current = snap
	st.mu.Unlock()
	return snap
}

// Swap makes snap the current snapshot.
func (st *Store) Swap(snap *Snapshot) {
	st.mu.Lock()
	st.current = snap
	st.mu.Unlock()
}

// Current returns the active snapshot, or nil when nothing has been loaded.
func (st *Store) Current() *Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}
