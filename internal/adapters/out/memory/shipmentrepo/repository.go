// Package shipmentrepo holds the process-lifetime shipment registry.
package shipmentrepo

import (
	"context"
	"slices"
	"strings"
	"sync"

	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/pkg/errs"

	"github.com/samber/lo"
)

// InMemoryShipmentRepository implements ports.ShipmentRegistry over a map
// guarded by a read/write lock.
//
// Construction happens while the write lock is held, so a shipment becomes
// visible to Get only once it is fully built, and two concurrent Create calls
// for the same id cannot both succeed.
type InMemoryShipmentRepository struct {
	factory shipment.Factory

	mu        sync.RWMutex
	shipments map[string]*shipment.Shipment
}

// NewInMemoryShipmentRepository creates an empty registry that builds
// shipments with factory.
func NewInMemoryShipmentRepository(factory shipment.Factory) *InMemoryShipmentRepository {
	return &InMemoryShipmentRepository{
		factory:   factory,
		shipments: make(map[string]*shipment.Shipment),
	}
}

// Create builds and inserts a shipment, or returns errs.ErrObjectAlreadyExists.
func (r *InMemoryShipmentRepository) Create(
	_ context.Context,
	id string,
	variant shipment.Variant,
	createdAt int64,
) (*shipment.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.shipments[id]; exists {
		return nil, errs.NewObjectAlreadyExistsError("shipment", id)
	}

	s, err := r.factory.Create(id, variant, createdAt)
	if err != nil {
		return nil, err
	}

	r.shipments[id] = s
	return s, nil
}

// Get returns the shipment registered under id, or errs.ErrObjectNotFound.
func (r *InMemoryShipmentRepository) Get(_ context.Context, id string) (*shipment.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.shipments[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipment", id)
	}
	return s, nil
}

// GetAll returns every shipment ordered by id.
func (r *InMemoryShipmentRepository) GetAll(_ context.Context) ([]*shipment.Shipment, error) {
	r.mu.RLock()
	all := lo.Values(r.shipments)
	r.mu.RUnlock()

	slices.SortFunc(all, func(a, b *shipment.Shipment) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return all, nil
}

// Count returns the number of registered shipments.
func (r *InMemoryShipmentRepository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.shipments)
}
