// Package ports defines the contracts between the tracker's use cases and the
// infrastructure that stores shipments, delivers snapshots and records updates.
package ports

import (
	"context"

	"tracker/internal/core/domain/model/shipment"
)

// ShipmentRegistry is the single authoritative mapping from shipment id to
// Shipment. Implementations must be safe for concurrent use.
type ShipmentRegistry interface {
	// Create constructs a shipment through the domain factory and inserts it.
	// Concurrent calls for the same new id produce exactly one winner; every
	// other caller receives errs.ErrObjectAlreadyExists. The registry never
	// exposes a shipment that failed construction.
	Create(ctx context.Context, id string, variant shipment.Variant, createdAt int64) (*shipment.Shipment, error)

	// Get returns the shipment registered under id, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id string) (*shipment.Shipment, error)

	// GetAll returns every registered shipment ordered by id.
	GetAll(ctx context.Context) ([]*shipment.Shipment, error)

	// Count returns the number of registered shipments.
	Count(ctx context.Context) int
}
