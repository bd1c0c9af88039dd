package queries

import (
	"context"

	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/core/ports"
)

// GetShipmentQueryHandler reads one shipment from the registry.
type GetShipmentQueryHandler struct {
	registry ports.ShipmentRegistry
}

func NewGetShipmentQueryHandler(registry ports.ShipmentRegistry) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{registry: registry}
}

// Handle returns a snapshot taken under the shipment's lock, or errs.ErrObjectNotFound.
func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (shipment.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return shipment.Snapshot{}, err
	}

	s, err := h.registry.Get(ctx, query.ShipmentID())
	if err != nil {
		return shipment.Snapshot{}, err
	}

	return s.Snapshot(), nil
}
