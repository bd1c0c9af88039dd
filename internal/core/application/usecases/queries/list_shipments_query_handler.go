package queries

import (
	"context"

	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/core/ports"
)

// ListShipmentsQueryHandler reads all shipments from the registry.
type ListShipmentsQueryHandler struct {
	registry ports.ShipmentRegistry
}

func NewListShipmentsQueryHandler(registry ports.ShipmentRegistry) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{registry: registry}
}

// Handle returns one snapshot per shipment, ordered by id. Each snapshot is
// self-consistent; the list as a whole is not a single point in time.
func (h ListShipmentsQueryHandler) Handle(ctx context.Context, query ListShipmentsQuery) ([]shipment.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := h.registry.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]shipment.Snapshot, 0, len(all))
	for _, s := range all {
		snapshots = append(snapshots, s.Snapshot())
	}

	return snapshots, nil
}
