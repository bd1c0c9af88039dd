package commands

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/core/ports"
)

// CreateShipmentCommandHandler registers shipments requested through the boundary.
// The creation timestamp is the clock's current time.
type CreateShipmentCommandHandler struct {
	registry ports.ShipmentRegistry
	clock    kernel.Clock
}

// NewCreateShipmentCommandHandler creates a handler backed by registry.
func NewCreateShipmentCommandHandler(registry ports.ShipmentRegistry, clock kernel.Clock) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		registry: registry,
		clock:    clock,
	}
}

// Handle creates the shipment and returns its initial snapshot.
// A duplicate id yields errs.ErrObjectAlreadyExists.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (shipment.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.Snapshot{}, err
	}

	s, err := h.registry.Create(ctx, cmd.ShipmentID(), cmd.Variant(), h.clock.NowMillis())
	if err != nil {
		return shipment.Snapshot{}, err
	}

	return s.Snapshot(), nil
}
