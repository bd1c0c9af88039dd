package commands

import (
	"context"

	"tracker/internal/core/ports"
)

// SubscribeCommandHandler registers live subscribers.
//
// The current snapshot is pushed right after registration, so a subscriber
// sees the shipment's state without waiting for the next update. Updates
// that land between registration and the initial push are never lost: the
// subscription keeps only snapshots newer than the last one it accepted.
type SubscribeCommandHandler struct {
	registry ports.ShipmentRegistry
	notifier ports.SnapshotNotifier
}

// NewSubscribeCommandHandler creates a handler over registry and notifier.
func NewSubscribeCommandHandler(registry ports.ShipmentRegistry, notifier ports.SnapshotNotifier) SubscribeCommandHandler {
	return SubscribeCommandHandler{
		registry: registry,
		notifier: notifier,
	}
}

// Handle returns the new subscription, or errs.ErrObjectNotFound for an unknown shipment.
func (h SubscribeCommandHandler) Handle(ctx context.Context, cmd SubscribeCommand) (ports.Subscription, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := h.registry.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	subscription := h.notifier.Subscribe(cmd.ShipmentID(), cmd.Sink())
	subscription.Push(s.Snapshot())

	return subscription, nil
}
