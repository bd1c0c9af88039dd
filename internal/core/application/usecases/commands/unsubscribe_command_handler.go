package commands

import (
	"context"

	"tracker/internal/core/ports"
)

// UnsubscribeCommandHandler removes subscriptions. Removing one twice is not an error.
type UnsubscribeCommandHandler struct {
	notifier ports.SnapshotNotifier
}

func NewUnsubscribeCommandHandler(notifier ports.SnapshotNotifier) UnsubscribeCommandHandler {
	return UnsubscribeCommandHandler{notifier: notifier}
}

func (h UnsubscribeCommandHandler) Handle(_ context.Context, cmd UnsubscribeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.notifier.Unsubscribe(cmd.ShipmentID(), cmd.SubscriptionID())
	return nil
}
