package commands

import (
	"errors"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/guard"
)

var (
	ErrUnsubscribeCommandIsNotConstructed = errors.New(
		"UnsubscribeCommand must be created via NewUnsubscribeCommand constructor",
	)
)

// UnsubscribeCommand detaches a subscription from a shipment's snapshot stream.
type UnsubscribeCommand struct { //nolint:recvcheck //using for validation
	shipmentID     string
	subscriptionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnsubscribeCommand validates the subscription id.
func NewUnsubscribeCommand(shipmentID string, subscriptionID kernel.UUID) (UnsubscribeCommand, error) {
	if err := subscriptionID.Validate(); err != nil {
		return UnsubscribeCommand{}, err
	}

	return UnsubscribeCommand{
		shipmentID:     shipmentID,
		subscriptionID: subscriptionID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UnsubscribeCommand) Validate() error {
	return c.guard.Validate(ErrUnsubscribeCommandIsNotConstructed)
}

func (c UnsubscribeCommand) ShipmentID() string {
	return c.shipmentID
}

func (c UnsubscribeCommand) SubscriptionID() kernel.UUID {
	return c.subscriptionID
}
