package commands

import (
	"errors"
	"strings"

	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrSubscribeCommandIsNotConstructed = errors.New(
		"SubscribeCommand must be created via NewSubscribeCommand constructor",
	)
)

// SubscribeCommand attaches a sink to the snapshot stream of one shipment.
type SubscribeCommand struct { //nolint:recvcheck //using for validation
	shipmentID string
	sink       ports.SnapshotSink

	guard guard.ConstructorGuard
}

// NewSubscribeCommand validates that both the shipment id and the sink are present.
func NewSubscribeCommand(shipmentID string, sink ports.SnapshotSink) (SubscribeCommand, error) {
	cmd := SubscribeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setSink(sink),
	); err != nil {
		return SubscribeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubscribeCommand) Validate() error {
	return c.guard.Validate(ErrSubscribeCommandIsNotConstructed)
}

func (c SubscribeCommand) ShipmentID() string {
	return c.shipmentID
}

func (c SubscribeCommand) Sink() ports.SnapshotSink {
	return c.sink
}

func (c *SubscribeCommand) setShipmentID(shipmentID string) error {
	if strings.TrimSpace(shipmentID) == "" {
		return errs.NewValueIsRequiredError("id")
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *SubscribeCommand) setSink(sink ports.SnapshotSink) error {
	if sink == nil {
		return errs.NewValueIsRequiredError("sink")
	}

	c.sink = sink
	return nil
}
