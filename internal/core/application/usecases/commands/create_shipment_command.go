package commands

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
)

// CreateShipmentCommand is an explicit request to register a new shipment.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand("S1000", "express")
//	if err != nil {
//	    return fmt.Errorf("invalid shipment: %w", err)
//	}
//
//	snap, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID string
	variant    shipment.Variant

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand validates the id and resolves the variant name.
// An empty variant name selects STANDARD; any other unknown name is rejected.
func NewCreateShipmentCommand(shipmentID string, variantName string) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setVariant(variantName),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the requested shipment identifier.
func (c CreateShipmentCommand) ShipmentID() string {
	return c.shipmentID
}

// Variant returns the requested shipment class.
func (c CreateShipmentCommand) Variant() shipment.Variant {
	return c.variant
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID string) error {
	shipmentID = strings.TrimSpace(shipmentID)
	if shipmentID == "" {
		return errs.NewValueIsRequiredError("id")
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setVariant(variantName string) error {
	if strings.TrimSpace(variantName) == "" {
		c.variant = shipment.Standard
		return nil
	}

	variant, err := shipment.ParseVariant(variantName)
	if err != nil {
		return err
	}

	c.variant = variant
	return nil
}
