// Package queries contains read operations over tracker state.
// Queries never mutate shipments; they return snapshots or read models.
package queries

import (
	"errors"
	"strings"

	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrGetShipmentQueryIsNotConstructed = errors.New(
		"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
	)
)

// GetShipmentQuery retrieves the current snapshot of one shipment.
//
// Example:
//
//	query, err := NewGetShipmentQuery("S1000")
//	if err != nil {
//	    return err
//	}
//	snap, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown shipment
//	}
type GetShipmentQuery struct {
	shipmentID string

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery validates that id is not blank.
func NewGetShipmentQuery(shipmentID string) (GetShipmentQuery, error) {
	if strings.TrimSpace(shipmentID) == "" {
		return GetShipmentQuery{}, errs.NewValueIsRequiredError("id")
	}

	return GetShipmentQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

func (q GetShipmentQuery) ShipmentID() string {
	return q.shipmentID
}
