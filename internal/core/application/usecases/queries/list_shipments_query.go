package queries

import (
	"errors"

	"tracker/internal/pkg/guard"
)

var (
	ErrListShipmentsQueryIsNotConstructed = errors.New(
		"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
	)
)

// ListShipmentsQuery retrieves the snapshots of every tracked shipment.
type ListShipmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewListShipmentsQuery creates the parameterless list query.
func NewListShipmentsQuery() ListShipmentsQuery {
	return ListShipmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}
