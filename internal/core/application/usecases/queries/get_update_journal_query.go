package queries

import (
	"errors"
	"strings"

	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrGetUpdateJournalQueryIsNotConstructed = errors.New(
		"GetUpdateJournalQuery must be created via NewGetUpdateJournalQuery constructor",
	)
)

// GetUpdateJournalQuery retrieves the audit trail of updates accepted for one shipment.
//
// Example:
//
//	query, _ := NewGetUpdateJournalQuery("S1000")
//	entries, err := handler.Handle(ctx, query)
//	for _, e := range entries {
//	    fmt.Printf("%s at %d\n", e.Kind, e.Timestamp)
//	}
type GetUpdateJournalQuery struct {
	shipmentID string

	guard guard.ConstructorGuard
}

// NewGetUpdateJournalQuery validates that id is not blank.
func NewGetUpdateJournalQuery(shipmentID string) (GetUpdateJournalQuery, error) {
	if strings.TrimSpace(shipmentID) == "" {
		return GetUpdateJournalQuery{}, errs.NewValueIsRequiredError("id")
	}

	return GetUpdateJournalQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUpdateJournalQuery) Validate() error {
	return q.guard.Validate(ErrGetUpdateJournalQueryIsNotConstructed)
}

func (q GetUpdateJournalQuery) ShipmentID() string {
	return q.shipmentID
}

// GetUpdateJournalQueryResponse is one journal row in the read model.
type GetUpdateJournalQueryResponse struct {
	Kind       string
	Timestamp  int64
	Payload    *string
	AcceptedAt int64
}
