package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// GetUpdateJournalQueryHandler reads journal rows with a raw SQL query,
// bypassing the write-side repository.
//
// A handler built with a nil database answers every query with an empty
// list, which is how the tracker behaves when the journal is disabled.
type GetUpdateJournalQueryHandler struct {
	db *gorm.DB
}

// NewGetUpdateJournalQueryHandler creates a handler over db, which may be nil.
func NewGetUpdateJournalQueryHandler(db *gorm.DB) GetUpdateJournalQueryHandler {
	return GetUpdateJournalQueryHandler{db: db}
}

// Handle returns the journal entries of one shipment in insertion order.
func (h GetUpdateJournalQueryHandler) Handle(
	ctx context.Context,
	query GetUpdateJournalQuery,
) ([]GetUpdateJournalQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetUpdateJournalQueryResponse, 0)
	if h.db == nil {
		return entries, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			kind,
			timestamp,
			payload,
			accepted_at
		FROM update_journal
		WHERE shipment_id = ?
		ORDER BY seq
	`, query.ShipmentID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetUpdateJournalQueryResponse
		var payload sql.NullString

		if err = rows.Scan(&entry.Kind, &entry.Timestamp, &payload, &entry.AcceptedAt); err != nil {
			return nil, err
		}
		if payload.Valid {
			entry.Payload = &payload.String
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
