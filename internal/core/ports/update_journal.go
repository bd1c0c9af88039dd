package ports

import (
	"context"

	"tracker/internal/core/domain/model/update"
)

// UpdateJournal records every accepted update for audit purposes. The journal
// is write-mostly: the tracker never rebuilds shipment state from it.
type UpdateJournal interface {
	// Append records evt, accepted by the tracker at acceptedAt (epoch ms).
	Append(ctx context.Context, evt update.Event, acceptedAt int64) error
}
