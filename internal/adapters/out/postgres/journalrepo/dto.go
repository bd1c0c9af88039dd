// Package journalrepo persists accepted update records as an append-only
// audit trail. Rows are never read back into the shipment registry.
package journalrepo

import (
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/update"

	"github.com/google/uuid"
)

// UpdateRecordDTO is one row of the update journal. Seq is assigned by the
// database on insert and orders rows by acceptance.
type UpdateRecordDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int64     `gorm:"autoIncrement;not null;uniqueIndex"`
	ShipmentID string    `gorm:"not null;index"`
	Kind       string    `gorm:"not null"`
	Timestamp  int64     `gorm:"not null"`
	Payload    *string
	AcceptedAt int64 `gorm:"not null;index"`
}

// TableName overrides GORM's default naming convention.
func (UpdateRecordDTO) TableName() string {
	return "update_journal"
}

// fromDomain maps an accepted event to a new journal row with a fresh id.
func fromDomain(evt update.Event, acceptedAt int64) UpdateRecordDTO {
	var payload *string
	if p, ok := evt.Payload(); ok {
		payload = &p
	}

	return UpdateRecordDTO{
		ID:         kernel.NewUUID().Bytes(),
		ShipmentID: evt.ShipmentID(),
		Kind:       evt.Kind().String(),
		Timestamp:  evt.Timestamp(),
		Payload:    payload,
		AcceptedAt: acceptedAt,
	}
}
