package journalrepo

import (
	"context"

	"tracker/internal/core/domain/model/update"

	"gorm.io/gorm"
)

// GormUpdateJournal implements ports.UpdateJournal using GORM.
type GormUpdateJournal struct {
	db *gorm.DB
}

// NewGormUpdateJournal creates a journal writing to db.
func NewGormUpdateJournal(db *gorm.DB) *GormUpdateJournal {
	return &GormUpdateJournal{db: db}
}

// Append inserts one row for evt.
func (j *GormUpdateJournal) Append(ctx context.Context, evt update.Event, acceptedAt int64) error {
	dto := fromDomain(evt, acceptedAt)
	return j.db.WithContext(ctx).Create(&dto).Error
}

// NopUpdateJournal discards every update. It is used when no database is configured.
type NopUpdateJournal struct{}

func NewNopUpdateJournal() NopUpdateJournal {
	return NopUpdateJournal{}
}

func (NopUpdateJournal) Append(context.Context, update.Event, int64) error {
	return nil
}
