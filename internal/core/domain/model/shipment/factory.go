package shipment

import "tracker/internal/core/domain/model/kernel"

// Factory constructs shipments of a requested variant. The registry owns the
// only Factory instance so that creation always happens on its insert path.
type Factory struct {
	clock kernel.Clock
}

// NewFactory returns a Factory whose shipments read the time from clock.
func NewFactory(clock kernel.Clock) Factory {
	return Factory{clock: clock}
}

// Create builds a new Shipment; see NewShipment for validation rules.
func (f Factory) Create(id string, variant Variant, createdAt int64) (*Shipment, error) {
	return NewShipment(id, variant, createdAt, f.clock)
}
