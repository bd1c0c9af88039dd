package shipment

// Snapshot is a read-only, point-in-time projection of a Shipment.
//
// A Snapshot owns copies of every slice, so it can be handed to other
// goroutines and encoded without holding the shipment's lock. Version grows
// by one with every state-changing Apply; it lets subscribers discard a
// snapshot that is older than one they already received.
type Snapshot struct {
	ID                        string
	Variant                   Variant
	CreatedAt                 int64
	Status                    Status
	CurrentLocation           string
	ExpectedDeliveryTimestamp int64
	Notes                     []Note
	Violations                []string
	UpdateHistory             []ShippingUpdate
	Version                   uint64
}

// IsNewerThan reports whether s reflects a later state of the same shipment than other.
func (s Snapshot) IsNewerThan(other Snapshot) bool {
	return s.Version > other.Version
}
