package shipment

// ShippingUpdate is one immutable entry of a shipment's status history.
type ShippingUpdate struct {
	previousStatus Status
	newStatus      Status
	timestamp      int64
}

// NewShippingUpdate records a transition from previous to next at timestamp.
func NewShippingUpdate(previous, next Status, timestamp int64) ShippingUpdate {
	return ShippingUpdate{previousStatus: previous, newStatus: next, timestamp: timestamp}
}

// PreviousStatus returns the status before the transition.
func (u ShippingUpdate) PreviousStatus() Status {
	return u.previousStatus
}

// NewStatus returns the status after the transition.
func (u ShippingUpdate) NewStatus() Status {
	return u.newStatus
}

// Timestamp returns when the transition was applied, in epoch milliseconds.
func (u ShippingUpdate) Timestamp() int64 {
	return u.timestamp
}
