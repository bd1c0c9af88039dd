package shipment

// Status is the lifecycle tag of a shipment.
//
// The tracker knows a closed set of tags, but SetStatus deliberately accepts
// any value: the dispatch layer is the only caller and only ever passes the
// known tags below.
type Status string

const (
	Created   Status = "created"
	Shipped   Status = "shipped"
	Delivered Status = "delivered"
	Delayed   Status = "delayed"
	Lost      Status = "lost"
	Canceled  Status = "canceled"
)

// IsKnown reports whether s belongs to the closed tag set.
func (s Status) IsKnown() bool {
	switch s {
	case Created, Shipped, Delivered, Delayed, Lost, Canceled:
		return true
	default:
		return false
	}
}

// String returns the raw tag.
func (s Status) String() string {
	return string(s)
}
