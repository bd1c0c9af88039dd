package update

// Event is a parsed update record. It is immutable.
//
// The kind is not checked against the known set here: an unrecognized kind
// is a dispatch error, not a format error.
type Event struct {
	kind       Kind
	shipmentID string
	timestamp  int64
	payload    string
	hasPayload bool
}

// NewEvent builds an Event without a payload.
func NewEvent(kind Kind, shipmentID string, timestamp int64) Event {
	return Event{kind: kind, shipmentID: shipmentID, timestamp: timestamp}
}

// NewEventWithPayload builds an Event carrying payload. An empty payload is
// treated as absent.
func NewEventWithPayload(kind Kind, shipmentID string, timestamp int64, payload string) Event {
	return Event{
		kind:       kind,
		shipmentID: shipmentID,
		timestamp:  timestamp,
		payload:    payload,
		hasPayload: payload != "",
	}
}

func (e Event) Kind() Kind {
	return e.kind
}

func (e Event) ShipmentID() string {
	return e.shipmentID
}

// Timestamp is the event time in epoch milliseconds, as written by the producer.
func (e Event) Timestamp() int64 {
	return e.timestamp
}

// Payload returns the optional fourth field and whether it was present.
func (e Event) Payload() (string, bool) {
	return e.payload, e.hasPayload
}
