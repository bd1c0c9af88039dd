package shipment

// Note is an immutable message attached to a shipment, stamped with the time
// it was recorded.
type Note struct {
	message   string
	timestamp int64
}

// NewNote creates a note with the given message and epoch-millisecond timestamp.
func NewNote(message string, timestamp int64) Note {
	return Note{message: message, timestamp: timestamp}
}

// Message returns the note text.
func (n Note) Message() string {
	return n.message
}

// Timestamp returns when the note was recorded, in epoch milliseconds.
func (n Note) Timestamp() int64 {
	return n.timestamp
}
