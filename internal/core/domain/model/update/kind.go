package update

import "strings"

// Kind is the event type tag of an update record.
type Kind string

const (
	KindCreated   Kind = "created"
	KindShipped   Kind = "shipped"
	KindLocation  Kind = "location"
	KindDelivered Kind = "delivered"
	KindDelayed   Kind = "delayed"
	KindLost      Kind = "lost"
	KindCanceled  Kind = "canceled"
	KindNoteAdded Kind = "noteadded"
)

// Kinds lists every kind the tracker understands.
func Kinds() []Kind {
	return []Kind{
		KindCreated,
		KindShipped,
		KindLocation,
		KindDelivered,
		KindDelayed,
		KindLost,
		KindCanceled,
		KindNoteAdded,
	}
}

func normalizeKind(raw string) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(raw)))
}

// String returns the raw tag.
func (k Kind) String() string {
	return string(k)
}
