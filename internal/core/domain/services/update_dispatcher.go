package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/core/domain/model/update"
)

var (
	// ErrUnrecognizedUpdateKind is returned when no handler is registered for an update kind.
	ErrUnrecognizedUpdateKind = errors.New("unrecognized update kind")

	// ErrShipmentIsRequired is returned when Dispatch is called without a constructed shipment.
	ErrShipmentIsRequired = errors.New("shipment is required for dispatch")
)

// UpdateHandler performs the state change of one update kind. It runs inside
// Shipment.Apply, so every write it makes lands atomically.
type UpdateHandler func(m *shipment.Mutation, evt update.Event)

// UpdateDispatcher routes a parsed update to the handler registered for its kind.
//
// Dispatch table:
//
//	created    SetStatus(created)
//	shipped    SetStatus(shipped); SetDeliveryTimestamp(payload, or 0)
//	location   SetLocation(payload, or "Unknown")
//	delivered  SetStatus(delivered)
//	delayed    SetStatus(delayed); SetDeliveryTimestamp(payload, or current expected)
//	lost       SetStatus(lost)
//	canceled   SetStatus(canceled)
//	noteadded  AddNote(payload), only when the payload is not blank
//
// Example usage:
//
//	dispatcher := services.NewUpdateDispatcher()
//	evt, _ := update.Parse("shipped,s1,1690000000000,1690200000000")
//	snap, err := dispatcher.Dispatch(s, evt)
//	if errors.Is(err, services.ErrUnrecognizedUpdateKind) {
//	    // nothing was changed
//	}
type UpdateDispatcher struct {
	handlers map[update.Kind]UpdateHandler
}

// NewUpdateDispatcher creates a dispatcher with the standard handler table.
func NewUpdateDispatcher() UpdateDispatcher {
	return UpdateDispatcher{
		handlers: map[update.Kind]UpdateHandler{
			update.KindCreated:   setStatusHandler(shipment.Created),
			update.KindShipped:   handleShipped,
			update.KindLocation:  handleLocation,
			update.KindDelivered: setStatusHandler(shipment.Delivered),
			update.KindDelayed:   handleDelayed,
			update.KindLost:      setStatusHandler(shipment.Lost),
			update.KindCanceled:  setStatusHandler(shipment.Canceled),
			update.KindNoteAdded: handleNoteAdded,
		},
	}
}

// Supports reports whether kind has a registered handler.
func (d UpdateDispatcher) Supports(kind update.Kind) bool {
	_, ok := d.handlers[kind]
	return ok
}

// Dispatch applies evt to s and returns the snapshot taken right after the change.
//
// Returns:
//   - shipment.Snapshot: the state produced by this update
//   - error: ErrUnrecognizedUpdateKind for an unknown kind, ErrShipmentIsRequired
//     for an unconstructed shipment; the shipment is left untouched in both cases
func (d UpdateDispatcher) Dispatch(s *shipment.Shipment, evt update.Event) (shipment.Snapshot, error) {
	handler, ok := d.handlers[evt.Kind()]
	if !ok {
		return shipment.Snapshot{}, fmt.Errorf("%w: %q", ErrUnrecognizedUpdateKind, evt.Kind())
	}
	if err := s.Validate(); err != nil {
		return shipment.Snapshot{}, errors.Join(ErrShipmentIsRequired, err)
	}

	return s.Apply(func(m *shipment.Mutation) {
		handler(m, evt)
	}), nil
}

func setStatusHandler(status shipment.Status) UpdateHandler {
	return func(m *shipment.Mutation, _ update.Event) {
		m.SetStatus(status)
	}
}

func handleShipped(m *shipment.Mutation, evt update.Event) {
	m.SetStatus(shipment.Shipped)
	m.SetDeliveryTimestamp(payloadTimestamp(evt, shipment.UnsetDeliveryTimestamp))
}

func handleLocation(m *shipment.Mutation, evt update.Event) {
	location, ok := evt.Payload()
	if !ok {
		location = shipment.DefaultLocation
	}
	m.SetLocation(location)
}

func handleDelayed(m *shipment.Mutation, evt update.Event) {
	m.SetStatus(shipment.Delayed)
	m.SetDeliveryTimestamp(payloadTimestamp(evt, m.ExpectedDeliveryTimestamp()))
}

func handleNoteAdded(m *shipment.Mutation, evt update.Event) {
	note, ok := evt.Payload()
	if !ok || strings.TrimSpace(note) == "" {
		return
	}
	m.AddNote(note)
}

func payloadTimestamp(evt update.Event, fallback int64) int64 {
	payload, ok := evt.Payload()
	if !ok {
		return fallback
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(payload), 10, 64)
	if err != nil {
		return fallback
	}
	return ts
}
