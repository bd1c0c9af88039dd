package shipment

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through NewShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// DefaultLocation is the current location of a shipment before any location update.
const DefaultLocation = "Unknown"

// Shipment is the entity tracking one shipment's lifecycle. It is the unit of
// consistency: every mutation runs under the shipment's own lock, and every
// read goes through a Snapshot taken under the same lock.
//
// Shipment follows these invariants:
//   - The identifier, variant and creation timestamp are immutable
//   - Update history holds exactly one entry per status change, in order
//   - Notes and violations are only ever appended
//   - The delivery rule of the variant runs whenever the expected-delivery
//     timestamp is set
//
// A Shipment must always be used through a pointer; copying it would copy its lock.
type Shipment struct {
	id        string
	variant   Variant
	createdAt int64
	clock     kernel.Clock

	mu               sync.RWMutex
	status           Status
	currentLocation  string
	expectedDelivery int64
	notes            []Note
	updateHistory    []ShippingUpdate
	violations       []string
	version          uint64

	isConstructed bool
}

// NewShipment creates a Shipment in the "created" status at DefaultLocation
// with no expected-delivery timestamp.
//
// Parameters:
//   - id: opaque, non-blank identifier
//   - variant: a valid Variant
//   - createdAt: creation timestamp in epoch milliseconds (must not be negative)
//   - clock: source of "now" for history entries, notes and delivery rules
//
// Returns:
//   - *Shipment: the constructed shipment
//   - error: the joined validation errors of every invalid parameter
func NewShipment(id string, variant Variant, createdAt int64, clock kernel.Clock) (*Shipment, error) {
	s := &Shipment{
		status:          Created,
		currentLocation: DefaultLocation,
		notes:           make([]Note, 0),
		updateHistory:   make([]ShippingUpdate, 0),
		violations:      make([]string, 0),
		isConstructed:   true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setVariant(variant),
		s.setCreatedAt(createdAt),
		s.setClock(clock),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Shipment was constructed through NewShipment.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment identifier.
func (s *Shipment) ID() string {
	return s.id
}

// Variant returns the shipment class.
func (s *Shipment) Variant() Variant {
	return s.variant
}

// CreatedAt returns the creation timestamp in epoch milliseconds.
func (s *Shipment) CreatedAt() int64 {
	return s.createdAt
}

// Apply runs fn with exclusive access to the shipment and returns a snapshot
// of the resulting state taken before the lock is released.
//
// Every write of fn is visible atomically to readers: no snapshot ever
// observes a partially applied fn. The Mutation must not be retained after fn
// returns. The version only advances when fn changed something.
//
// Example:
//
//	snap := s.Apply(func(m *shipment.Mutation) {
//	    m.SetStatus(shipment.Shipped)
//	    m.SetDeliveryTimestamp(1690300000000)
//	})
func (s *Shipment) Apply(fn func(m *Mutation)) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &Mutation{shipment: s}
	fn(m)
	m.shipment = nil
	if m.changed {
		s.version++
	}

	return s.snapshotLocked()
}

// SetStatus records the transition to status in the update history and makes it current.
func (s *Shipment) SetStatus(status Status) Snapshot {
	return s.Apply(func(m *Mutation) { m.SetStatus(status) })
}

// SetLocation replaces the current location.
func (s *Shipment) SetLocation(location string) Snapshot {
	return s.Apply(func(m *Mutation) { m.SetLocation(location) })
}

// SetDeliveryTimestamp sets the expected-delivery timestamp and runs the variant's delivery rule.
func (s *Shipment) SetDeliveryTimestamp(timestamp int64) Snapshot {
	return s.Apply(func(m *Mutation) { m.SetDeliveryTimestamp(timestamp) })
}

// AddNote appends a note stamped with the current time.
func (s *Shipment) AddNote(message string) Snapshot {
	return s.Apply(func(m *Mutation) { m.AddNote(message) })
}

// Snapshot returns a self-consistent copy of the current state.
func (s *Shipment) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *Shipment) snapshotLocked() Snapshot {
	notes := make([]Note, len(s.notes))
	copy(notes, s.notes)
	violations := make([]string, len(s.violations))
	copy(violations, s.violations)
	history := make([]ShippingUpdate, len(s.updateHistory))
	copy(history, s.updateHistory)

	return Snapshot{
		ID:                        s.id,
		Variant:                   s.variant,
		CreatedAt:                 s.createdAt,
		Status:                    s.status,
		CurrentLocation:           s.currentLocation,
		ExpectedDeliveryTimestamp: s.expectedDelivery,
		Notes:                     notes,
		Violations:                violations,
		UpdateHistory:             history,
		Version:                   s.version,
	}
}

func (s *Shipment) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("id")
	}
	s.id = id
	return nil
}

func (s *Shipment) setVariant(variant Variant) error {
	if err := variant.Validate(); err != nil {
		return err
	}
	s.variant = variant
	return nil
}

func (s *Shipment) setCreatedAt(createdAt int64) error {
	if createdAt < 0 {
		return errs.NewValueIsInvalidErrorWithCause("createdAt", fmt.Errorf("%d is negative", createdAt))
	}
	s.createdAt = createdAt
	return nil
}

func (s *Shipment) setClock(clock kernel.Clock) error {
	if clock == nil {
		return errs.NewValueIsRequiredError("clock")
	}
	s.clock = clock
	return nil
}
