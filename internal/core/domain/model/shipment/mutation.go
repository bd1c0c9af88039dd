package shipment

// Mutation is the write view of a Shipment handed to the function passed to
// Shipment.Apply. It is only valid while that function runs.
type Mutation struct {
	shipment *Shipment
	changed  bool
}

// SetStatus appends (current, status, now) to the update history and makes status current.
// Any tag is accepted.
func (m *Mutation) SetStatus(status Status) {
	s := m.shipment
	s.updateHistory = append(s.updateHistory, NewShippingUpdate(s.status, status, s.clock.NowMillis()))
	s.status = status
	m.changed = true
}

// SetLocation replaces the current location without validation.
func (m *Mutation) SetLocation(location string) {
	m.shipment.currentLocation = location
	m.changed = true
}

// SetDeliveryTimestamp sets the expected-delivery timestamp and then checks
// it against the variant's delivery rule, appending at most one violation.
func (m *Mutation) SetDeliveryTimestamp(timestamp int64) {
	s := m.shipment
	s.expectedDelivery = timestamp
	m.changed = true

	if violation, ok := CheckDeliveryRule(s.variant, s.createdAt, timestamp, s.clock.NowMillis()); ok {
		m.addViolation(violation)
	}
}

// AddNote appends a note stamped with the current time.
func (m *Mutation) AddNote(message string) {
	s := m.shipment
	s.notes = append(s.notes, NewNote(message, s.clock.NowMillis()))
	m.changed = true
}

// Status returns the status as seen inside the current Apply.
func (m *Mutation) Status() Status {
	return m.shipment.status
}

// ExpectedDeliveryTimestamp returns the expected-delivery timestamp as seen inside the current Apply.
func (m *Mutation) ExpectedDeliveryTimestamp() int64 {
	return m.shipment.expectedDelivery
}

func (m *Mutation) addViolation(message string) {
	m.shipment.violations = append(m.shipment.violations, message)
	m.changed = true
}
