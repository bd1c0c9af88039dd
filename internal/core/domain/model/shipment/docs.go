// Package shipment provides the Shipment entity, its state machine, and the
// class-specific delivery-time policies of the tracker.
//
// The package includes:
//   - Shipment: the entity holding one shipment's mutable state behind its own lock
//   - Mutation: the write view handed to update handlers inside Shipment.Apply
//   - Variant: the shipment service class (STANDARD, EXPRESS, OVERNIGHT, BULK)
//   - CheckDeliveryRule: the pure delivery-rule function evaluated per variant
//   - Snapshot: an immutable point-in-time projection used for reads and fan-out
//   - Factory: the single construction path used by the registry
//
// Key business rules:
//   - The identifier and creation timestamp never change after construction
//   - Update history, notes and violations are append-only
//   - Delivery rules run every time the expected-delivery timestamp is set,
//     never on creation, and never for the unset value 0
//   - At most one violation is recorded per rule check; a past date
//     short-circuits the duration check
package shipment
