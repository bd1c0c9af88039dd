// Package kernel provides the domain primitives shared by the shipment model
// and the tracker's adapters.
//
// The package includes:
//   - Clock: the source of "now" in epoch milliseconds, injected wherever a
//     rule depends on the current time
//   - UUID: a value object for generated identifiers (subscriptions, journal rows)
//
// Both primitives are immutable and safe for concurrent use.
package kernel
