// Package services provides domain services that act on shipments but do not
// belong to the Shipment entity itself.
//
// The package includes:
//   - UpdateDispatcher: the fixed table mapping an update kind to the state
//     change it performs on a shipment
package services
