// Package update contains the inbound event model of the tracker.
//
// An update is a single state-change record of the form
//
//	kind,shipmentId,timestamp[,payload]
//
// Parse turns one such text record into an Event. The package does not know
// how an event changes a shipment; that mapping lives in the domain services.
package update
