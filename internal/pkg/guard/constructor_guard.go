// Package guard provides ConstructorGuard, a marker embedded in commands and
// queries so that zero values built with a struct literal are rejected by
// their Validate methods.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing value was produced by its constructor.
//
// Example usage:
//
//	var ErrGetShipmentQueryIsNotConstructed = errors.New("GetShipmentQuery must be created via NewGetShipmentQuery")
//
//	type GetShipmentQuery struct {
//	    shipmentID string
//	    guard      guard.ConstructorGuard
//	}
//
//	func (q GetShipmentQuery) Validate() error {
//	    return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
