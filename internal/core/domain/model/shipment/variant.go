package shipment

import (
	"errors"
	"fmt"
	"strings"

	"tracker/internal/pkg/errs"
)

// ErrUnknownVariant is the cause attached when a variant name cannot be parsed.
var ErrUnknownVariant = errors.New("unknown shipment variant")

// Variant is the service class of a shipment. It selects the delivery-time
// policy applied whenever the expected-delivery timestamp is set.
type Variant int

const (
	// Unknown is the zero value and is never accepted by the factory.
	Unknown Variant = iota

	// Standard shipments carry no delivery-time policy.
	Standard

	// Express shipments must be delivered within 3 days of creation.
	Express

	// Overnight shipments must be delivered within 24 hours of creation.
	Overnight

	// Bulk shipments must not be delivered earlier than 3 days after creation.
	Bulk
)

func getVariantNames() map[Variant]string {
	return map[Variant]string{
		Standard:  "STANDARD",
		Express:   "EXPRESS",
		Overnight: "OVERNIGHT",
		Bulk:      "BULK",
	}
}

// Variants lists every valid variant in declaration order.
func Variants() []Variant {
	return []Variant{Standard, Express, Overnight, Bulk}
}

// ParseVariant resolves a variant name case-insensitively.
//
// Returns:
//   - the matching Variant
//   - an errs.ValueIsInvalidError wrapping ErrUnknownVariant for any other input
//
// Example:
//
//	v, err := shipment.ParseVariant("express") // Express, nil
func ParseVariant(name string) (Variant, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for variant, variantName := range getVariantNames() {
		if variantName == normalized {
			return variant, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"variant",
		fmt.Errorf("%w: %q", ErrUnknownVariant, name),
	)
}

// ParseVariantOrDefault resolves name like ParseVariant but falls back to
// Standard for a missing or unrecognized name. It is used by the implicit
// creation path, where a bad payload must not reject the update.
func ParseVariantOrDefault(name string) Variant {
	variant, err := ParseVariant(name)
	if err != nil {
		return Standard
	}
	return variant
}

// Validate returns an error for Unknown and out-of-range values.
func (v Variant) Validate() error {
	if _, ok := getVariantNames()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("variant", fmt.Errorf("%d is not a valid variant", v))
	}
	return nil
}

// String returns the upper-case variant name, or "UNKNOWN".
func (v Variant) String() string {
	if name, ok := getVariantNames()[v]; ok {
		return name
	}
	return "UNKNOWN"
}
