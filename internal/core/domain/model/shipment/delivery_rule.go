package shipment

import "fmt"

const (
	hourMillis int64 = 60 * 60 * 1000
	dayMillis  int64 = 24 * hourMillis

	// UnsetDeliveryTimestamp marks a shipment without an expected delivery date.
	UnsetDeliveryTimestamp int64 = 0
)

// CheckDeliveryRule evaluates the delivery-time policy of variant for an
// expected-delivery timestamp. All timestamps are epoch milliseconds.
//
// Parameters:
//   - variant: the shipment class whose policy applies
//   - createdAt: the shipment creation timestamp
//   - expected: the expected-delivery timestamp being set
//   - now: the current time, read by the caller at validation time
//
// Returns:
//   - ("", false) when the timestamp complies or is unset (0)
//   - (message, true) with the single violation to record
//
// Policy (expected ≠ 0):
//
//	STANDARD   no rule
//	EXPRESS    expected < now → past; expected − createdAt >  3 days → "exceeds 3-day limit"
//	OVERNIGHT  expected < now → past; expected − createdAt >= 24 h   → "exceeds 24-hour limit"
//	BULK       expected < now → past; expected − createdAt <  3 days → "before 3-day minimum"
//
// The past-date check short-circuits the duration check, so one call yields
// at most one violation.
func CheckDeliveryRule(variant Variant, createdAt, expected, now int64) (string, bool) {
	if expected == UnsetDeliveryTimestamp || variant == Standard || variant.Validate() != nil {
		return "", false
	}

	if expected < now {
		return fmt.Sprintf("%s shipment delivery date cannot be in the past", variantLabel(variant)), true
	}

	window := expected - createdAt
	switch variant {
	case Express:
		if window > 3*dayMillis {
			return "Express shipment delivery exceeds 3-day limit", true
		}
	case Overnight:
		if window >= dayMillis {
			return "Overnight shipment delivery exceeds 24-hour limit", true
		}
	case Bulk:
		if window < 3*dayMillis {
			return "Bulk shipment delivery before 3-day minimum", true
		}
	case Unknown, Standard:
	}

	return "", false
}

func variantLabel(v Variant) string {
	switch v {
	case Express:
		return "Express"
	case Overnight:
		return "Overnight"
	case Bulk:
		return "Bulk"
	case Unknown, Standard:
	}
	return "Standard"
}
