package update

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tracker/internal/pkg/errs"
)

// ErrMalformedRecord is the cause attached to every parse failure.
var ErrMalformedRecord = errors.New("malformed update record")

const (
	minFields = 3
	maxFields = 4
)

// Parse decodes a single update record.
//
// Only the first three commas separate fields; anything after the third comma
// is the payload verbatim, commas included. Whitespace surrounding the whole
// record is trimmed, and so is whitespace around kind, id and timestamp.
//
// Returns:
//   - Event: the decoded record
//   - error: errs.ValueIsInvalidError wrapping ErrMalformedRecord when fewer
//     than three fields are present or the timestamp is not an integer;
//     errs.ValueIsRequiredError when the shipment id is blank
//
// Example:
//
//	evt, err := update.Parse("location,s1,1690000000000,Denver, CO")
//	// evt.Payload() == "Denver, CO", true
func Parse(record string) (Event, error) {
	fields := strings.SplitN(strings.TrimSpace(record), ",", maxFields)
	if len(fields) < minFields {
		return Event{}, errs.NewValueIsInvalidErrorWithCause(
			"update record",
			fmt.Errorf("%w: expected at least %d fields, got %d", ErrMalformedRecord, minFields, len(fields)),
		)
	}

	shipmentID := strings.TrimSpace(fields[1])
	if shipmentID == "" {
		return Event{}, errs.NewValueIsRequiredError("shipment id")
	}

	rawTimestamp := strings.TrimSpace(fields[2])
	timestamp, err := strconv.ParseInt(rawTimestamp, 10, 64)
	if err != nil {
		return Event{}, errs.NewValueIsInvalidErrorWithCause(
			"update record",
			fmt.Errorf("%w: timestamp %q is not an integer", ErrMalformedRecord, rawTimestamp),
		)
	}

	kind := normalizeKind(fields[0])
	if len(fields) == maxFields {
		return NewEventWithPayload(kind, shipmentID, timestamp, fields[3]), nil
	}
	return NewEvent(kind, shipmentID, timestamp), nil
}
