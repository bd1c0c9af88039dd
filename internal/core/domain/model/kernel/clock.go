package kernel

import "time"

// Clock supplies the current time as epoch milliseconds, the unit used for
// every timestamp in the shipment domain.
//
// Delivery rules read the clock at validation time, so tests inject a fixed
// or manually advanced clock instead of depending on wall time.
type Clock interface {
	NowMillis() int64
}

// ClockFunc adapts an ordinary function to the Clock interface.
//
// Example:
//
//	fixed := kernel.ClockFunc(func() int64 { return 1690000000000 })
type ClockFunc func() int64

// NowMillis calls f.
func (f ClockFunc) NowMillis() int64 {
	return f()
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// NewSystemClock returns a Clock backed by time.Now.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// NowMillis returns the current Unix time in milliseconds.
func (SystemClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}
