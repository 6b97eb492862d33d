package temporal

import (
	"time"
)

// Clock is an explicit source of the current time.
type Clock interface {
	// Now returns seconds since the epoch and nanoseconds in [0, 1e9).
	Now() (int64, int32)
}

// WallClock reads the host's real-time clock.
type WallClock struct{}

func (WallClock) Now() (int64, int32) {
	now := time.Now()
	return now.Unix(), int32(now.Nanosecond())
}

// FixedClock always returns the same instant.
type FixedClock struct {
	Seconds     int64
	Nanoseconds int32
}

func (c FixedClock) Now() (int64, int32) {
	return c.Seconds, c.Nanoseconds
}
