package domain

import "time"

// CurrentTimeProvider provides the current time.
type CurrentTimeProvider interface {
	Now() time.Time
}

// Elapsed reads the clock once and returns the time passed since start together with the reading.
func Elapsed(tp CurrentTimeProvider, start time.Time) (time.Duration, time.Time) {
	now := tp.Now()
	return now.Sub(start), now
}
