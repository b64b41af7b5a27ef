package kernel

import "time"

// Clock is the source of "now" for lifecycle rules such as bidding expiration.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
