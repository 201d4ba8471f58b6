package auth

import "time"

// Clock supplies the current time. Expiry decisions go through it so tests
// can pin the clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
