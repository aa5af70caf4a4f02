// Package clock provides the production implementation of port.Clock.
package clock

import "time"

// System reads the wall clock in UTC.
type System struct{}

// Now returns the current UTC time.
func (System) Now() time.Time { return time.Now().UTC() }
