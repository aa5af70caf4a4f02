package port

import "time"

// Clock abstracts wall-clock time so the scheduler and generation engine can
// be tested against a fixed "current month".
type Clock interface {
	Now() time.Time
}
