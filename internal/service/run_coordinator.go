package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"rentdesk/internal/domain"
)

// RunCoordinator is the process-wide single-flight guard for generation runs.
// At most one run holds the flag at any time; a second caller is rejected
// immediately rather than queued. The flag only guards within one process;
// multi-process deployments need a storage-backed lock on top of this.
type RunCoordinator struct {
	mu        sync.Mutex
	running   bool
	month     domain.Month
	adminID   *uuid.UUID
	startedAt time.Time
}

// NewRunCoordinator creates an idle coordinator.
func NewRunCoordinator() *RunCoordinator {
	return &RunCoordinator{}
}

// TryStart claims the flag. It returns false without blocking when a run is
// already active.
func (c *RunCoordinator) TryStart(month domain.Month, adminID *uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return false
	}
	c.running = true
	c.month = month
	c.adminID = adminID
	c.startedAt = time.Now().UTC()
	return true
}

// Finish releases the flag. Callers pair it with TryStart via defer so every
// exit path, including panics recovered upstream, clears the flag.
func (c *RunCoordinator) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

// Reset force-clears the flag. Operator escape hatch for a flag believed
// stuck, e.g. after a crash mid-run left persistent state suggesting a run
// that no live process is executing.
func (c *RunCoordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *RunCoordinator) clearLocked() {
	c.running = false
	c.month = domain.Month{}
	c.adminID = nil
	c.startedAt = time.Time{}
}

// Status reports the current flag state.
func (c *RunCoordinator) Status() domain.RunStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := domain.RunStatus{IsRunning: c.running}
	if c.running {
		status.Month = c.month.String()
		status.AdminID = c.adminID
		startedAt := c.startedAt
		status.StartedAt = &startedAt
	}
	return status
}
