package scheduler

import (
	"time"

	"github.com/renato0307/gitlink/internal/ports"
)

// Clock schedules on wall-clock time
type Clock struct{}

// NewClock creates a wall-clock scheduler
func NewClock() *Clock {
	return &Clock{}
}

// AfterFunc runs f in its own goroutine once d elapsed
func (c *Clock) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}
