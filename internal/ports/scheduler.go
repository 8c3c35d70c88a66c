package ports

import "time"

// Timer is a pending scheduled function
type Timer interface {
	// Stop prevents the function from running. It reports false if the function
	// already ran or was stopped.
	Stop() bool
}

// Scheduler runs functions after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}
