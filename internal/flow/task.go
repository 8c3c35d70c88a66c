package flow

import "time"

// Task identifies a kind of deferred work. Each task has its own generation counter;
// completions carrying an older generation are ignored.
type Task int

const (
	TaskRedirect Task = iota
	TaskCallback
	TaskCreateRepository
	TaskCommitMessage
	TaskPush
	TaskPull
	TaskNotification
	taskCount
)

var taskNames = [taskCount]string{
	TaskRedirect:         "redirect",
	TaskCallback:         "callback",
	TaskCreateRepository: "create_repository",
	TaskCommitMessage:    "commit_message",
	TaskPush:             "push",
	TaskPull:             "pull",
	TaskNotification:     "notification",
}

func (t Task) String() string {
	if t < 0 || t >= taskCount {
		return "unknown"
	}
	return taskNames[t]
}

// Timings holds the simulated latencies of the flow
type Timings struct {
	CallbackDelay        time.Duration
	CommitMessageDelay   time.Duration
	NotificationDuration time.Duration
	PullDelay            time.Duration
	PushDelay            time.Duration
	RedirectDelay        time.Duration
}

// DefaultTimings returns the latencies the hosted IDE uses
func DefaultTimings() Timings {
	return Timings{
		CallbackDelay:        2000 * time.Millisecond,
		CommitMessageDelay:   500 * time.Millisecond,
		NotificationDuration: 3000 * time.Millisecond,
		PullDelay:            1000 * time.Millisecond,
		PushDelay:            1000 * time.Millisecond,
		RedirectDelay:        1500 * time.Millisecond,
	}
}
