package gofer

import "github.com/bamsammich/gofer/internal/logsink"

// StartedFunc is invoked exactly once per batch, before any Progress
// callback.
type StartedFunc func(direction Direction)

// ProgressFunc is invoked zero or more times per batch with the
// aggregate byte totals across every request in the batch, finished
// requests included.
type ProgressFunc func(direction Direction, totalBytes, currentBytes int64)

// CompletedFunc is invoked exactly once per batch, in place of
// FailedFunc, when every request in the batch succeeded.
type CompletedFunc func(direction Direction)

// FailedFunc is invoked exactly once per batch, in place of
// CompletedFunc, when the batch ended in error.
type FailedFunc func(direction Direction, err IdError)

func defaultStarted(direction Direction) {
	logsink.Infof("gofer: batch started direction=%s", direction)
}

func defaultProgress(direction Direction, total, current int64) {
	logsink.Debugf("gofer: batch progress direction=%s total=%d current=%d", direction, total, current)
}

func defaultCompleted(direction Direction) {
	logsink.Infof("gofer: batch completed direction=%s", direction)
}

func defaultFailed(direction Direction, err IdError) {
	logsink.Errorf("gofer: batch failed direction=%s error=%s", direction, ErrorToText(err))
}

// callbacks bundles the four lifecycle callbacks. The zero value is not
// usable directly — use newCallbacks to get one with logging defaults
// installed in every slot.
type callbacks struct {
	started   StartedFunc
	progress  ProgressFunc
	completed CompletedFunc
	failed    FailedFunc
}

func newCallbacks() callbacks {
	return callbacks{
		started:   defaultStarted,
		progress:  defaultProgress,
		completed: defaultCompleted,
		failed:    defaultFailed,
	}
}
