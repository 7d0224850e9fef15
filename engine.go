// Package gofer is a batch file-transfer engine: given a list of
// Requests, it performs either a bulk download or a bulk upload over
// FTP, FTPS, HTTP, or HTTPS, reporting progress and terminal status
// through caller-registered callbacks, and retrying transient failures
// up to a configurable bound.
package gofer

import (
	"context"
	"sync"
	"time"

	"github.com/bamsammich/gofer/internal/transport"
)

// MinSpeed is the low-speed watchdog's floor: a transfer averaging under
// this many bytes/sec over TimeoutTransfer seconds is treated as stalled.
const MinSpeed = 30 // bytes/sec

const (
	defaultMaxTrials       = 1
	defaultTimeoutConnect  = 10 * time.Second
	defaultTimeoutTransfer = 10 * time.Second
)

// Engine orchestrates one batch at a time: it validates requests,
// configures one transfer per request against a multi-transport client,
// classifies per-request errors, drives retries, aggregates progress,
// and delivers lifecycle callbacks. An Engine is safe for concurrent use
// — all exported methods take an internal lock for the duration of their
// own bookkeeping, never across a transport call.
type Engine struct {
	mu sync.Mutex

	username string
	password string

	maxTrials       int
	timeoutConnect  time.Duration
	timeoutTransfer time.Duration
	options         Options

	cb callbacks

	job *batchJob

	// resolver picks the transport.Endpoint for a URL scheme. It
	// defaults to resolveEndpoint; tests substitute a fake to exercise
	// the worker without touching the network.
	resolver transport.Resolver
}

// New returns an Engine configured with the spec's defaults: MaxTrials=1,
// both timeouts at 10s, no options, and logging no-op callbacks in every
// slot.
func New() *Engine {
	return &Engine{
		maxTrials:       defaultMaxTrials,
		timeoutConnect:  defaultTimeoutConnect,
		timeoutTransfer: defaultTimeoutTransfer,
		cb:              newCallbacks(),
		resolver:        resolveEndpoint,
	}
}

// SetCredentials sets the username/password presented to FTP/FTPS
// endpoints and as HTTP basic auth.
func (e *Engine) SetCredentials(user, pass string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.username, e.password = user, pass
}

// Credentials returns the currently configured username/password.
func (e *Engine) Credentials() (user, pass string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.username, e.password
}

// SetMaxTrials sets the retry bound, clamped to >= 0. 0 means "no retry
// beyond the first attempt".
func (e *Engine) SetMaxTrials(n int) {
	if n < 0 {
		n = 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.maxTrials = n
}

// MaxTrials returns the configured retry bound.
func (e *Engine) MaxTrials() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.maxTrials
}

// SetTimeoutConnect sets the connect timeout in seconds, clamped to >= 0.
// 0 disables the connect timeout.
func (e *Engine) SetTimeoutConnect(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timeoutConnect = time.Duration(seconds) * time.Second
}

// TimeoutConnect returns the configured connect timeout in seconds.
func (e *Engine) TimeoutConnect() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return int(e.timeoutConnect / time.Second)
}

// SetTimeoutTransfer sets the low-speed watchdog window in seconds,
// clamped to >= 0. 0 disables the watchdog.
func (e *Engine) SetTimeoutTransfer(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timeoutTransfer = time.Duration(seconds) * time.Second
}

// TimeoutTransfer returns the configured low-speed watchdog window in
// seconds.
func (e *Engine) TimeoutTransfer() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return int(e.timeoutTransfer / time.Second)
}

// SetOptions replaces the engine's option bitmask.
func (e *Engine) SetOptions(flags Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.options = flags
}

// OptionsFlags returns the configured option bitmask.
func (e *Engine) OptionsFlags() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.options
}

// SetCallbackStarted, SetCallbackProgress, SetCallbackCompleted, and
// SetCallbackFailed register the engine's four lifecycle callbacks. A
// nil argument restores the logging no-op default for that slot.
func (e *Engine) SetCallbackStarted(fn StartedFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fn == nil {
		fn = defaultStarted
	}
	e.cb.started = fn
}

func (e *Engine) SetCallbackProgress(fn ProgressFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fn == nil {
		fn = defaultProgress
	}
	e.cb.progress = fn
}

func (e *Engine) SetCallbackCompleted(fn CompletedFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fn == nil {
		fn = defaultCompleted
	}
	e.cb.completed = fn
}

func (e *Engine) SetCallbackFailed(fn FailedFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fn == nil {
		fn = defaultFailed
	}
	e.cb.failed = fn
}

// configSnapshot is an atomically-consistent read of everything a single
// transfer (re)configuration needs. The worker takes a fresh snapshot at
// prepare time and again before every retry, so a setter call made while
// a batch is running affects that batch's remaining retries, not just
// the next batch.
type configSnapshot struct {
	username        string
	password        string
	maxTrials       int
	timeoutConnect  time.Duration
	timeoutTransfer time.Duration
	options         Options
}

func (e *Engine) snapshotConfig() configSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return configSnapshot{
		username:        e.username,
		password:        e.password,
		maxTrials:       e.maxTrials,
		timeoutConnect:  e.timeoutConnect,
		timeoutTransfer: e.timeoutTransfer,
		options:         e.options,
	}
}

func (e *Engine) snapshotCallbacks() callbacks {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cb
}

// batchJob tracks the engine's single active batch.
type batchJob struct {
	direction Direction
	requests  []*Request

	cancel context.CancelFunc
	done   chan struct{}
}

// StartDownload validates requests and, if valid, spawns the batch
// worker as a DOWNLOAD batch and returns immediately.
func (e *Engine) StartDownload(requests []*Request) IdError {
	return e.start(DirectionDownload, requests)
}

// StartUpload validates requests and, if valid, spawns the batch worker
// as an UPLOAD batch and returns immediately.
func (e *Engine) StartUpload(requests []*Request) IdError {
	return e.start(DirectionUpload, requests)
}

func (e *Engine) start(direction Direction, requests []*Request) IdError {
	e.mu.Lock()

	if e.job != nil {
		e.mu.Unlock()
		return ErrBusy
	}
	if len(requests) == 0 {
		e.mu.Unlock()
		return ErrInvalidRequest
	}
	for _, r := range requests {
		if r.Direction != direction || !r.Locator.Valid() {
			e.mu.Unlock()
			return ErrInvalidRequest
		}
		if direction == DirectionUpload && r.Payload.Empty() {
			e.mu.Unlock()
			return ErrInvalidRequest
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := &batchJob{
		direction: direction,
		requests:  requests,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	e.job = job
	e.mu.Unlock()

	go e.runBatch(ctx, job)
	return ErrNone
}

// Abort requests that the current batch stop. The worker observes the
// request at its next activity-wait and terminates in-flight transfers
// with ErrUserAbort. A late Abort after the batch has already finished
// is a no-op.
func (e *Engine) Abort() {
	e.mu.Lock()
	job := e.job
	e.mu.Unlock()
	if job != nil {
		job.cancel()
	}
}

// InProgress reports whether a batch worker exists and has not yet
// finished.
func (e *Engine) InProgress() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.job != nil
}

// ProgressToPercent returns now/total*100. The caller is expected to
// ensure total > 0; for total == 0 this implementation returns 0 rather
// than dividing by zero.
func ProgressToPercent(total, now int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(now) / float64(total) * 100
}
