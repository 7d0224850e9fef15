// Package transport drives many concurrent file transfers against FTP/FTPS
// and HTTP/HTTPS endpoints, standing in for a curl-style multi-handle: the
// engine registers a Spec per request and polls Multi for completions
// instead of blocking on each transfer in turn.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"
)

// ProgressFunc reports cumulative transfer progress for a single transfer.
// Returning true requests that the transfer abort.
type ProgressFunc func(total, current int64) (abort bool)

// Spec describes everything an Endpoint needs to drive one transfer.
type Spec struct {
	// ID demultiplexes completions back to the request that spawned them.
	ID string

	Upload bool
	URL    string

	Username string
	Password string

	ConnectTimeout time.Duration
	LowSpeedLimit  int64         // bytes/sec; 0 disables the watchdog
	LowSpeedTime   time.Duration // window over which LowSpeedLimit is enforced

	// FTPCreateDirs enables creation of missing remote directories for an
	// FTP/FTPS upload.
	FTPCreateDirs bool

	// UploadSize is the declared size of the payload for an upload.
	UploadSize int64

	// Writer receives downloaded bytes as they arrive; it must behave
	// like io.Writer (return n, err), appending to the request payload.
	Writer io.Writer

	// Reader yields upload bytes in order; EOF signals end of input.
	Reader io.Reader

	// Progress is invoked on every observed byte-count update.
	Progress ProgressFunc
}

// Completion reports the terminal outcome of one transfer.
type Completion struct {
	ID  string
	Err error
}

// Endpoint drives a single transfer described by Spec to completion.
// Implementations must honor ctx cancellation promptly.
type Endpoint interface {
	Transfer(ctx context.Context, spec Spec) error
}

// Resolver picks the Endpoint responsible for a URL's scheme.
type Resolver func(scheme string) (Endpoint, error)

// Multi fans a set of Spec registrations out to goroutines, one per
// in-flight transfer, and collects their completions on a single channel
// — the engine's non-blocking "poll the multi-handle" loop becomes a
// receive (with timeout) on Done().
type Multi struct {
	resolve Resolver

	mu       sync.Mutex
	inFlight map[string]context.CancelFunc
	done     chan Completion
}

// NewMulti creates a Multi that looks up endpoints via resolve.
func NewMulti(resolve Resolver) *Multi {
	return &Multi{
		resolve:  resolve,
		inFlight: make(map[string]context.CancelFunc),
		done:     make(chan Completion, 64),
	}
}

// Add registers spec and starts its transfer goroutine immediately. It
// returns an error only if the scheme cannot be resolved to an Endpoint;
// all transport-level failures surface later as a Completion.
func (m *Multi) Add(ctx context.Context, spec Spec) error {
	u, err := url.Parse(spec.URL)
	if err != nil {
		return fmt.Errorf("transport: parse url %q: %w", spec.URL, err)
	}
	ep, err := m.resolve(u.Scheme)
	if err != nil {
		return fmt.Errorf("transport: resolve scheme %q: %w", u.Scheme, err)
	}

	tctx, cancel := context.WithCancel(ctx)

	m.mu.Lock()
	m.inFlight[spec.ID] = cancel
	m.mu.Unlock()

	go func() {
		err := ep.Transfer(tctx, spec)
		m.mu.Lock()
		delete(m.inFlight, spec.ID)
		m.mu.Unlock()
		m.done <- Completion{ID: spec.ID, Err: err}
	}()
	return nil
}

// Remove cancels and forgets the in-flight transfer for id, if any. It
// does not wait for the goroutine to observe cancellation; the eventual
// Completion for id should be discarded by the caller.
func (m *Multi) Remove(id string) {
	m.mu.Lock()
	cancel, ok := m.inFlight[id]
	delete(m.inFlight, id)
	m.mu.Unlock()
	if ok {
		cancel()
	}
}

// CancelAll cancels every in-flight transfer. Used when the batch is
// aborted.
func (m *Multi) CancelAll() {
	m.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(m.inFlight))
	for _, c := range m.inFlight {
		cancels = append(cancels, c)
	}
	m.mu.Unlock()
	for _, c := range cancels {
		c()
	}
}

// Len returns the number of transfers currently in flight.
func (m *Multi) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inFlight)
}

// WaitForActivity blocks up to timeout for at least one Completion to
// arrive (or for ctx to be cancelled), then drains every Completion
// already queued without blocking further. It returns the batch of
// completions observed, which may be empty if nothing arrived in time.
func (m *Multi) WaitForActivity(ctx context.Context, timeout time.Duration) []Completion {
	var out []Completion

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case c := <-m.done:
		out = append(out, c)
	case <-timer.C:
		return out
	case <-ctx.Done():
		return out
	}

	for {
		select {
		case c := <-m.done:
			out = append(out, c)
		default:
			return out
		}
	}
}

// Close cancels every in-flight transfer. After Close, the Multi should
// not be reused.
func (m *Multi) Close() {
	m.CancelAll()
}
