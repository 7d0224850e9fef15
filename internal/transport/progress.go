package transport

import (
	"context"
	"errors"
	"io"
	"time"
)

// errAborted is the sentinel a progress-wrapped Reader/Writer returns to
// its caller (the ftp/http library) to force the in-flight request to
// fail, rather than appear to complete normally.
var errAborted = errors.New("transport: aborted")

// progressReader wraps an upload source, reporting cumulative byte counts
// and enforcing the low-speed watchdog and cancellation on every Read.
type progressReader struct {
	ctx      context.Context
	r        io.Reader
	total    int64
	current  int64
	progress ProgressFunc
	watchdog *lowSpeedWatchdog
	aborted  bool
}

func (p *progressReader) Read(buf []byte) (int, error) {
	select {
	case <-p.ctx.Done():
		p.aborted = true
		return 0, errAborted
	default:
	}

	n, err := p.r.Read(buf)
	if n > 0 {
		p.current += int64(n)
		if p.checkAbort() {
			if !p.aborted {
				return n, ErrLowSpeed
			}
			return n, errAborted
		}
	}
	return n, err
}

func (p *progressReader) checkAbort() bool {
	if p.watchdog.observe(time.Now(), p.current) {
		return true
	}
	if p.progress != nil && p.progress(p.total, p.current) {
		p.aborted = true
		return true
	}
	return false
}

// progressWriter wraps a download sink analogously to progressReader.
type progressWriter struct {
	ctx      context.Context
	w        io.Writer
	total    int64
	current  int64
	progress ProgressFunc
	watchdog *lowSpeedWatchdog
	aborted  bool
}

func (p *progressWriter) Write(buf []byte) (int, error) {
	select {
	case <-p.ctx.Done():
		p.aborted = true
		return 0, errAborted
	default:
	}

	n, err := p.w.Write(buf)
	if n > 0 {
		p.current += int64(n)
		if err == nil && p.checkAbort() {
			if !p.aborted {
				return n, ErrLowSpeed
			}
			return n, errAborted
		}
	}
	return n, err
}

func (p *progressWriter) checkAbort() bool {
	if p.watchdog.observe(time.Now(), p.current) {
		return true
	}
	if p.progress != nil && p.progress(p.total, p.current) {
		p.aborted = true
		return true
	}
	return false
}

// lowSpeedWatchdog flags a transfer as too slow once its rolling
// byte-rate over a trailing window drops under limit. It keeps one
// timestamped sample per observation and trims samples older than the
// per-request window.
type lowSpeedWatchdog struct {
	limit    int64
	window   time.Duration
	disabled bool
	start    time.Time
	history  []speedSample
}

type speedSample struct {
	at    time.Time
	bytes int64
}

// newLowSpeedWatchdog builds a watchdog enforcing limit bytes/sec over
// window. A non-positive limit or window disables the watchdog.
func newLowSpeedWatchdog(limit int64, window time.Duration) *lowSpeedWatchdog {
	return &lowSpeedWatchdog{
		limit:    limit,
		window:   window,
		disabled: limit <= 0 || window <= 0,
	}
}

// observe records a new cumulative byte count at now and reports whether
// the rolling rate over window has dropped below limit. It never fires
// until at least one full window has elapsed since the first observation.
func (w *lowSpeedWatchdog) observe(now time.Time, cumulative int64) bool {
	if w == nil || w.disabled {
		return false
	}
	if w.start.IsZero() {
		w.start = now
	}
	w.history = append(w.history, speedSample{at: now, bytes: cumulative})

	cutoff := now.Add(-w.window)
	trim := 0
	for trim < len(w.history)-1 && w.history[trim].at.Before(cutoff) {
		trim++
	}
	w.history = w.history[trim:]

	if now.Sub(w.start) < w.window || len(w.history) < 2 {
		return false
	}

	oldest := w.history[0]
	elapsed := now.Sub(oldest.at).Seconds()
	if elapsed <= 0 {
		return false
	}
	rate := float64(cumulative-oldest.bytes) / elapsed
	return rate < float64(w.limit)
}
