package gofer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/bamsammich/gofer/internal/logsink"
	"github.com/bamsammich/gofer/internal/transport"
)

// runBatch is the batch worker: prepare every transfer, then loop
// draining completions (retrying or aborting as classification demands)
// until every request has succeeded, one has failed fatally, or the
// batch was aborted. Exactly one of cb.completed/cb.failed fires, after
// cb.started. Each (re)configuration takes its own fresh configSnapshot,
// so a setter call made while the batch is running affects that batch's
// remaining retries, not just the next batch.
func (e *Engine) runBatch(ctx context.Context, job *batchJob) {
	cb := e.snapshotCallbacks()
	cb.started(job.direction)

	multi := transport.NewMulti(e.resolver)
	defer multi.Close()

	byID := make(map[string]*Request, len(job.requests))
	for _, r := range job.requests {
		id := uuid.NewString()
		byID[id] = r
		if err := e.configureTransfer(ctx, multi, id, r, e.snapshotConfig()); err != nil {
			logsink.Errorf("gofer: configure transfer: %v", err)
			e.finish(job, cb, ErrInternal)
			return
		}
	}

	remaining := len(byID)
	for remaining > 0 {
		completions := multi.WaitForActivity(ctx, time.Second)

		if ctx.Err() != nil {
			multi.CancelAll()
			e.finish(job, cb, ErrUserAbort)
			return
		}

		for _, c := range completions {
			req, ok := byID[c.ID]
			if !ok {
				continue
			}

			if c.Err == nil {
				remaining--
				continue
			}

			code, retryable := classifyTransferErr(c.Err)
			if !retryable {
				multi.CancelAll()
				e.finish(job, cb, code)
				return
			}

			snap := e.snapshotConfig()
			if req.Trials >= snap.maxTrials {
				multi.CancelAll()
				e.finish(job, cb, ErrMaxTrials)
				return
			}

			req.Trials++
			req.ReadCursor = 0
			req.SizeTotal.Store(0)
			req.SizeCurrent.Store(0)

			if err := e.configureTransfer(ctx, multi, c.ID, req, snap); err != nil {
				logsink.Errorf("gofer: reconfigure transfer: %v", err)
				multi.CancelAll()
				e.finish(job, cb, ErrInternal)
				return
			}
		}

		e.aggregateProgress(job, cb)
	}

	e.finish(job, cb, ErrNone)
}

// aggregateProgress sums SizeTotal/SizeCurrent across every request in
// the batch and reports the totals via cb.progress.
func (e *Engine) aggregateProgress(job *batchJob, cb callbacks) {
	var total, current int64
	for _, r := range job.requests {
		total += r.SizeTotal.Load()
		current += r.SizeCurrent.Load()
	}
	cb.progress(job.direction, total, current)
}

// finish emits the single terminal callback, then clears the engine's job
// handle so InProgress flips false. The callback must fire first: once
// InProgress observes false, a caller may start the next batch, and no
// callback of this batch may arrive after that start returns.
func (e *Engine) finish(job *batchJob, cb callbacks, code IdError) {
	if code == ErrNone {
		cb.completed(job.direction)
	} else {
		cb.failed(job.direction, code)
	}

	e.mu.Lock()
	e.job = nil
	e.mu.Unlock()

	close(job.done)
}

// configureTransfer builds the per-transfer Spec for r (§4.2) and
// registers it with multi under id. It is used both for a request's
// first attempt and for reattaching it after a retryable failure.
func (e *Engine) configureTransfer(ctx context.Context, multi *transport.Multi, id string, r *Request, snap configSnapshot) error {
	spec := transport.Spec{
		ID:             id,
		URL:            r.Locator.Format(),
		Username:       snap.username,
		Password:       snap.password,
		ConnectTimeout: snap.timeoutConnect,
		LowSpeedLimit:  MinSpeed,
		LowSpeedTime:   snap.timeoutTransfer,
		FTPCreateDirs:  r.Direction == DirectionUpload && r.Locator.Scheme.FTPFamily() && snap.options.Has(OptFTPCreateDirs),
	}

	switch r.Direction {
	case DirectionDownload:
		spec.Writer = &downloadWriter{req: r}
	case DirectionUpload:
		spec.Upload = true
		spec.UploadSize = int64(r.Payload.Len())
		spec.Reader = &uploadReader{req: r}
	default:
		return fmt.Errorf("gofer: request has no direction configured")
	}

	spec.Progress = func(total, current int64) bool {
		r.SizeTotal.Store(total)
		r.SizeCurrent.Store(current)
		return ctx.Err() != nil
	}

	return multi.Add(ctx, spec)
}

// resolveEndpoint picks the transport.Endpoint for a URL scheme.
func resolveEndpoint(scheme string) (transport.Endpoint, error) {
	s, ok := ParseScheme(scheme)
	if !ok {
		return nil, fmt.Errorf("gofer: unsupported scheme %q", scheme)
	}
	if s.FTPFamily() {
		return transport.NewFTPEndpoint(), nil
	}
	return transport.NewHTTPEndpoint(), nil
}

// downloadWriter appends downloaded bytes to a Request's payload. It
// implements the write adapter of §4.2: each call appends n bytes and
// reports n consumed, the same contract io.Writer already gives us.
type downloadWriter struct {
	req *Request
}

func (w *downloadWriter) Write(p []byte) (int, error) {
	w.req.Payload.PushBytes(p)
	return len(p), nil
}

// uploadReader yields upload bytes from a Request's payload starting at
// ReadCursor, advancing it as bytes are consumed — the read adapter of
// §4.2, expressed as io.Reader (io.EOF stands in for "returning 0").
type uploadReader struct {
	req *Request
}

func (r *uploadReader) Read(p []byte) (int, error) {
	remaining := r.req.Payload.Len() - r.req.ReadCursor
	if remaining <= 0 {
		return 0, io.EOF
	}
	n := copy(p, r.req.Payload.Bytes()[r.req.ReadCursor:])
	r.req.ReadCursor += n
	return n, nil
}
