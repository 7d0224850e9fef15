package gofer

import "sync/atomic"

// Direction indicates whether a Request fills its payload (download) or
// drains it (upload).
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionDownload
	DirectionUpload
)

func (d Direction) String() string {
	switch d {
	case DirectionDownload:
		return "download"
	case DirectionUpload:
		return "upload"
	default:
		return "unknown"
	}
}

// Request bundles a direction, a target Locator, the payload Buffer, and
// per-request I/O accounting. A Request is shared between the caller and
// the Engine for the lifetime of a batch: the caller must keep it alive
// until InProgress reports false, and must not mutate it concurrently
// with a running batch.
//
// SizeTotal and SizeCurrent are updated from the engine's transfer
// goroutine while the request is in flight and read concurrently by the
// batch worker's progress aggregation, so they are atomic.Int64 rather
// than plain fields.
type Request struct {
	Direction Direction
	Locator   Locator
	Payload   Buffer

	// ReadCursor is, for an upload, the number of payload bytes already
	// handed to the transport. The in-flight transfer goroutine advances
	// it and the batch worker resets it only between attempts, so it
	// needs no synchronization.
	ReadCursor int

	// SizeTotal and SizeCurrent are progress counters reported by the
	// transport; they are zero until the transfer reports its first
	// progress tick.
	SizeTotal   atomic.Int64
	SizeCurrent atomic.Int64

	// Trials counts additional attempts beyond the first (0 on the
	// first attempt). Only the batch worker mutates it, between
	// transfer attempts.
	Trials int
}

// ConfigureDownload resets r into a fresh DOWNLOAD request targeting u:
// direction is set, the payload is emptied, and all counters/cursor are
// zeroed.
func (r *Request) ConfigureDownload(u Locator) {
	r.Direction = DirectionDownload
	r.Locator = u
	r.Payload.Clear()
	r.resetCounters()
}

// ConfigureUpload resets r into a fresh UPLOAD request targeting u with
// data as its source payload.
func (r *Request) ConfigureUpload(u Locator, data Buffer) {
	r.Direction = DirectionUpload
	r.Locator = u
	r.Payload = data
	r.resetCounters()
}

// IOReset zeros counters, the read cursor, and the trial count without
// touching Direction, Locator, or Payload. It is idempotent.
func (r *Request) IOReset() {
	r.resetCounters()
}

func (r *Request) resetCounters() {
	r.ReadCursor = 0
	r.SizeTotal.Store(0)
	r.SizeCurrent.Store(0)
	r.Trials = 0
}
