package transport

import "errors"

// Sentinel conditions an Endpoint can report. The endpoints map DNS,
// refused-connection and TLS network errors onto these themselves (see
// netclass.go); the engine's classifier only matches them with
// errors.Is, and any error matching none of them falls into its generic
// retryable bucket.
var (
	// ErrUnsupported marks a protocol/feature the endpoint cannot serve
	// at all (e.g. disabled at compile time, or an out-of-memory
	// condition setting up the transfer). Never retryable.
	ErrUnsupported = errors.New("transport: unsupported or unavailable")

	// ErrRemoteDiskFull means the remote server rejected an upload for
	// lack of space.
	ErrRemoteDiskFull = errors.New("transport: remote out of space")

	// ErrMalformedURL means the endpoint rejected spec.URL outright.
	ErrMalformedURL = errors.New("transport: malformed url")

	// ErrNotFound means the remote resource does not exist.
	ErrNotFound = errors.New("transport: remote resource not found")

	// ErrLoginDenied means the remote server rejected the credentials.
	ErrLoginDenied = errors.New("transport: login denied")

	// ErrTLSFailure means the TLS handshake failed.
	ErrTLSFailure = errors.New("transport: tls negotiation failed")

	// ErrLowSpeed means the progress watchdog observed a sustained
	// transfer rate under the configured minimum. It is a retryable
	// condition, the transport-level analogue of curl's
	// CURLE_OPERATION_TIMEDOUT.
	ErrLowSpeed = errors.New("transport: sustained transfer rate below minimum")

	// ErrUserAbortTransfer is returned by an Endpoint when its progress
	// callback or context observed a caller-initiated abort.
	ErrUserAbortTransfer = errors.New("transport: user abort")

	// ErrHostNotFound and ErrHostRefused are network-layer rejections;
	// both are retryable per the engine's classification table.
	ErrHostNotFound = errors.New("transport: host not found")
	ErrHostRefused  = errors.New("transport: connection refused")
)
