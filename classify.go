package gofer

import (
	"errors"

	"github.com/bamsammich/gofer/internal/transport"
)

// errRetryableOther is the internal-only marker for the taxonomy's "all
// other transport errors" bucket (§4.3): retryable, but with no stable
// public IdError name of its own — a request that exhausts its trials in
// this bucket is reported as ErrMaxTrials, never as this value directly.
const errRetryableOther IdError = -1

// classifyTransferErr maps a completed transfer's error into an IdError
// and reports whether it is retryable. A nil err is not a valid input —
// callers only classify failed completions.
func classifyTransferErr(err error) (code IdError, retryable bool) {
	switch {
	case errors.Is(err, transport.ErrUserAbortTransfer):
		return ErrUserAbort, false
	case errors.Is(err, transport.ErrUnsupported):
		return ErrInternal, false
	case errors.Is(err, transport.ErrRemoteDiskFull):
		return ErrMemoryFullRemote, false
	case errors.Is(err, transport.ErrMalformedURL):
		return ErrInvalidRequest, false
	case errors.Is(err, transport.ErrNotFound):
		return ErrContentNotFound, false
	case errors.Is(err, transport.ErrLoginDenied):
		return ErrInvalidLogin, false
	case errors.Is(err, transport.ErrTLSFailure):
		return ErrInvalidSSL, false
	case errors.Is(err, transport.ErrHostNotFound):
		return ErrHostNotFound, true
	case errors.Is(err, transport.ErrHostRefused):
		return ErrHostRefused, true
	case errors.Is(err, transport.ErrLowSpeed):
		return errRetryableOther, true
	default:
		return errRetryableOther, true
	}
}
