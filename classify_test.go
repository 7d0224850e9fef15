package gofer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bamsammich/gofer/internal/transport"
)

func TestClassifyTransferErr(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      IdError
		retryable bool
	}{
		{"user abort", transport.ErrUserAbortTransfer, ErrUserAbort, false},
		{"unsupported", transport.ErrUnsupported, ErrInternal, false},
		{"remote disk full", transport.ErrRemoteDiskFull, ErrMemoryFullRemote, false},
		{"malformed url", transport.ErrMalformedURL, ErrInvalidRequest, false},
		{"not found", transport.ErrNotFound, ErrContentNotFound, false},
		{"login denied", transport.ErrLoginDenied, ErrInvalidLogin, false},
		{"tls failure", transport.ErrTLSFailure, ErrInvalidSSL, false},
		{"host not found", transport.ErrHostNotFound, ErrHostNotFound, true},
		{"host refused", transport.ErrHostRefused, ErrHostRefused, true},
		{"low speed", transport.ErrLowSpeed, errRetryableOther, true},
		{"wrapped not found", fmt.Errorf("context: %w", transport.ErrNotFound), ErrContentNotFound, false},
		{"unrecognized other", fmt.Errorf("transport: some transient blip"), errRetryableOther, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, retryable := classifyTransferErr(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.retryable, retryable)
		})
	}
}

func TestErrRetryableOtherNeverExposedAsText(t *testing.T) {
	// errRetryableOther is an internal marker; it has no stable taxonomy
	// name and must never be confused with a real IdError constant.
	assert.Equal(t, "UNKNOWN", ErrorToText(errRetryableOther))
}
