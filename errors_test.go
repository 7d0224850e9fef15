package gofer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorToText(t *testing.T) {
	tests := []struct {
		code IdError
		text string
	}{
		{ErrNone, "NO_ERROR"},
		{ErrInternal, "INTERNAL"},
		{ErrInvalidLogin, "INVALID_LOGIN"},
		{ErrInvalidRequest, "INVALID_REQUEST"},
		{ErrInvalidSSL, "INVALID_SSL"},
		{ErrBusy, "BUSY"},
		{ErrUserAbort, "USER_ABORT"},
		{ErrMaxTrials, "MAX_TRIALS"},
		{ErrMemoryFullHost, "MEMORY_FULL_HOST"},
		{ErrMemoryFullRemote, "MEMORY_FULL_REMOTE"},
		{ErrHostNotFound, "HOST_NOT_FOUND"},
		{ErrHostRefused, "HOST_REFUSED"},
		{ErrContentNotFound, "CONTENT_NOT_FOUND"},
		{IdError(999), "UNKNOWN"},
		{IdError(-1), "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.text, ErrorToText(tt.code))
			assert.Equal(t, tt.text, tt.code.Error())
		})
	}
}
