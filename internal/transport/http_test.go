package transport

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHTTPStatus(t *testing.T) {
	tests := []struct {
		code      int
		wantErr   error
		wantNil   bool
		wantOther bool
	}{
		{http.StatusOK, nil, true, false},
		{http.StatusUnauthorized, ErrLoginDenied, false, false},
		{http.StatusForbidden, ErrLoginDenied, false, false},
		{http.StatusNotFound, ErrNotFound, false, false},
		{http.StatusInsufficientStorage, ErrRemoteDiskFull, false, false},
		{http.StatusInternalServerError, nil, false, true},
	}
	for _, tt := range tests {
		err := classifyHTTPStatus(tt.code)
		if tt.wantNil {
			assert.NoError(t, err)
			continue
		}
		if tt.wantOther {
			assert.Error(t, err)
			continue
		}
		assert.ErrorIs(t, err, tt.wantErr)
	}
}

func TestSpecEffectiveTransferBudget(t *testing.T) {
	withWindow := Spec{LowSpeedTime: 2 * time.Second}
	assert.Equal(t, 20*time.Second, withWindow.effectiveTransferBudget())

	noWindow := Spec{}
	assert.Equal(t, 10*time.Minute, noWindow.effectiveTransferBudget())
}
