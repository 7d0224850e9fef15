package gofer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestConfigureDownload(t *testing.T) {
	loc, err := ParseLocator("https://example.com/x.bin")
	require.NoError(t, err)

	var r Request
	r.ReadCursor = 3
	r.Trials = 2
	r.SizeTotal.Store(10)
	r.Payload.PushString("stale")

	r.ConfigureDownload(loc)
	assert.Equal(t, DirectionDownload, r.Direction)
	assert.True(t, loc.Equal(r.Locator))
	assert.True(t, r.Payload.Empty())
	assert.Equal(t, 0, r.ReadCursor)
	assert.Equal(t, 0, r.Trials)
	assert.Equal(t, int64(0), r.SizeTotal.Load())
}

func TestRequestConfigureUpload(t *testing.T) {
	loc, err := ParseLocator("ftp://example.com/x.bin")
	require.NoError(t, err)

	var payload Buffer
	payload.SetFromString("payload bytes")

	var r Request
	r.ConfigureUpload(loc, payload)
	assert.Equal(t, DirectionUpload, r.Direction)
	assert.Equal(t, "payload bytes", r.Payload.String())
	assert.Equal(t, 0, r.ReadCursor)
}

func TestRequestIOResetIdempotent(t *testing.T) {
	var r Request
	r.ReadCursor = 7
	r.Trials = 1
	r.SizeTotal.Store(100)
	r.SizeCurrent.Store(50)

	r.IOReset()
	assert.Equal(t, 0, r.ReadCursor)
	assert.Equal(t, 0, r.Trials)
	assert.Equal(t, int64(0), r.SizeTotal.Load())
	assert.Equal(t, int64(0), r.SizeCurrent.Load())

	r.IOReset()
	assert.Equal(t, 0, r.ReadCursor)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "download", DirectionDownload.String())
	assert.Equal(t, "upload", DirectionUpload.String())
	assert.Equal(t, "unknown", DirectionUnknown.String())
}
