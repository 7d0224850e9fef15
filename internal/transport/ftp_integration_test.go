//go:build integration

package transport_test

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bamsammich/gofer/internal/transport"
)

// startFTPContainer starts a delfer/alpine-ftp-server container configured
// with a fixed user/pass, exposing the control port plus the passive port
// range the client needs for data connections.
func startFTPContainer(t *testing.T) (host string, port int) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "delfer/alpine-ftp-server:latest",
			ExposedPorts: []string{"21/tcp", "21000-21010/tcp"},
			Env: map[string]string{
				"USERS":    "testuser|testpass",
				"ADDRESS":  "localhost",
				"MIN_PORT": "21000",
				"MAX_PORT": "21010",
			},
			WaitingFor: wait.ForListeningPort("21/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	}

	ctr, err := testcontainers.GenericContainer(ctx, req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	h, err := ctr.Host(ctx)
	require.NoError(t, err)

	mapped, err := ctr.MappedPort(ctx, "21/tcp")
	require.NoError(t, err)

	p, err := strconv.Atoi(mapped.Port())
	require.NoError(t, err)

	return h, p
}

func TestIntegrationFTPUploadThenDownload(t *testing.T) {
	t.Parallel()

	host, port := startFTPContainer(t)
	ep := transport.NewFTPEndpoint()

	payload := []byte("integration payload bytes")
	url := fmt.Sprintf("ftp://%s:%d/upload.bin", host, port)

	var uploaded int64
	err := ep.Transfer(context.Background(), transport.Spec{
		ID:             "upload",
		Upload:         true,
		URL:            url,
		Username:       "testuser",
		Password:       "testpass",
		ConnectTimeout: 10 * time.Second,
		UploadSize:     int64(len(payload)),
		Reader:         newByteReader(payload),
		Progress: func(total, current int64) bool {
			uploaded = current
			return false
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), uploaded)

	var downloaded []byte
	err = ep.Transfer(context.Background(), transport.Spec{
		ID:             "download",
		URL:            url,
		Username:       "testuser",
		Password:       "testpass",
		ConnectTimeout: 10 * time.Second,
		Writer:         newByteWriter(&downloaded),
	})
	require.NoError(t, err)
	assert.Equal(t, payload, downloaded)
}

func TestIntegrationFTPNotFound(t *testing.T) {
	t.Parallel()

	host, port := startFTPContainer(t)
	ep := transport.NewFTPEndpoint()

	err := ep.Transfer(context.Background(), transport.Spec{
		ID:             "missing",
		URL:            fmt.Sprintf("ftp://%s:%d/does-not-exist.bin", host, port),
		Username:       "testuser",
		Password:       "testpass",
		ConnectTimeout: 10 * time.Second,
		Writer:         newByteWriter(&[]byte{}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrNotFound)
}

type byteReader struct {
	data []byte
	pos  int
}

func newByteReader(data []byte) *byteReader { return &byteReader{data: data} }

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

type byteWriter struct {
	dst *[]byte
}

func newByteWriter(dst *[]byte) *byteWriter { return &byteWriter{dst: dst} }

func (w *byteWriter) Write(p []byte) (int, error) {
	*w.dst = append(*w.dst, p...)
	return len(p), nil
}
