package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// sharedHTTPTransport is reused across every HTTPEndpoint instance so the
// process keeps one connection pool alive, mirroring the teacher's
// one-http.Transport-per-process idiom rather than dialing fresh
// transports per request.
var sharedHTTPTransport = &http.Transport{
	TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
}

// HTTPEndpoint drives HTTP and HTTPS transfers via net/http. GET fetches
// a download; PUT drives an upload, matching the "resource at a URL"
// semantics shared with the FTP endpoint (no multipart form upload).
type HTTPEndpoint struct {
	client *http.Client
}

// NewHTTPEndpoint returns an Endpoint backed by net/http.
func NewHTTPEndpoint() *HTTPEndpoint {
	return &HTTPEndpoint{client: &http.Client{Transport: sharedHTTPTransport}}
}

func (e *HTTPEndpoint) Transfer(ctx context.Context, spec Spec) error {
	if spec.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.ConnectTimeout+spec.effectiveTransferBudget())
		defer cancel()
	}

	if spec.Upload {
		return e.upload(ctx, spec)
	}
	return e.download(ctx, spec)
}

func (e *HTTPEndpoint) upload(ctx context.Context, spec Spec) error {
	watchdog := newLowSpeedWatchdog(spec.LowSpeedLimit, spec.LowSpeedTime)
	pr := &progressReader{ctx: ctx, r: spec.Reader, total: spec.UploadSize, progress: spec.Progress, watchdog: watchdog}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, spec.URL, pr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	req.ContentLength = spec.UploadSize
	if spec.Username != "" || spec.Password != "" {
		req.SetBasicAuth(spec.Username, spec.Password)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		if pr.aborted {
			return ErrUserAbortTransfer
		}
		return classifyHTTPDoErr(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return classifyHTTPStatus(resp.StatusCode)
}

func (e *HTTPEndpoint) download(ctx context.Context, spec Spec) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, spec.URL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if spec.Username != "" || spec.Password != "" {
		req.SetBasicAuth(spec.Username, spec.Password)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return classifyHTTPDoErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return classifyHTTPStatus(resp.StatusCode)
	}

	watchdog := newLowSpeedWatchdog(spec.LowSpeedLimit, spec.LowSpeedTime)
	pw := &progressWriter{ctx: ctx, w: spec.Writer, total: resp.ContentLength, progress: spec.Progress, watchdog: watchdog}

	if _, err := io.Copy(pw, resp.Body); err != nil {
		if pw.aborted {
			return ErrUserAbortTransfer
		}
		return fmt.Errorf("http: get %s: %w", spec.URL, err)
	}
	return nil
}

func classifyHTTPDoErr(err error) error {
	if isDNSError(err) {
		return fmt.Errorf("%w: %v", ErrHostNotFound, err)
	}
	if isConnRefused(err) {
		return fmt.Errorf("%w: %v", ErrHostRefused, err)
	}
	if isTLSError(err) {
		return fmt.Errorf("%w: %v", ErrTLSFailure, err)
	}
	var urlErr interface{ Timeout() bool }
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrLowSpeed, err)
	}
	return err
}

func classifyHTTPStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: http %d", ErrLoginDenied, code)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: http %d", ErrNotFound, code)
	case code == http.StatusInsufficientStorage:
		return fmt.Errorf("%w: http %d", ErrRemoteDiskFull, code)
	case code >= 300:
		return fmt.Errorf("http: unexpected status %d", code)
	default:
		return nil
	}
}

// effectiveTransferBudget gives http.Client's overall request context a
// generous ceiling derived from the low-speed window so a legitimately
// slow-but-alive transfer is not cut off by the connect-timeout context
// before the low-speed watchdog itself has a chance to fire.
func (s Spec) effectiveTransferBudget() time.Duration {
	if s.LowSpeedTime > 0 {
		return s.LowSpeedTime * 10
	}
	return 10 * time.Minute
}
