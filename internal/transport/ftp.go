package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/jlaffaye/ftp"
)

// FTPEndpoint drives FTP and implicit FTPS transfers via jlaffaye/ftp. A
// fresh control connection is dialed per transfer — the teacher's
// multi-connection model (one easy-transfer per request) maps onto one
// FTP session per request rather than a pooled, reused connection.
type FTPEndpoint struct{}

// NewFTPEndpoint returns an Endpoint backed by github.com/jlaffaye/ftp.
func NewFTPEndpoint() *FTPEndpoint { return &FTPEndpoint{} }

func (e *FTPEndpoint) Transfer(ctx context.Context, spec Spec) error {
	u, err := url.Parse(spec.URL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}

	host := u.Hostname()
	port := u.Port()
	if port == "" {
		if u.Scheme == "ftps" {
			port = "990"
		} else {
			port = "21"
		}
	}
	addr := fmt.Sprintf("%s:%s", host, port)

	opts := []ftp.DialOption{ftp.DialWithContext(ctx)}
	if spec.ConnectTimeout > 0 {
		opts = append(opts, ftp.DialWithTimeout(spec.ConnectTimeout))
	}
	if u.Scheme == "ftps" {
		opts = append(opts, ftp.DialWithTLS(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}))
	}

	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return classifyDialErr(err)
	}
	defer conn.Quit()

	if err := conn.Login(spec.Username, spec.Password); err != nil {
		return fmt.Errorf("%w: %v", ErrLoginDenied, err)
	}

	watchdog := newLowSpeedWatchdog(spec.LowSpeedLimit, spec.LowSpeedTime)

	if spec.Upload {
		return e.upload(ctx, conn, u.Path, spec, watchdog)
	}
	return e.download(ctx, conn, u.Path, spec, watchdog)
}

func (e *FTPEndpoint) upload(ctx context.Context, conn *ftp.ServerConn, remotePath string, spec Spec, wd *lowSpeedWatchdog) error {
	if spec.FTPCreateDirs {
		if err := mkdirAllFTP(conn, path.Dir(remotePath)); err != nil {
			return fmt.Errorf("ftp: create remote dirs: %w", err)
		}
	}

	pr := &progressReader{
		ctx:      ctx,
		r:        spec.Reader,
		total:    spec.UploadSize,
		progress: spec.Progress,
		watchdog: wd,
	}

	if err := conn.Stor(remotePath, pr); err != nil {
		if pr.aborted {
			return ErrUserAbortTransfer
		}
		return classifyStorErr(err)
	}
	return nil
}

func (e *FTPEndpoint) download(ctx context.Context, conn *ftp.ServerConn, remotePath string, spec Spec, wd *lowSpeedWatchdog) error {
	resp, err := conn.Retr(remotePath)
	if err != nil {
		return classifyRetrErr(err)
	}
	defer resp.Close()

	pw := &progressWriter{
		ctx:      ctx,
		w:        spec.Writer,
		progress: spec.Progress,
		watchdog: wd,
	}

	if _, err := io.Copy(pw, resp); err != nil {
		if pw.aborted {
			return ErrUserAbortTransfer
		}
		return fmt.Errorf("ftp: retr %s: %w", remotePath, err)
	}
	return nil
}

// mkdirAllFTP tries to create every path component of dir. Every MakeDir
// failure is ignored, "already exists" or otherwise, so it always
// returns nil.
func mkdirAllFTP(conn *ftp.ServerConn, dir string) error {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return nil
	}
	var built strings.Builder
	for _, part := range strings.Split(dir, "/") {
		if part == "" {
			continue
		}
		built.WriteByte('/')
		built.WriteString(part)
		_ = conn.MakeDir(built.String()) // ignore "exists" errors; best-effort
	}
	return nil
}

// classifyDialErr, classifyStorErr, classifyRetrErr translate jlaffaye/ftp
// failures into the transport package's sentinel conditions. jlaffaye/ftp
// surfaces most errors as *textproto.Error with a numeric FTP reply code,
// or as a bare network error while dialing.
func classifyDialErr(err error) error {
	if isDNSError(err) {
		return fmt.Errorf("%w: %v", ErrHostNotFound, err)
	}
	if isConnRefused(err) {
		return fmt.Errorf("%w: %v", ErrHostRefused, err)
	}
	if isTLSError(err) {
		return fmt.Errorf("%w: %v", ErrTLSFailure, err)
	}
	return err
}

func classifyStorErr(err error) error {
	if code, ok := ftpReplyCode(err); ok {
		switch {
		case code == 552 || code == 452: // exceeded storage allocation / insufficient space
			return fmt.Errorf("%w: %v", ErrRemoteDiskFull, err)
		case code == 530: // not logged in
			return fmt.Errorf("%w: %v", ErrLoginDenied, err)
		case code == 550: // file unavailable
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
	}
	return err
}

func classifyRetrErr(err error) error {
	if code, ok := ftpReplyCode(err); ok {
		switch code {
		case 550:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case 530:
			return fmt.Errorf("%w: %v", ErrLoginDenied, err)
		}
	}
	return err
}
