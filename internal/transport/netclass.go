package transport

import (
	"crypto/tls"
	"errors"
	"net"
	"net/textproto"
	"syscall"
)

// ftpReplyCode extracts the numeric FTP reply code from err, if it wraps
// a *textproto.Error (the shape jlaffaye/ftp returns for protocol-level
// rejections).
func ftpReplyCode(err error) (int, bool) {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		return tpErr.Code, true
	}
	return 0, false
}

// isDNSError reports whether err stems from a failed host lookup.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnRefused reports whether err stems from a refused TCP connection.
func isConnRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}

// isTLSError reports whether err stems from a failed TLS handshake.
func isTLSError(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var recordErr tls.RecordHeaderError
	return errors.As(err, &recordErr)
}
