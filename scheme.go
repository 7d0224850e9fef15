package gofer

import "strings"

// Scheme identifies the wire protocol a Locator addresses.
type Scheme int

const (
	// SchemeUnknown is the zero value; it never appears in a valid Locator.
	SchemeUnknown Scheme = iota
	SchemeFTP
	SchemeFTPS
	SchemeHTTP
	SchemeHTTPS
)

var schemeNames = [...]string{
	SchemeUnknown: "unknown",
	SchemeFTP:     "ftp",
	SchemeFTPS:    "ftps",
	SchemeHTTP:    "http",
	SchemeHTTPS:   "https",
}

// String renders the scheme as its lowercase wire name.
func (s Scheme) String() string {
	if int(s) < 0 || int(s) >= len(schemeNames) {
		return "unknown"
	}
	return schemeNames[s]
}

// ParseScheme maps wire text (case-insensitive) to a Scheme. It returns
// SchemeUnknown, false for anything that is not one of the four supported
// schemes.
func ParseScheme(text string) (Scheme, bool) {
	switch strings.ToLower(text) {
	case "ftp":
		return SchemeFTP, true
	case "ftps":
		return SchemeFTPS, true
	case "http":
		return SchemeHTTP, true
	case "https":
		return SchemeHTTPS, true
	default:
		return SchemeUnknown, false
	}
}

// TLSRequired reports whether the scheme must negotiate TLS.
func (s Scheme) TLSRequired() bool {
	return s == SchemeFTPS || s == SchemeHTTPS
}

// FTPFamily reports whether the scheme is served by the FTP endpoint.
func (s Scheme) FTPFamily() bool {
	return s == SchemeFTP || s == SchemeFTPS
}

// DefaultPort returns the well-known port for the scheme, or 0 if the
// scheme has none (SchemeUnknown).
func (s Scheme) DefaultPort() int {
	switch s {
	case SchemeFTP:
		return 21
	case SchemeFTPS:
		return 990
	case SchemeHTTP:
		return 80
	case SchemeHTTPS:
		return 443
	default:
		return 0
	}
}
