package gofer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// urlPattern matches scheme://host[:port][/path]. The host run excludes
// '/' and ':' so a following port or path segment parses cleanly.
var urlPattern = regexp.MustCompile(`^(\w+)://([^/:]+)(?::(\d+))?(/.*)?$`)

// Locator is a validated (scheme, host, port, path) quadruple addressing a
// single remote resource. The zero value is invalid.
type Locator struct {
	Scheme Scheme
	Host   string
	Port   int // 0 means "default for Scheme"
	Path   string
}

// ParseLocator parses text of the form scheme://host[:port][/path]. An
// unrecognized scheme, or text that does not match the grammar, returns
// the zero Locator and an error — it never returns a partially populated
// value.
func ParseLocator(text string) (Locator, error) {
	m := urlPattern.FindStringSubmatch(text)
	if m == nil {
		return Locator{}, fmt.Errorf("gofer: invalid locator %q", text)
	}

	scheme, ok := ParseScheme(m[1])
	if !ok {
		return Locator{}, fmt.Errorf("gofer: unknown scheme %q", m[1])
	}

	loc := Locator{Scheme: scheme, Host: m[2], Path: m[4]}
	if m[3] != "" {
		port, err := strconv.Atoi(m[3])
		if err != nil {
			return Locator{}, fmt.Errorf("gofer: invalid port in %q: %w", text, err)
		}
		loc.Port = port
	}

	if !loc.Valid() {
		return Locator{}, fmt.Errorf("gofer: locator %q parsed but is invalid", text)
	}
	return loc, nil
}

// SetURL replaces the receiver in place with the result of ParseLocator.
// On failure the receiver is reset to the zero (invalid) Locator.
func (l *Locator) SetURL(text string) error {
	parsed, err := ParseLocator(text)
	if err != nil {
		*l = Locator{}
		return err
	}
	*l = parsed
	return nil
}

// Valid reports whether l is usable: a known scheme, a non-empty host,
// and a non-empty path.
func (l Locator) Valid() bool {
	switch l.Scheme {
	case SchemeFTP, SchemeFTPS, SchemeHTTP, SchemeHTTPS:
	default:
		return false
	}
	return l.Host != "" && l.Path != ""
}

// Format renders l back to scheme://host[:port]path. It returns the empty
// string for an invalid Locator. The port segment is omitted when Port is
// 0 ("use the scheme default").
func (l Locator) Format() string {
	if !l.Valid() {
		return ""
	}
	var b strings.Builder
	b.WriteString(l.Scheme.String())
	b.WriteString("://")
	b.WriteString(l.Host)
	if l.Port != 0 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(l.Port))
	}
	b.WriteString(l.Path)
	return b.String()
}

// Equal compares all four fields.
func (l Locator) Equal(other Locator) bool {
	return l.Scheme == other.Scheme && l.Host == other.Host &&
		l.Port == other.Port && l.Path == other.Path
}

// EffectivePort returns Port, or the scheme's well-known default when
// Port is 0.
func (l Locator) EffectivePort() int {
	if l.Port != 0 {
		return l.Port
	}
	return l.Scheme.DefaultPort()
}
