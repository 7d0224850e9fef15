package gofer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocatorRoundTrip(t *testing.T) {
	loc, err := ParseLocator("https://example.com:8443/a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, SchemeHTTPS, loc.Scheme)
	assert.Equal(t, "example.com", loc.Host)
	assert.Equal(t, 8443, loc.Port)
	assert.Equal(t, "/a/b.txt", loc.Path)
	assert.Equal(t, "https://example.com:8443/a/b.txt", loc.Format())
}

func TestParseLocatorDefaultPort(t *testing.T) {
	loc, err := ParseLocator("ftp://files.example.com/incoming/x.bin")
	require.NoError(t, err)
	assert.Equal(t, 0, loc.Port)
	assert.Equal(t, 21, loc.EffectivePort())
	assert.Equal(t, "ftp://files.example.com/incoming/x.bin", loc.Format())
}

func TestParseLocatorInvalid(t *testing.T) {
	tests := []string{
		"https://example.com",
		"not_an_url",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			loc, err := ParseLocator(text)
			require.Error(t, err)
			assert.Equal(t, Locator{}, loc)
			assert.False(t, loc.Valid())
			assert.Equal(t, "", loc.Format())
			assert.Equal(t, 0, loc.EffectivePort())
		})
	}
}

func TestParseLocatorUnknownScheme(t *testing.T) {
	_, err := ParseLocator("gopher://example.com/x")
	assert.Error(t, err)
}

func TestLocatorSetURL(t *testing.T) {
	var l Locator
	require.NoError(t, l.SetURL("http://example.com/x"))
	assert.True(t, l.Valid())

	require.Error(t, l.SetURL("not_an_url"))
	assert.Equal(t, Locator{}, l)
}

func TestLocatorEqual(t *testing.T) {
	a, err := ParseLocator("http://example.com/x")
	require.NoError(t, err)
	b, err := ParseLocator("http://example.com/x")
	require.NoError(t, err)
	c, err := ParseLocator("http://example.com/y")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
