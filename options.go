package gofer

import "github.com/bamsammich/gofer/internal/bitset"

// Options is a 32-bit bitmask of engine behaviors. Bit 0 is the only bit
// currently defined; all others are reserved.
type Options uint32

const (
	// OptNone is the empty option set.
	OptNone Options = 0

	// OptFTPCreateDirs enables creation of missing remote directories
	// for an FTP/FTPS upload.
	OptFTPCreateDirs Options = 1 << 0
)

var optionNames = map[Options]string{
	OptFTPCreateDirs: "FTP_CREATE_DIRS",
}

// Has reports whether every bit set in flag is also set in o.
func (o Options) Has(flag Options) bool { return o&flag == flag }

// OptionsToText renders flags as the names of its set bits, in ascending
// bit order, joined by sep. OptNone renders as "NONE".
func OptionsToText(flags Options, sep string) string {
	return bitset.Render(flags, optionNames, "NONE", sep)
}
