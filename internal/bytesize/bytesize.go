// Package bytesize provides a byte count type that reads and writes
// human-friendly size strings, for use in configuration files.
package bytesize

import (
	"fmt"
	"strconv"
	"strings"
)

// ByteSize is a size in bytes. It parses from strings like "4Ki", "1Mi",
// "100MB", or plain byte counts, and formats back using binary units.
type ByteSize uint64

// Size constants. The two-letter forms are decimal (powers of 1000),
// the i-suffixed forms are binary (powers of 1024).
const (
	B  ByteSize = 1
	KB ByteSize = 1000 * B
	MB ByteSize = 1000 * KB
	GB ByteSize = 1000 * MB
	TB ByteSize = 1000 * GB

	KiB ByteSize = 1024 * B
	MiB ByteSize = 1024 * KiB
	GiB ByteSize = 1024 * MiB
	TiB ByteSize = 1024 * GiB
)

// ParseByteSize parses a size string. The numeric part may be fractional;
// the unit suffix is case-insensitive and optional (bare numbers are bytes).
func ParseByteSize(s string) (ByteSize, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	// Split the numeric prefix from the unit suffix.
	split := len(s)
	for i, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			split = i
			break
		}
	}

	numStr := s[:split]
	unit := strings.TrimSpace(s[split:])

	mult, err := unitMultiplier(unit)
	if err != nil {
		return 0, err
	}

	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q", s)
	}

	return ByteSize(num * float64(mult)), nil
}

func unitMultiplier(unit string) (ByteSize, error) {
	switch strings.ToLower(unit) {
	case "", "b":
		return B, nil
	case "k", "kb":
		return KB, nil
	case "m", "mb":
		return MB, nil
	case "g", "gb":
		return GB, nil
	case "t", "tb":
		return TB, nil
	case "ki", "kib":
		return KiB, nil
	case "mi", "mib":
		return MiB, nil
	case "gi", "gib":
		return GiB, nil
	case "ti", "tib":
		return TiB, nil
	}
	return 0, fmt.Errorf("unknown byte size unit %q", unit)
}

// String formats the size using the largest binary unit it divides into
// cleanly or, failing that, two decimal places of the largest fitting unit.
func (b ByteSize) String() string {
	units := []struct {
		value  ByteSize
		suffix string
	}{
		{TiB, "TiB"},
		{GiB, "GiB"},
		{MiB, "MiB"},
		{KiB, "KiB"},
	}

	for _, u := range units {
		if b < u.value {
			continue
		}
		if b%u.value == 0 {
			return fmt.Sprintf("%d%s", b/u.value, u.suffix)
		}
		return fmt.Sprintf("%.2f%s", float64(b)/float64(u.value), u.suffix)
	}
	return fmt.Sprintf("%dB", uint64(b))
}

// Int64 returns the size as an int64.
func (b ByteSize) Int64() int64 {
	return int64(b)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *ByteSize) UnmarshalText(text []byte) error {
	parsed, err := ParseByteSize(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler, so sizes round-trip
// through YAML in their human-friendly form.
func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
