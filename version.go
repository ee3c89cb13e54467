package mpycross

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

var versionRE = regexp.MustCompile(`mpy-cross emitting mpy v([0-9]+)(?:\.([0-9]+))?`)

// ParseMpyVersion extracts the .mpy format version and sub-version from
// mpy-cross --version output. A missing sub-version reads as 0.
func ParseMpyVersion(text string) (major, minor int, err error) {
	m := versionRE.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrVersionFormat, text)
	}
	if major, err = strconv.Atoi(m[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrVersionFormat, err)
	}
	if m[2] != "" {
		if minor, err = strconv.Atoi(m[2]); err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrVersionFormat, err)
		}
	}
	return major, minor, nil
}

// MpyVersion reports the .mpy format version emitted by the binary.
func (inv *Invoker) MpyVersion(ctx context.Context) (major, minor int, err error) {
	out, err := inv.Run(ctx, []string{"--version"})
	if err != nil {
		return 0, 0, err
	}
	return ParseMpyVersion(out)
}

// MpyVersion reports the .mpy format version emitted by the mpy-cross at
// binary (DefaultBinary when empty).
func MpyVersion(ctx context.Context, binary string) (major, minor int, err error) {
	return (&Invoker{Binary: binary}).MpyVersion(ctx)
}
