package mpycross

import (
	"os"
	"path/filepath"
	"runtime"
)

// ToolName is the file name of the external compiler.
const ToolName = "mpy-cross"

// Resolve returns explicit when set, otherwise DefaultBinary(). It never
// touches the filesystem beyond locating the running executable.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return DefaultBinary()
}

// DefaultBinary returns ../build/mpy-cross relative to the directory of the
// running executable. When that directory cannot be determined the working
// directory is used instead.
func DefaultBinary() string {
	bin := ToolName
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	base := "."
	if exe, err := os.Executable(); err == nil {
		base = filepath.Dir(exe)
	}
	p := filepath.Join(base, "..", "build", bin)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
