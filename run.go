// Package mpycross drives the external mpy-cross compiler: it locates the
// binary, builds its command line and maps process failures to errors.
package mpycross

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
)

// timeNow is a package-level clock to enable deterministic tests.
var timeNow = time.Now

// Invocation describes one finished mpy-cross process.
type Invocation struct {
	Binary      string
	Args        []string
	ExitCode    int // -1 when the process was killed
	Duration    time.Duration
	OutputBytes int
}

// Invoker runs a single mpy-cross binary. The zero value uses DefaultBinary
// and stays silent. An Invoker holds no state between calls and may be used
// from several goroutines.
type Invoker struct {
	// Binary overrides the default mpy-cross location.
	Binary string
	// Logger receives a debug line per invocation; nil disables logging.
	Logger *log.Logger
	// Observer, when set, is called after every process that was started.
	Observer func(Invocation)
}

// Run executes mpy-cross with args and returns its combined stdout and
// stderr. A non-zero exit yields a *CrossCompileError whose message is that
// combined output.
func (inv *Invoker) Run(ctx context.Context, args []string) (string, error) {
	bin := Resolve(inv.Binary)
	if _, err := os.Stat(bin); err != nil {
		return "", &CrossCompileError{Message: fmt.Sprintf("%s binary not found at %s.", ToolName, bin)}
	}
	ensureExecutable(bin)

	start := timeNow()
	cmd := exec.CommandContext(ctx, bin, args...)
	var out bytes.Buffer
	// Same writer for both streams keeps the interleaving a terminal would show.
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()

	if cmd.ProcessState != nil {
		inv.observe(bin, args, cmd.ProcessState.ExitCode(), time.Since(start), out.Len())
	}
	if err == nil {
		return out.String(), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("%s interrupted: %w", ToolName, ctxErr)
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return "", &CrossCompileError{Message: out.String()}
	}
	return "", &CrossCompileError{Message: fmt.Sprintf("start %s: %v", bin, err), Err: err}
}

func (inv *Invoker) observe(bin string, args []string, exit int, d time.Duration, n int) {
	if inv.Logger != nil {
		inv.Logger.Debug("mpy-cross finished", "binary", bin, "args", args, "exit", exit, "duration", d, "bytes", n)
	}
	if inv.Observer != nil {
		inv.Observer(Invocation{
			Binary:      bin,
			Args:        append([]string(nil), args...),
			ExitCode:    exit,
			Duration:    d,
			OutputBytes: n,
		})
	}
}

// ensureExecutable sets the user-execute bit on path. Failures are ignored:
// the binary may live on a read-only filesystem and already be executable.
func ensureExecutable(path string) {
	st, err := os.Stat(path)
	if err != nil {
		return
	}
	_ = os.Chmod(path, st.Mode()|0o100)
}

// Run executes the mpy-cross at binary (DefaultBinary when empty) with args.
// Prefer Compile.
func Run(ctx context.Context, args []string, binary string) (string, error) {
	inv := &Invoker{Binary: binary}
	return inv.Run(ctx, args)
}
