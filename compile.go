package mpycross

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// CompileOptions configures one mpy-cross compilation.
type CompileOptions struct {
	// Src is the .py file to compile. Required.
	Src string
	// Dest is the output .mpy file; mpy-cross defaults to Src with .mpy.
	Dest string
	// SrcPath is the source name embedded in the .mpy; defaults to Src.
	SrcPath string
	// Opt is the optimisation level (0-3). Nil leaves the tool default;
	// zero is passed through as -O0.
	Opt *int
	// March selects the native emitter target.
	March Arch
	// Binary overrides the invoker's mpy-cross location for this call.
	Binary string
	// ExtraArgs are appended verbatim before Src, e.g. {"-X", "emit=native"}.
	ExtraArgs []string
}

// OptLevel returns a pointer to n for CompileOptions.Opt.
func OptLevel(n int) *int { return &n }

// CompileArgs builds the mpy-cross argument vector for opts. The order is
// fixed: -s, -o, -march=, -O, extra arguments, then the source file.
func CompileArgs(opts CompileOptions) []string {
	var args []string
	if opts.SrcPath != "" {
		args = append(args, "-s", opts.SrcPath)
	}
	if opts.Dest != "" {
		args = append(args, "-o", opts.Dest)
	}
	if opts.March != "" {
		args = append(args, "-march="+string(opts.March))
	}
	if opts.Opt != nil {
		args = append(args, "-O"+strconv.Itoa(*opts.Opt))
	}
	args = append(args, opts.ExtraArgs...)
	return append(args, opts.Src)
}

// Compile compiles opts.Src with mpy-cross and returns the tool output,
// which is normally empty.
func (inv *Invoker) Compile(ctx context.Context, opts CompileOptions) (string, error) {
	if opts.Src == "" {
		return "", fmt.Errorf("%w: src is required", ErrInvalidArgument)
	}
	if _, err := os.Stat(opts.Src); err != nil {
		return "", &CrossCompileError{Message: fmt.Sprintf("Input .py file not found: %s.", opts.Src)}
	}
	run := inv
	if opts.Binary != "" {
		run = &Invoker{Binary: opts.Binary, Logger: inv.Logger, Observer: inv.Observer}
	}
	return run.Run(ctx, CompileArgs(opts))
}

// Compile compiles opts.Src using opts.Binary or the default mpy-cross.
func Compile(ctx context.Context, opts CompileOptions) (string, error) {
	return (&Invoker{}).Compile(ctx, opts)
}
