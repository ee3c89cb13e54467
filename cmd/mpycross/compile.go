package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/mpycross"
	"github.com/hyperifyio/mpycross/internal/config"
)

// compileFlags are shared by compile and watch.
type compileFlags struct {
	output  string
	srcPath string
	xopts   []string
	extra   []string
}

func (f *compileFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output .mpy file (single source only; default: source with .mpy extension)")
	fl.StringVarP(&f.srcPath, "src-path", "s", "", "source name embedded in the .mpy (single source only)")
	fl.IntP(config.KeyOpt, "O", 0, "optimisation level 0-3 (env MPYCROSS_OPT; default: mpy-cross default)")
	fl.String(config.KeyMarch, "", "native emitter target, token or NATIVE_ARCH_* name (env MPYCROSS_MARCH; see 'mpycross archs')")
	fl.StringArrayVarP(&f.xopts, "xopt", "X", nil, "pass -X <xopt> to mpy-cross, e.g. -X emit=native (repeatable)")
	fl.StringArrayVar(&f.extra, "arg", nil, "raw argument appended to the mpy-cross command line (repeatable)")
}

func (f *compileFlags) validate(sources []string) error {
	if len(sources) > 1 && f.output != "" {
		return usageErrorf("-o/--output requires exactly one source, got %d", len(sources))
	}
	if len(sources) > 1 && f.srcPath != "" {
		return usageErrorf("-s/--src-path requires exactly one source, got %d", len(sources))
	}
	return nil
}

func (a *app) compileOptions(f *compileFlags, src string) mpycross.CompileOptions {
	var extra []string
	for _, x := range f.xopts {
		extra = append(extra, "-X", x)
	}
	extra = append(extra, f.extra...)
	return mpycross.CompileOptions{
		Src:       src,
		Dest:      f.output,
		SrcPath:   f.srcPath,
		Opt:       a.cfg.Opt,
		March:     a.cfg.March,
		ExtraArgs: extra,
	}
}

// compileOne compiles src and copies any tool output to stdout.
func (a *app) compileOne(ctx context.Context, f *compileFlags, src string) error {
	out, err := a.inv.Compile(ctx, a.compileOptions(f, src))
	if out != "" {
		_, _ = io.WriteString(a.stdout, out)
	}
	if err != nil {
		return err
	}
	a.logger.Info("compiled", "src", src)
	return nil
}

func (a *app) compileCmd() *cobra.Command {
	var f compileFlags
	cmd := &cobra.Command{
		Use:   "compile <src.py>...",
		Short: "Compile one or more .py files",
		Example: `  mpycross compile main.py
  mpycross compile -O2 --march armv7emsp -o build/main.mpy main.py
  mpycross compile -X emit=native lib/*.py`,
		Args: argsAtLeast(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(args); err != nil {
				return err
			}
			for _, src := range args {
				if err := a.compileOne(cmd.Context(), &f, src); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
