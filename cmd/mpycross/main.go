package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/mpycross"
	"github.com/hyperifyio/mpycross/internal/audit"
	"github.com/hyperifyio/mpycross/internal/config"
)

func main() {
	os.Exit(cliMain(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks errors that should exit with status 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// app carries per-run state shared by the subcommands.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	configPath string
	cfg        config.Config
	logger     *log.Logger
	inv        *mpycross.Invoker
}

// cliMain is a testable entrypoint for the CLI. It accepts argv (excluding
// program name) and writers for stdout/stderr and returns the intended
// process exit code.
func cliMain(args []string, stdout io.Writer, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		safeFprintln(stderr, "error: "+err.Error())
		safeFprintln(stderr, "Run 'mpycross --help' for usage.")
		return 2
	}
	var ce *mpycross.CrossCompileError
	if errors.As(err, &ce) {
		// The tool's own diagnostic, verbatim.
		msg := ce.Error()
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		_, _ = io.WriteString(stderr, msg)
		return 1
	}
	safeFprintln(stderr, "error: "+err.Error())
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mpycross",
		Short: "Compile MicroPython sources to .mpy with mpy-cross",
		Long: `mpycross drives the mpy-cross compiler: it locates the binary, builds
its command line and reports the compiler's diagnostics verbatim.

Settings resolve as flag > env (MPYCROSS_*) > config file > default.
The config file is --config, or mpycross.{toml,yaml,json} in the
working directory.`,
		Version:           versionString(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetVersionTemplate("{{.Name}} version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (toml, yaml or json)")
	pf.String(config.KeyBinary, "", "path to mpy-cross (env MPYCROSS_BINARY or MPY_CROSS; default ../build/mpy-cross next to this program)")
	pf.String(config.KeyLogLevel, "", "log level: debug|info|warn|error (env MPYCROSS_LOG_LEVEL; default warn)")
	pf.String(config.KeyAuditDir, "", "append an NDJSON line per mpy-cross run to DIR/YYYYMMDD.log (env MPYCROSS_AUDIT_DIR)")

	root.AddCommand(
		a.compileCmd(),
		a.runCmd(),
		a.mpyVersionCmd(),
		a.archsCmd(),
		a.watchCmd(),
	)
	return root
}

// setup resolves configuration once the executing command's flags are parsed.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return usageError{err}
	}
	a.cfg = cfg
	a.logger = log.NewWithOptions(a.stderr, log.Options{Level: cfg.LogLevel, Prefix: "mpycross"})
	a.inv = &mpycross.Invoker{Binary: cfg.Binary, Logger: a.logger}
	if cfg.AuditDir != "" {
		a.inv.Observer = audit.New(cfg.AuditDir, a.logger).Observe
	}
	if cfg.File != "" {
		a.logger.Debug("config loaded", "file", cfg.File)
	}
	return nil
}

// argsAtLeast is cobra.MinimumNArgs reporting a usage error.
func argsAtLeast(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageErrorf("%s requires at least %d argument(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

// safeFprintln writes a line and ignores write errors.
func safeFprintln(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, s)
}
