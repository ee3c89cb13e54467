package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/mpycross"
	"github.com/hyperifyio/mpycross/internal/watch"
)

func (a *app) watchCmd() *cobra.Command {
	var f compileFlags
	cmd := &cobra.Command{
		Use:   "watch <src.py>...",
		Short: "Compile sources, then recompile each one whenever it is saved",
		Long: `watch compiles every source once and then again after each write,
one at a time, until interrupted. Compile errors are printed and watching
continues.`,
		Args: argsAtLeast(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(args); err != nil {
				return err
			}
			w, err := watch.New(args, func(ctx context.Context, src string) error {
				return a.compileOne(ctx, &f, src)
			}, watch.Options{Logger: a.logger, Report: a.reportWatch})
			if err != nil {
				return err
			}
			a.logger.Info("watching", "sources", len(args))
			return w.Run(cmd.Context())
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) reportWatch(src string, err error) {
	if err == nil {
		_, _ = fmt.Fprintf(a.stdout, "compiled %s\n", src)
		return
	}
	var ce *mpycross.CrossCompileError
	if errors.As(err, &ce) {
		msg := strings.TrimRight(ce.Error(), "\n")
		_, _ = fmt.Fprintf(a.stderr, "%s: failed\n%s\n", src, msg)
		return
	}
	_, _ = fmt.Fprintf(a.stderr, "%s: %v\n", src, err)
}
