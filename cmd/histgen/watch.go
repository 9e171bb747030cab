package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/revertable/internal/generator"
)

func newWatchCmd(c *cli) *cobra.Command {
	flags := &genFlags{}

	cmd := &cobra.Command{
		Use:   "watch file.go...",
		Short: "Regenerate whenever a source file changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debounce, err := c.cfg.Debounce()
			if err != nil {
				return err
			}

			gen := c.newGenerator(flags)
			for _, file := range args {
				if _, err := gen.File(file); err != nil {
					c.log.Warn("initial generation of %s failed: %v", file, err)
				}
			}

			w, err := generator.NewWatcher(gen, generator.WithDebounce(debounce))
			if err != nil {
				return err
			}
			defer w.Close()

			for _, file := range args {
				if err := w.Add(file); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
