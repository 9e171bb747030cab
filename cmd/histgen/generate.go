package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newGenerateCmd(c *cli) *cobra.Command {
	flags := &genFlags{}

	cmd := &cobra.Command{
		Use:   "generate [file.go...]",
		Short: "Generate transaction methods",
		Long: `Generate transaction methods for the journaled aggregates in each file.
With no arguments the file named by $GOFILE (set by go generate) is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				if gofile := os.Getenv("GOFILE"); gofile != "" {
					files = []string{gofile}
				}
			}
			if len(files) == 0 {
				return errors.New("no source files given")
			}

			if flags.suffix != "" && !strings.HasSuffix(flags.suffix, ".go") {
				return fmt.Errorf("suffix %q must end in .go", flags.suffix)
			}

			gen := c.newGenerator(flags)
			var failed int
			for _, file := range files {
				out, err := gen.File(file)
				if err != nil {
					c.log.Error("%v", err)
					failed++
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed", failed, len(files))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
