package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/revertable/internal/config"
	"github.com/dshills/revertable/internal/generator"
	"github.com/dshills/revertable/internal/logging"
)

// cli holds state shared by subcommands.
type cli struct {
	configPath string
	logLevel   string
	verbose    bool

	cfg config.Config
	log *logging.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "histgen",
		Short: "Generate transaction methods for journaled aggregates",
		Long: `histgen writes Begin, Commit, Revert, CommitAll, RevertAll, Clear,
Changed and Len methods for struct types that carry a history.Journal of
their own type. The methods delegate to the history package, so commits
confirm the oldest pending snapshot and reverts undo the newest.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to a .histgen.toml or .histgen.yaml file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newGenerateCmd(c),
		newWatchCmd(c),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and builds the logger.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	loader := config.NewLoader()

	var err error
	if c.configPath != "" {
		c.cfg, err = loader.Load(c.configPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			c.cfg, _, err = loader.Discover(wd)
		}
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if c.logLevel != "" {
		c.cfg.Log.Level = c.logLevel
	}
	if c.verbose {
		c.cfg.Log.Level = "debug"
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	lc := c.cfg.LoggerConfig()
	lc.Output = cmd.ErrOrStderr()
	lc.Component = "histgen"
	c.log = logging.New(lc)
	return nil
}

// newGenerator builds a generator from the loaded config and flag overrides.
func (c *cli) newGenerator(flags *genFlags) *generator.Generator {
	opts := generator.Options{
		Types:   c.cfg.Types,
		Journal: c.cfg.Journal,
		Suffix:  c.cfg.Suffix,
	}
	if len(flags.types) > 0 {
		opts.Types = flags.types
	}
	if flags.journal != "" {
		opts.Journal = flags.journal
	}
	if flags.suffix != "" {
		opts.Suffix = flags.suffix
	}
	return generator.New(opts, c.log)
}

// genFlags are the generation flags shared by generate and watch.
type genFlags struct {
	types   []string
	journal string
	suffix  string
}

func (f *genFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.types, "type", "t", nil, "Aggregate type names (default: every journaled struct)")
	cmd.Flags().StringVar(&f.journal, "journal", "", "Name of the journal field")
	cmd.Flags().StringVar(&f.suffix, "suffix", "", "Suffix for generated files (default _history.go)")
}
