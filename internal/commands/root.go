// Package commands implements the roicalc command line.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/imgrooty/roi-calculator/internal/config"
	"github.com/imgrooty/roi-calculator/pkg/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the build information reported by version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "roicalc",
		Short: "ROI calculator server and terminal wizard",
		Long: `roicalc serves the ROI calculator landing page, a four-step wizard that
turns monthly revenue and costs into a return on investment, and can run
the same wizard in the terminal.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "", "log format: text, json, zap")
	root.PersistentFlags().String("theme", "", "skin: corporate or cyberpunk")

	root.AddCommand(newServeCmd())
	root.AddCommand(newCalcCmd())
	root.AddCommand(newRecordCmd())
	root.AddCommand(newEntriesCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// loadConfig reads the configuration, letting flags the user set on cmd
// override the file and environment. extra maps further config keys to
// local flag names.
func loadConfig(cmd *cobra.Command, extra map[string]string) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	keys := map[string]string{
		"logging.level":  "log-level",
		"logging.format": "log-format",
		"theme":          "theme",
	}
	for k, v := range extra {
		keys[k] = v
	}

	flags := make(map[string]*pflag.Flag, len(keys))
	for key, name := range keys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			flags[key] = f
		}
	}
	return config.Load(path, flags)
}

func newLogger(cfg *config.Config, w io.Writer) (logging.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	return logging.New(cfg.Logging.Format, cfg.Logging.Level, w)
}
