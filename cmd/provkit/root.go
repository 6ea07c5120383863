package provkit

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/provkit/provkit/internal/config"
	"github.com/provkit/provkit/internal/loader"
)

var (
	flagConfigPaths []string
	flagVerbose     bool

	st  *config.State
	ldr *loader.Loader
)

// rootCmd is the base Cobra command for the provkit CLI.
var rootCmd = &cobra.Command{
	Use:           "provkit",
	Short:         "Inspect node provisioning configuration",
	Long:          "Provkit loads site configuration directories (defaults, secrets, bundle definitions) and shows the bundles, public keys and settings a new node would be provisioned with.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setup()
	},
}

// Execute runs the provkit CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&flagConfigPaths, "config-paths", "c", nil, "extra configuration directory (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	rootCmd.Version = config.Version
}

// setup builds the configuration state: built-in paths first, then any -c
// paths relative to the working directory, in order.
func setup() error {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	st = config.New(logger)
	ldr = loader.New(st, loader.Options{Logger: logger})
	if err := ldr.Configure(ldr.DefaultPaths()); err != nil {
		return err
	}
	return ldr.ConfigureCWD(flagConfigPaths)
}
