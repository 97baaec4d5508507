// Command chriscakes serves the ChrisCakes catering site, exports it as
// static HTML and maintains the Postgres content mirror.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"chriscakes/internal/config"
	"chriscakes/internal/logging"
)

var (
	envFiles  []string
	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:           "chriscakes",
	Short:         "ChrisCakes catering site",
	Long:          "Serve, export and maintain the ChrisCakes catering site. Without a sub-command it runs serve.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFiles...)
		if err != nil {
			return err
		}
		logCloser = logging.Setup(logging.Options{
			Dev:   cfg.IsDev(),
			Level: cfg.LogLevel,
			File:  cfg.LogFile,
		})
		slog.Info("configuration loaded",
			"env", cfg.Env,
			"backend", cfg.ContentBackend,
			"command", cmd.Name(),
		)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
