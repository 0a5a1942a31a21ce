// Command inmomax browses the InmoMax catalog and talks to the site chatbot
// from a terminal.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inmomax/internal/catalog"
	"inmomax/internal/config"
	"inmomax/internal/logger"
)

// app is the state shared by all subcommands.
type app struct {
	apiURL  string
	timeout time.Duration

	cfg    *config.Config
	logger *zap.Logger
}

func (a *app) catalog() *catalog.FallbackClient {
	return catalog.NewFallbackClient(catalog.NewClient(a.apiURL, a.timeout), a.logger)
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "inmomax",
		Short:         "InmoMax catalog and chatbot client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			if !cmd.Flags().Changed("api") {
				a.apiURL = cfg.Catalog.APIBaseURL
			}
			if !cmd.Flags().Changed("timeout") {
				a.timeout = cfg.Catalog.FetchTimeout
			}

			l, err := logger.NewLogger(cfg.Logging.Env, cfg.Logging.Level)
			if err != nil {
				return err
			}
			a.logger = l
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "property API base URL")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "request timeout")

	root.AddCommand(newListCmd(a), newFeaturedCmd(a), newDetailCmd(a), newChatCmd(a))
	return root
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
