package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hottake/hottake/internal/config"
	"github.com/hottake/hottake/internal/logging"
	"github.com/hottake/hottake/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bundled debate directory server",
	Long: `Run the bundled debate directory server. This serves the same API
the client talks to, so a single machine can host its own directory:

  hottake serve &
  hottake`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :3000)")
	serveCmd.Flags().Bool("no-seed", false, "start with an empty directory instead of demo debates")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	addr := cfg.Serve.Addr
	if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
		addr = flagAddr
	}

	seed := cfg.Serve.Seed
	if noSeed, _ := cmd.Flags().GetBool("no-seed"); noSeed {
		seed = false
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logDir := cfg.Logging.Dir
		if logDir == "" {
			logDir = cfg.Storage.ResolveDir()
		}
		if l, err := logging.NewLogger(logDir, cfg.Logging.Level); err == nil {
			logger = l
			defer func() { _ = logger.Close() }()
		}
	}

	opts := []server.Option{server.WithLogger(logger)}
	if seed {
		opts = append(opts, server.WithSeed())
	}

	fmt.Printf("Serving debate directory on %s\n", addr)
	return server.New(opts...).Run(addr)
}
