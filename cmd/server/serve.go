package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sakif/your-yoda/internal/config"
	"github.com/sakif/your-yoda/internal/server"
)

func serveCmd() *cobra.Command {
	v := config.New()
	var configFile, envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and the letter generation job",
		Long: `Start the API server.

Examples:
  yoda serve
  yoda serve --port 8080 --seed-demo=false
  yoda serve --store sqlite --db-path data/yoda.db
  yoda serve --config yoda.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, envFile, configFile)
			if err != nil {
				return err
			}

			logger := cfg.NewLogger(cmd.OutOrStdout())
			slog.SetDefault(logger)

			srv, err := server.New(cfg, logger)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			// Start blocks until SIGINT or SIGTERM.
			return srv.Start()
		},
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "YAML config file")
	f.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	f.Int("port", 5002, "HTTP port")
	f.String("store", config.StoreMemory, "storage backend (memory or sqlite)")
	f.String("db-path", ":memory:", "sqlite database path when --store=sqlite")
	f.Bool("seed-demo", true, "create the demo account on startup")
	f.Duration("generation-interval", 0, "how often the letter generation job runs (default 1m)")
	f.String("log-level", "info", "debug, info, warn or error")
	f.String("log-format", "text", "text or json")

	bindFlags(v, cmd, map[string]string{
		"port":                "port",
		"store":               "store",
		"db_path":             "db-path",
		"seed_demo":           "seed-demo",
		"generation_interval": "generation-interval",
		"log_level":           "log-level",
		"log_format":          "log-format",
	})

	return cmd
}

// bindFlags connects config keys to flags. viper only uses a bound flag's
// value when the flag was set, so env and file values still apply otherwise.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}
