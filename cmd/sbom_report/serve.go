package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/sbom-report/internal/config"
	"github.com/jonathan/sbom-report/internal/observability"
	"github.com/jonathan/sbom-report/internal/server"
)

var (
	serveHost       string
	servePort       int
	serveDebug      bool
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload server",
	Long: `Start an HTTP server with an upload page at / that converts SBOM JSON files to PDF.

Settings are read from SBOM_REPORT_* environment variables (a .env file is loaded if present),
then from the optional --config JSON file, then from flags.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", config.DefaultHost, "Address to bind to")
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to a JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveServeConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Debug("configuration loaded",
		zap.String("addr", cfg.Addr()),
		zap.Int64("max_upload_bytes", cfg.MaxUploadBytes),
	)
	return srv.Start()
}

// resolveServeConfig layers environment, config file and explicitly set flags, in that order.
func resolveServeConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv()

	if serveConfigFile != "" {
		fileCfg, err := config.LoadConfig(serveConfigFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = serveHost
	}
	if flags.Changed("port") {
		cfg.Port = servePort
	}
	if flags.Changed("debug") {
		cfg.Debug = serveDebug
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
