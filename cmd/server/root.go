package main

import (
	"github.com/mx-space/blog-admin/internal/config"
	"github.com/mx-space/blog-admin/internal/pkg/nativelog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "blog-admin",
		Short:         "Blog admin backend",
		Long:          "Serves the blog admin API and runs maintenance tasks against its MongoDB store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultConfigPath, "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file")

	serve := newServeCmd(opts)
	cmd.AddCommand(serve)
	cmd.AddCommand(newVisitorsCmd(opts))
	cmd.AddCommand(newTokenCmd(opts))
	// bare "blog-admin" starts the server
	cmd.RunE = serve.RunE
	return cmd
}

// load reads .env then the YAML config.
func (o *rootOptions) load() (*config.AppConfig, error) {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return nil, err
	}
	return config.Load(o.configPath)
}

func newLogger(cfg *config.AppConfig) *zap.Logger {
	logger, err := nativelog.NewZapLogger(nativelog.Options{Dir: cfg.LogDir, Debug: cfg.IsDev()})
	if err != nil {
		logger, _ = zap.NewProduction()
		logger.Warn("native log pipeline unavailable, fallback to zap production logger", zap.Error(err))
	}
	return logger
}
