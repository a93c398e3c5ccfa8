// Package providers contains dependency injection providers for the TapeVault server.
package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/tapevault/tapevault-server/internal/config"
	"github.com/tapevault/tapevault-server/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig(os.Args[1:])
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	log.Info("Starting TapeVault Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"library_path", cfg.Library.Path,
		"official_path", cfg.Library.OfficialPath,
	)

	return log, nil
}
