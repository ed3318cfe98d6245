// Package setup holds the bootstrap steps shared by every command.
package setup

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/lucas/ecommerce/config"
)

// Load builds the logger and reads configuration.
func Load() (*config.Config, *logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(logger)
	if err != nil {
		return nil, logger, err
	}
	if err := cfg.ConfigureLogger(logger); err != nil {
		return nil, logger, err
	}
	return cfg, logger, nil
}
