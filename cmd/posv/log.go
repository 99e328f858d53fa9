package main

import (
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v2"

	"github.com/filecoin-project/go-posv/pkg/config"
)

// setupLogging sets every logger to the --log-level flag, falling back to the
// config file and then to info.
func setupLogging(c *cli.Context) error {
	lvl := c.String("log-level")
	if lvl == "" {
		if path, err := configPath(c); err == nil && path != "" {
			if cfg, err := config.ReadFile(path); err == nil && cfg.Log != nil {
				lvl = cfg.Log.Level
			}
		}
	}

	level, err := logging.LevelFromString(lvl)
	if err != nil {
		level = logging.LevelInfo
	}
	logging.SetAllLoggers(level)
	return nil
}

// loadConfig reads --config, or returns the defaults when it is not set or
// does not exist yet.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path, err := configPath(c)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return config.NewDefaultConfig(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Debugw("config file not found, using defaults", "path", path)
		return config.NewDefaultConfig(), nil
	}
	cfg, err := config.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPath returns --config with a leading ~ expanded.
func configPath(c *cli.Context) (string, error) {
	return homedir.Expand(c.String("config"))
}
