package main

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"
)

var configCmd = &cli.Command{
	Name:  "config",
	Usage: "show and edit the configuration file",
	Subcommands: []*cli.Command{
		configDefaultCmd,
		configGetCmd,
		configSetCmd,
	},
}

var configDefaultCmd = &cli.Command{
	Name:  "default",
	Usage: "print the configuration in effect as TOML",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		return toml.NewEncoder(c.App.Writer).Encode(*cfg)
	},
}

var configGetCmd = &cli.Command{
	Name:      "get",
	Usage:     "print one value, e.g. verifier.maxK",
	ArgsUsage: "KEY",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return xerrors.New("expected a key")
		}
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		val, err := cfg.Get(c.Args().First())
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(val, "", "\t")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.App.Writer, string(out))
		return err
	},
}

var configSetCmd = &cli.Command{
	Name:      "set",
	Usage:     "set one value in the --config file, e.g. verifier.maxK 32",
	ArgsUsage: "KEY VALUE",
	Action: func(c *cli.Context) error {
		if c.NArg() != 2 {
			return xerrors.New("expected a key and a TOML value")
		}
		path, err := configPath(c)
		if err != nil {
			return err
		}
		if path == "" {
			return xerrors.New("config set needs --config")
		}
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		if _, err := cfg.Set(c.Args().Get(0), c.Args().Get(1)); err != nil {
			return err
		}
		if err := cfg.WriteFile(path); err != nil {
			return xerrors.Errorf("writing %s: %w", path, err)
		}
		log.Infow("config updated", "path", path, "key", c.Args().Get(0))
		return nil
	},
}
