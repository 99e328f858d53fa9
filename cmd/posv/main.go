package main

import (
	"fmt"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
)

var log = logging.Logger("posv")

func main() {
	app := newApp()
	app.Setup()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ERR: %v\n", err) // nolint: errcheck
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                 "posv",
		Usage:                "verify chiapos proofs of space",
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a TOML config file",
				EnvVars: []string{"POSV_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level for every subsystem (debug, info, warn, error)",
				EnvVars: []string{"POSV_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "serve prometheus metrics on this address while the command runs",
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			verifyCmd,
			vectorsCmd,
			configCmd,
		},
	}
}
