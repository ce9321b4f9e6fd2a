package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

var (
	destinations = struct {
		logLevel        string
		metricsTextfile string
		components      []string
		outputter       struct {
			output  string
			inPlace bool
		}
		apply struct {
			target string
			set    []string
			remove []string
			diff   bool
		}
		snapshot struct {
			file   string
			format string
		}
		show struct {
			file  string
			patch bool
		}
	}{}

	nbtpatchCmd = cli.Command{
		Name:  "nbtpatch",
		Usage: "Apply and capture item NBT patches",
		Commands: []*cli.Command{
			&applyCmd,
			&snapshotCmd,
			&showCmd,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "One of debug, info, warn or error.",
				Value:       "info",
				Sources:     cli.EnvVars("NBTPATCH_LOG_LEVEL"),
				Destination: &destinations.logLevel,
				Validator: func(s string) error {
					var level slog.Level
					return level.UnmarshalText([]byte(s))
				},
			},
			&cli.StringFlag{
				Name:        "metrics-textfile",
				Usage:       "Write Prometheus metrics for the run to this file.",
				Sources:     cli.EnvVars("NBTPATCH_METRICS_TEXTFILE"),
				Destination: &destinations.metricsTextfile,
				TakesFile:   true,
				Action: func(ctx context.Context, command *cli.Command, s string) error {
					return command.Set("metrics-textfile", filepath.Clean(s))
				},
			},
			&cli.StringSliceFlag{
				Name:        "components",
				Usage:       "TOML, JSON or YAML files mapping component ids to NBT paths, layered over the defaults. A null path drops a component.",
				Destination: &destinations.components,
				TakesFile:   true,
			},
		},
		// --set values may hold TOML arrays, so slice flags are repeated
		// rather than comma-separated.
		DisableSliceFlagSeparator: true,
	}
)

func newLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(destinations.logLevel)); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func main() {
	if err := nbtpatchCmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
