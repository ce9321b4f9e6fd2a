package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rj-helpers/nbtpatch/patchfile"
	"github.com/rj-helpers/nbtpatch/patchset"
)

var snapshotCmd = cli.Command{
	Name:                   "snapshot",
	Usage:                  "Capture an item's NBT as a patch that recreates it",
	MutuallyExclusiveFlags: []cli.MutuallyExclusiveFlags{outputterFlags},
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:        "file",
			Destination: &destinations.snapshot.file,
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Format of the patch document, one of toml, json or yaml.",
			DefaultText: "The format of the item file.",
			Destination: &destinations.snapshot.format,
			Validator: func(s string) error {
				_, err := patchfile.ParseFormat(s)
				return err
			},
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		if destinations.snapshot.file == "" {
			return fmt.Errorf("item file must be specified")
		}
		logger, err := newLogger(os.Stderr)
		if err != nil {
			return err
		}
		metrics := newRunMetrics()

		stack, format, err := readItem(destinations.snapshot.file)
		if err != nil {
			return err
		}
		if destinations.snapshot.format != "" {
			if format, err = patchfile.ParseFormat(destinations.snapshot.format); err != nil {
				return err
			}
		}

		ps := patchset.FromDocument(stack)
		metrics.observe("snapshot", ps)
		logger.Info("captured snapshot", "item", stack.ID, "additions", len(ps.AdditionPaths()))

		content, err := patchfile.Marshal(patchfile.Encode(ps), format)
		if err != nil {
			return fmt.Errorf("marshalling snapshot: %w", err)
		}
		// The item file is never overwritten with a patch.
		if err := output(os.Stdout, "", content); err != nil {
			return err
		}
		if err := metrics.flush(destinations.metricsTextfile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		return nil
	},
}
