package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rj-helpers/nbtpatch/patchfile"
)

var showCmd = cli.Command{
	Name:  "show",
	Usage: "Print an item document as SNBT, or a patch file's paths",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:        "file",
			Destination: &destinations.show.file,
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:        "patch",
			Usage:       "Treat the file as a patch document rather than an item.",
			Destination: &destinations.show.patch,
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		if destinations.show.file == "" {
			return fmt.Errorf("file must be specified")
		}
		if destinations.show.patch {
			ps, err := patchfile.Read(destinations.show.file)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, ps)
			return err
		}
		stack, _, err := readItem(destinations.show.file)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(os.Stdout, stack)
		return err
	},
}
