package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

var errInPlaceUnsupported = errors.New("in-place rewrite is not supported by this command")

var outputterFlags = cli.MutuallyExclusiveFlags{
	Required: false,
	Flags: [][]cli.Flag{
		{
			&cli.StringFlag{
				Name:        "output",
				DefaultText: "STDOUT",
				Usage:       "The destination to which to write the resulting document.",
				Destination: &destinations.outputter.output,
				Aliases:     []string{"o"},
				TakesFile:   true,
			},
		},
		{
			&cli.BoolFlag{
				Name:        "in-place-rewrite",
				Usage:       "Whether to replace the input file with the result. Cannot be set in conjunction with output.",
				Destination: &destinations.outputter.inPlace,
				Aliases:     []string{"i"},
				OnlyOnce:    true,
			},
		},
	},
}

// output writes content to the destination selected by the outputter flags.
// originalPath is the file rewritten by --in-place-rewrite; when it is empty
// that flag is rejected.
func output(w io.Writer, originalPath string, content []byte) error {
	switch {
	case destinations.outputter.inPlace:
		if originalPath == "" {
			return errInPlaceUnsupported
		}
		stat, err := os.Stat(originalPath)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", originalPath, err)
		}
		return writeFileAtomically(originalPath, content, stat.Mode().Perm())
	case destinations.outputter.output != "":
		return writeFileAtomically(filepath.Clean(destinations.outputter.output), content, 0600)
	default:
		_, err := w.Write(content)
		return err
	}
}

// writeFileAtomically replaces destination with content. The content goes to
// a hidden sibling of destination first and is renamed over it once synced,
// so a reader never sees a partially written document.
func writeFileAtomically(destination string, content []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(destination), "."+filepath.Base(destination)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", destination, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("setting mode of %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}

	// TODO: Make this windows friendly
	//
	// On windows rename fails if file already exists.
	if err := os.Rename(tmp.Name(), destination); err != nil {
		return fmt.Errorf("replacing %s: %w", destination, err)
	}
	committed = true
	return nil
}
