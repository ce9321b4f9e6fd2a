package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/rj-helpers/nbtpatch/component"
	"github.com/rj-helpers/nbtpatch/item"
	"github.com/rj-helpers/nbtpatch/nbt"
	"github.com/rj-helpers/nbtpatch/patchfile"
	"github.com/rj-helpers/nbtpatch/patchset"
)

var applyCmd = cli.Command{
	Name:                   "apply",
	Usage:                  "Apply patch files to an item document",
	ArgsUsage:              "[PATCHFILE...]",
	Description:            "Patch files are layered in order. Without any, the patch is read from stdin in the target's format.",
	MutuallyExclusiveFlags: []cli.MutuallyExclusiveFlags{outputterFlags},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "target",
			Usage:       "Path to the TOML, JSON or YAML item document to patch. The file extension is used to determine the format.",
			Destination: &destinations.apply.target,
			Config: cli.StringConfig{
				TrimSpace: true,
			},
			Action: func(_ context.Context, command *cli.Command, s string) error {
				return command.Set("target", filepath.Clean(s))
			},
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:        "set",
			Usage:       "Set a component, as id=value. The value uses TOML syntax and falls back to a plain string.",
			Destination: &destinations.apply.set,
		},
		&cli.StringSliceFlag{
			Name:        "remove",
			Usage:       "Remove a component by id.",
			Destination: &destinations.apply.remove,
		},
		&cli.BoolFlag{
			Name:        "diff",
			Usage:       "Print a diff of the item document to stderr.",
			Destination: &destinations.apply.diff,
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger, err := newLogger(os.Stderr)
		if err != nil {
			return err
		}
		metrics := newRunMetrics()

		target := destinations.apply.target
		stack, format, err := readItem(target)
		if err != nil {
			return err
		}
		registry, err := loadComponents(destinations.components)
		if err != nil {
			return err
		}

		ps, err := loadPatch(command.Args().Slice(), os.Stdin, format)
		if err != nil {
			return err
		}
		ps, err = withComponentFlags(ps, registry, destinations.apply.set, destinations.apply.remove)
		if err != nil {
			return err
		}
		logger.Debug("loaded patch", "patch", ps.String())

		before := stack.Copy()
		ps.ApplyTo(stack)
		metrics.observe("apply", ps)
		logger.Info("applied patch",
			"target", target,
			"additions", len(ps.AdditionPaths()),
			"removals", len(ps.RemovalPaths()))

		content, err := patchfile.Marshal(stack.Encode(), format)
		if err != nil {
			return fmt.Errorf("marshalling patched item: %w", err)
		}
		if destinations.apply.diff {
			d, err := itemDiff(before, stack)
			if err != nil {
				return err
			}
			_, _ = io.WriteString(os.Stderr, d)
		}
		if err := output(os.Stdout, target, content); err != nil {
			return err
		}
		if err := metrics.flush(destinations.metricsTextfile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		return nil
	},
}

// readItem decodes the item document at path.
func readItem(path string) (*item.Stack, patchfile.Format, error) {
	format, err := patchfile.FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading item file: %w", err)
	}
	doc, err := patchfile.Unmarshal(data, format)
	if err != nil {
		return nil, "", fmt.Errorf("parsing item file: %w", err)
	}
	stack, err := item.Decode(doc)
	if err != nil {
		return nil, "", fmt.Errorf("decoding item file: %w", err)
	}
	return stack, format, nil
}

// loadPatch layers the given patch files, or reads a single patch in format
// from stdin when there are none. Blank input is an empty patch.
func loadPatch(files []string, stdin io.Reader, format patchfile.Format) (*patchset.PatchSet, error) {
	if len(files) > 0 {
		return patchfile.ReadAll(files...)
	}

	// Read full multi-line input from stdin
	var buffer bytes.Buffer
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		buffer.Write(scanner.Bytes())
		buffer.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input from stdin: %w", err)
	}
	patchBytes := bytes.TrimSpace(buffer.Bytes())
	if len(patchBytes) == 0 {
		return patchset.Empty(), nil
	}
	ps, err := patchfile.Parse(patchBytes, format)
	if err != nil {
		return nil, fmt.Errorf("parsing patch: %w", err)
	}
	return ps, nil
}

// withComponentFlags layers --set and --remove over ps.
func withComponentFlags(ps *patchset.PatchSet, registry *component.Registry, set, remove []string) (*patchset.PatchSet, error) {
	if len(set) == 0 && len(remove) == 0 {
		return ps, nil
	}
	b := ps.ToBuilder()
	for _, assignment := range set {
		id, raw, ok := strings.Cut(assignment, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q: expected id=value", assignment)
		}
		typ, err := registry.Resolve(strings.TrimSpace(id))
		if err != nil {
			return nil, err
		}
		value, err := parseComponentValue(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", assignment, err)
		}
		b.AddComponent(typ, value)
	}
	for _, id := range remove {
		typ, err := registry.Resolve(strings.TrimSpace(id))
		if err != nil {
			return nil, err
		}
		b.RemoveComponent(typ)
	}
	return b.Build(), nil
}

// parseComponentValue reads raw as a TOML value, so 10 is an int, true a
// byte and ["a", "b"] a list. Anything that is not valid TOML is taken as a
// plain string.
func parseComponentValue(raw string) (nbt.Tag, error) {
	var holder struct {
		V any `toml:"v"`
	}
	if err := toml.Unmarshal([]byte("v = "+raw), &holder); err != nil || holder.V == nil {
		return nbt.String(raw), nil
	}
	return nbt.FromNative(holder.V)
}

// itemDiff renders the change between two stacks as a YAML line diff.
func itemDiff(before, after *item.Stack) (string, error) {
	a, err := patchfile.Marshal(before.Encode(), patchfile.YAML)
	if err != nil {
		return "", fmt.Errorf("rendering diff: %w", err)
	}
	b, err := patchfile.Marshal(after.Encode(), patchfile.YAML)
	if err != nil {
		return "", fmt.Errorf("rendering diff: %w", err)
	}
	return lineDiff(string(a), string(b)), nil
}
