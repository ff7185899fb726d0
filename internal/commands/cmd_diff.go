package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/redline/internal/core/align"
	"github.com/colonyops/redline/internal/core/styles"
	"github.com/colonyops/redline/internal/redline"
	"github.com/colonyops/redline/internal/render"
)

type DiffCmd struct {
	flags *Flags
	app   *redline.App

	// flags
	left       string
	right      string
	leftFile   string
	rightFile  string
	maxTokens  int
	jsonOutput bool
	collapse   bool
}

// NewDiffCmd creates a new diff command
func NewDiffCmd(flags *Flags, app *redline.App) *DiffCmd {
	return &DiffCmd{flags: flags, app: app}
}

// Register adds the diff command to the application
func (cmd *DiffCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "diff",
		Usage:     "Align two clause texts word by word",
		UsageText: "redline diff --left TEXT --right TEXT [--json]",
		Description: `Computes a word-level alignment of two texts. Words are compared
case-insensitively; removed words are struck through, added words are
highlighted.

Each side can be given inline or read from a file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "left",
				Usage:       "left (original) text",
				Destination: &cmd.left,
			},
			&cli.StringFlag{
				Name:        "right",
				Usage:       "right (revised) text",
				Destination: &cmd.right,
			},
			&cli.StringFlag{
				Name:        "left-file",
				Usage:       "read the left text from a file",
				Destination: &cmd.leftFile,
			},
			&cli.StringFlag{
				Name:        "right-file",
				Usage:       "read the right text from a file",
				Destination: &cmd.rightFile,
			},
			&cli.IntFlag{
				Name:        "max-tokens",
				Usage:       "token limit per text (0 disables, defaults to align.max_tokens)",
				Value:       -1,
				Destination: &cmd.maxTokens,
			},
			&cli.BoolFlag{
				Name:        "collapse",
				Usage:       "shorten long runs of unchanged words",
				Destination: &cmd.collapse,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output segments as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

type diffJSON struct {
	Left  []align.Segment `json:"left"`
	Right []align.Segment `json:"right"`
	Stats align.Stats     `json:"stats"`
}

func (cmd *DiffCmd) run(_ context.Context, c *cli.Command) error {
	limit := cmd.app.Config.Align.MaxTokens
	if cmd.maxTokens >= 0 {
		limit = cmd.maxTokens
	}

	res, err := cmd.diff(limit)
	if err != nil {
		if cmd.jsonOutput {
			var data map[string]any
			if errors.Is(err, align.ErrTooLong) {
				data = map[string]any{"max_tokens": limit}
			}
			return writeJSONError(c, err, data)
		}
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return writeJSON(out, diffJSON{
			Left:  nonNil(res.Left),
			Right: nonNil(res.Right),
			Stats: res.Stats(),
		})
	}

	stats := res.Stats()
	_, _ = fmt.Fprintf(out, "%s %s\n", styles.SegmentRemovedStyle.Render("-"), render.Segments(res.Left, cmd.collapse))
	_, _ = fmt.Fprintf(out, "%s %s\n", styles.SegmentAddedStyle.Render("+"), render.Segments(res.Right, cmd.collapse))
	_, _ = fmt.Fprintln(out, styles.TextMutedStyle.Render(
		fmt.Sprintf("%d same, %d removed, %d added", stats.Same, stats.Removed, stats.Added)))

	return nil
}

func (cmd *DiffCmd) diff(limit int) (align.Result, error) {
	left, err := readText("left", cmd.left, cmd.leftFile)
	if err != nil {
		return align.Result{}, err
	}
	right, err := readText("right", cmd.right, cmd.rightFile)
	if err != nil {
		return align.Result{}, err
	}
	return cmd.app.DiffWithLimit(left, right, limit)
}

// readText returns the inline value or the contents of file. Exactly one of
// the two must be set.
func readText(side, inline, file string) (string, error) {
	switch {
	case inline != "" && file != "":
		return "", fmt.Errorf("--%s and --%s-file are mutually exclusive", side, side)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s file: %w", side, err)
		}
		return string(data), nil
	default:
		return inline, nil
	}
}

func nonNil(segs []align.Segment) []align.Segment {
	if segs == nil {
		return []align.Segment{}
	}
	return segs
}
