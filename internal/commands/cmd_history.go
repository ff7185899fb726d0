package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/redline/internal/core/comparison"
	"github.com/colonyops/redline/internal/printer"
	"github.com/colonyops/redline/internal/redline"
	"github.com/colonyops/redline/pkg/iojson"
)

type HistoryCmd struct {
	flags *Flags
	app   *redline.App

	// flags
	jsonOutput bool
	yes        bool
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags, app *redline.App) *HistoryCmd {
	return &HistoryCmd{flags: flags, app: app}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "history",
		Usage: "Manage imported comparison reports",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List imported reports, newest first",
				UsageText: "redline history ls [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON lines",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "import",
				Usage:     "Import report files matching glob patterns",
				UsageText: "redline history import <glob>...",
				Description: `Imports every file matching the given patterns. Patterns support **
for recursive matching, e.g. 'reports/**/*.json'.

Files that fail to decode or validate are reported and skipped.`,
				Action: cmd.runImport,
			},
			{
				Name:          "rm",
				Usage:         "Remove reports from history",
				UsageText:     "redline history rm <id>...",
				Description:   "Removes the given reports. IDs may be unique prefixes.",
				ShellComplete: HistoryIDCompleter(cmd.app),
				Action:        cmd.runRemove,
			},
			{
				Name:      "clear",
				Usage:     "Remove all history entries",
				UsageText: "redline history clear [--yes]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip confirmation",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runClear,
			},
		},
	})

	return app
}

type historyJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	Differences int    `json:"differences"`
	ImportedAt  string `json:"imported_at"`
}

func (cmd *HistoryCmd) runList(ctx context.Context, c *cli.Command) error {
	entries, err := cmd.app.History.List(ctx)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(entries) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No reports in history\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for i := range entries {
			e := &entries[i]
			if err := iojson.WriteLine(out, historyJSON{
				ID:          e.ID(),
				Title:       e.Report.DisplayTitle(),
				Source:      e.Source,
				Differences: len(e.Report.Differences),
				ImportedAt:  e.ImportedAt.Format(time.RFC3339),
			}); err != nil {
				return fmt.Errorf("encode entry: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tDIFFS\tIMPORTED\tSOURCE")
	for i := range entries {
		e := &entries[i]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			shortID(e.ID()),
			e.Report.DisplayTitle(),
			len(e.Report.Differences),
			e.ImportedAt.Format("2006-01-02 15:04"),
			e.Source)
	}
	return w.Flush()
}

func (cmd *HistoryCmd) runImport(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	patterns := c.Args().Slice()
	if len(patterns) == 0 {
		return errors.New("at least one glob pattern is required")
	}

	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	files = slices.Compact(files)

	if len(files) == 0 {
		p.Warnf("No files matched")
		return nil
	}

	var imported, failed int
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			p.Errorf("%s: %v", file, err)
			failed++
			continue
		}

		entry, err := cmd.app.Import(ctx, data, comparison.FormatFromPath(file), file)
		if err != nil {
			p.Errorf("%s: %v", file, err)
			failed++
			continue
		}

		p.Successf("%s  %s (%d differences)", shortID(entry.ID()), file, len(entry.Report.Differences))
		imported++
	}

	p.Printf("")
	p.Infof("Imported %d report(s), %d failed", imported, failed)
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *HistoryCmd) runRemove(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	ids := c.Args().Slice()
	if len(ids) == 0 {
		return errors.New("at least one report ID is required")
	}

	for _, id := range ids {
		entry, err := cmd.app.History.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("report %q: %w", id, err)
		}
		if err := cmd.app.History.Delete(ctx, entry.ID()); err != nil {
			return fmt.Errorf("remove %q: %w", id, err)
		}
		p.Successf("Removed %s", shortID(entry.ID()))
	}
	return nil
}

func (cmd *HistoryCmd) runClear(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	if !cmd.yes {
		var confirm bool
		err := huh.NewConfirm().
			Title("Clear report history").
			Description("All imported reports will be removed. Continue?").
			Value(&confirm).
			Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !confirm {
			p.Infof("Clear cancelled")
			return nil
		}
	}

	if err := cmd.app.History.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	p.Successf("History cleared")
	return nil
}
