package commands

import (
	"context"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/redline/internal/core/comparison"
	"github.com/colonyops/redline/internal/core/styles"
	"github.com/colonyops/redline/internal/core/triage"
	"github.com/colonyops/redline/internal/printer"
	"github.com/colonyops/redline/internal/redline"
)

type SummaryCmd struct {
	flags *Flags
	app   *redline.App
	input reportInput

	// flags
	category   string
	jsonOutput bool
}

// NewSummaryCmd creates a new summary command
func NewSummaryCmd(flags *Flags, app *redline.App) *SummaryCmd {
	return &SummaryCmd{flags: flags, app: app}
}

// Register adds the summary command to the application
func (cmd *SummaryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "summary",
		Usage:     "Show severity counts for a comparison report",
		UsageText: "redline summary [-f report.json] [--category NAME] [--json]",
		Description: `Counts differences per severity, optionally restricted to one category.

Reads the report from --file, stdin, or history (--id, defaulting to the most
recent import).`,
		Flags: append(cmd.input.flags(),
			&cli.StringFlag{
				Name:        "category",
				Usage:       "restrict counts to one category",
				Value:       triage.AllCategories,
				Destination: &cmd.category,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		),
		Action: cmd.run,
	})

	return app
}

type summaryJSON struct {
	ID             string                      `json:"id"`
	Title          string                      `json:"title"`
	Category       string                      `json:"category"`
	Total          int                         `json:"total"`
	Filtered       int                         `json:"filtered"`
	SeverityCounts map[comparison.Severity]int `json:"severity_counts"`
	Categories     []string                    `json:"categories"`
}

func (cmd *SummaryCmd) run(ctx context.Context, c *cli.Command) error {
	report, err := cmd.input.load(ctx, cmd.app)
	if err != nil {
		if cmd.jsonOutput {
			return writeJSONError(c, err, nil)
		}
		return err
	}

	ctrl := triage.NewController(report.Differences)
	ctrl.SetCategoryFilter(cmd.category)
	state := ctrl.Snapshot()
	categories := ctrl.Categories()

	if state.CategoryFilter != triage.AllCategories && !slices.Contains(categories, state.CategoryFilter) {
		printer.Ctx(ctx).Warnf("category %q not found in report", state.CategoryFilter)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		if categories == nil {
			categories = []string{}
		}
		if state.SeverityCounts == nil {
			state.SeverityCounts = map[comparison.Severity]int{}
		}
		return writeJSON(out, summaryJSON{
			ID:             report.ID,
			Title:          report.DisplayTitle(),
			Category:       state.CategoryFilter,
			Total:          state.Total,
			Filtered:       len(state.Filtered),
			SeverityCounts: state.SeverityCounts,
			Categories:     categories,
		})
	}

	_, _ = fmt.Fprintln(out, styles.CommandHeaderStyle.Render(report.DisplayTitle()))
	_, _ = fmt.Fprintf(out, "Category: %s (%d of %d)\n\n", state.CategoryFilter, len(state.Filtered), state.Total)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SEVERITY\tCOUNT")
	sevs := comparison.Severities()
	for i := len(sevs) - 1; i >= 0; i-- {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", sevs[i], state.SeverityCounts[sevs[i]])
	}
	_ = w.Flush()

	if len(categories) == 0 {
		return nil
	}

	perCategory := make(map[string]int, len(categories))
	for _, d := range report.Differences {
		perCategory[d.Category]++
	}

	_, _ = fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CATEGORY\tDIFFERENCES")
	for _, name := range categories {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", name, perCategory[name])
	}
	_ = w.Flush()

	return nil
}
