package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/redline/internal/core/comparison"
	"github.com/colonyops/redline/internal/core/styles"
	"github.com/colonyops/redline/internal/core/triage"
	"github.com/colonyops/redline/internal/redline"
	"github.com/colonyops/redline/internal/render"
)

const defaultTermWidth = 80

type ShowCmd struct {
	flags *Flags
	app   *redline.App
	input reportInput

	// flags
	index    int
	category string
	collapse bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *redline.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Print one difference with aligned contract texts",
		UsageText: "redline show [-f report.json] [--category NAME] [--index N]",
		Description: `Prints a single difference: its severity, the word-aligned texts of
both contracts, and the impact and recommendation.

--index is 1-based within the category filter and is clamped to the list.`,
		Flags: append(cmd.input.flags(),
			&cli.IntFlag{
				Name:        "index",
				Aliases:     []string{"n"},
				Usage:       "1-based position within the filtered list",
				Value:       1,
				Destination: &cmd.index,
			},
			&cli.StringFlag{
				Name:        "category",
				Usage:       "restrict to one category",
				Value:       triage.AllCategories,
				Destination: &cmd.category,
			},
			&cli.BoolFlag{
				Name:        "collapse",
				Usage:       "shorten long runs of unchanged words",
				Destination: &cmd.collapse,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	report, err := cmd.input.load(ctx, cmd.app)
	if err != nil {
		return err
	}

	ctrl := triage.NewController(report.Differences)
	ctrl.SetCategoryFilter(cmd.category)
	ctrl.Select(cmd.index - 1)

	d, ok := ctrl.Active()
	if !ok {
		return fmt.Errorf("no differences in category %q", ctrl.CategoryFilter())
	}

	out := c.Root().Writer
	width := terminalWidth()

	_, _ = fmt.Fprintf(out, "%s %s %s\n",
		render.SeverityBadge(d.Severity),
		styles.TextPrimaryBoldStyle.Render(d.Category),
		styles.TextMutedStyle.Render(fmt.Sprintf("(%d of %d)", ctrl.ActiveIndex()+1, ctrl.Len())))
	if d.Section != "" {
		_, _ = fmt.Fprintln(out, styles.TextMutedStyle.Render("Section "+d.Section))
	}
	_, _ = fmt.Fprintln(out)

	left, right := cmd.alignTexts(d)
	_, _ = fmt.Fprintf(out, "%s\n%s\n\n", styles.TriageLabelStyle.Render(contractLabel(report.Contract1Name, "Contract 1")), left)
	_, _ = fmt.Fprintf(out, "%s\n%s\n", styles.TriageLabelStyle.Render(contractLabel(report.Contract2Name, "Contract 2")), right)

	for _, part := range []struct{ label, body string }{
		{"Impact", d.Impact},
		{"Recommendation", d.Recommendation},
	} {
		if md := render.Markdown(part.body, width); md != "" {
			_, _ = fmt.Fprintf(out, "\n%s\n%s\n", styles.TriageLabelStyle.Render(part.label), md)
		}
	}

	return nil
}

func (cmd *ShowCmd) alignTexts(d comparison.Difference) (string, string) {
	res, err := cmd.app.Diff(d.Contract1, d.Contract2)
	if err != nil {
		log.Debug().Err(err).Msg("showing clause texts without alignment")
		return d.Contract1, d.Contract2
	}
	return render.Segments(res.Left, cmd.collapse), render.Segments(res.Right, cmd.collapse)
}

func contractLabel(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}

