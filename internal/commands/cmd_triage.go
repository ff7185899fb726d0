package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/redline/internal/core/comparison"
	"github.com/colonyops/redline/internal/core/history"
	"github.com/colonyops/redline/internal/core/logging"
	"github.com/colonyops/redline/internal/redline"
	"github.com/colonyops/redline/internal/tui"
)

type TriageCmd struct {
	flags *Flags
	app   *redline.App
	input reportInput

	// flags
	category string
}

// NewTriageCmd creates a new triage command
func NewTriageCmd(flags *Flags, app *redline.App) *TriageCmd {
	return &TriageCmd{flags: flags, app: app}
}

// Flags returns the triage flags for registration on the root command
func (cmd *TriageCmd) Flags() []cli.Flag {
	return append(cmd.input.flags(),
		&cli.StringFlag{
			Name:        "category",
			Usage:       "initial category filter",
			Destination: &cmd.category,
		},
	)
}

// RootFlags returns the triage flags marked local so subcommands with flags
// of the same name do not inherit them.
func (cmd *TriageCmd) RootFlags() []cli.Flag {
	flags := cmd.Flags()
	for _, f := range flags {
		switch f := f.(type) {
		case *cli.StringFlag:
			f.Local = true
		case *cli.BoolFlag:
			f.Local = true
		}
	}
	return flags
}

// Register adds the triage command to the application
func (cmd *TriageCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "triage",
		Usage:     "Review differences interactively",
		UsageText: "redline triage [-f report.json | --id ID] [--category NAME]",
		Description: `Opens the triage view. Use alt+down/alt+up (or j/k) to step through
differences, tab to cycle the category filter, and q to quit.

Without input, a report is picked from history.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})

	return app
}

// Run executes the triage TUI. Exported for use as default command.
func (cmd *TriageCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TriageCmd) run(ctx context.Context, _ *cli.Command) error {
	report, err := cmd.resolve(ctx)
	if err != nil {
		return err
	}

	ctx = logging.WithCategory(logging.WithReportID(ctx, report.ID), cmd.category)
	logger := logging.Component("triage")
	logger.Info().Ctx(ctx).Int("differences", len(report.Differences)).Msg("triage session started")

	m := tui.New(tui.Options{
		Report:    report,
		Config:    cmd.app.Config,
		Memo:      cmd.app.Memo,
		Category:  cmd.category,
		BuildInfo: cmd.app.Build,
	})

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		m.Close()
		return fmt.Errorf("run tui: %w", err)
	}

	if model, ok := finalModel.(tui.Model); ok {
		state := model.Controller().Snapshot()
		logger.Info().Ctx(ctx).
			Str("filter", state.CategoryFilter).
			Int("active", state.ActiveIndex).
			Msg("triage session ended")
		model.Close()
	}
	return nil
}

func (cmd *TriageCmd) resolve(ctx context.Context) (comparison.Report, error) {
	if cmd.input.id != "" || cmd.input.reader.Provided() {
		return cmd.input.load(ctx, cmd.app)
	}

	entries, err := cmd.app.History.List(ctx)
	if err != nil {
		return comparison.Report{}, fmt.Errorf("list history: %w", err)
	}

	switch {
	case len(entries) == 0:
		return comparison.Report{}, errors.New("no report given and history is empty; use -f or pipe a report")
	case len(entries) == 1 || !term.IsTerminal(int(os.Stdout.Fd())):
		return entries[0].Report, nil
	}

	return pickEntry(entries)
}

// pickEntry asks the user to choose a history entry.
func pickEntry(entries []history.Entry) (comparison.Report, error) {
	options := make([]huh.Option[int], 0, len(entries))
	for i := range entries {
		e := &entries[i]
		label := fmt.Sprintf("%s  %s  (%d differences, %s)",
			shortID(e.ID()),
			e.Report.DisplayTitle(),
			len(e.Report.Differences),
			e.ImportedAt.Format("2006-01-02 15:04"))
		options = append(options, huh.NewOption(label, i))
	}

	var choice int
	err := huh.NewSelect[int]().
		Title("Select a report").
		Options(options...).
		Value(&choice).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return comparison.Report{}, cli.Exit("", 130)
		}
		return comparison.Report{}, fmt.Errorf("select report: %w", err)
	}

	logging.Component("triage").Debug().Str("report_id", entries[choice].ID()).Msg("report selected from history")
	return entries[choice].Report, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
