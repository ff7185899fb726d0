// Package redline wires the alignment engine, report decoding, and history
// store into the operations used by the CLI and the TUI.
package redline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/redline/internal/core/align"
	"github.com/colonyops/redline/internal/core/comparison"
	"github.com/colonyops/redline/internal/core/config"
	"github.com/colonyops/redline/internal/core/history"
	"github.com/colonyops/redline/internal/core/logging"
)

// BuildInfo holds build-time metadata.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// App is the central entry point for redline operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config  *config.Config
	History history.Store
	Memo    *align.Memo
	Build   BuildInfo

	now func() time.Time
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, store history.Store) *App {
	return &App{
		Config:  cfg,
		History: store,
		Memo:    align.NewMemo(cfg.Align.MemoSize),
		now:     time.Now,
	}
}

// Diff aligns two texts after checking them against the configured token
// limit.
func (a *App) Diff(left, right string) (align.Result, error) {
	return a.DiffWithLimit(left, right, a.Config.Align.MaxTokens)
}

// DiffWithLimit is Diff with an explicit token limit. A limit of zero or less
// disables the check.
func (a *App) DiffWithLimit(left, right string, maxTokens int) (align.Result, error) {
	if err := align.CheckLimit(left, maxTokens); err != nil {
		return align.Result{}, fmt.Errorf("left text: %w", err)
	}
	if err := align.CheckLimit(right, maxTokens); err != nil {
		return align.Result{}, fmt.Errorf("right text: %w", err)
	}
	return a.Memo.Align(left, right), nil
}

// LoadReport decodes and validates a report without recording it.
func (a *App) LoadReport(data []byte, format comparison.Format) (comparison.Report, error) {
	report, err := comparison.Decode(data, format, a.now())
	if err != nil {
		return comparison.Report{}, err
	}
	if err := report.Validate(); err != nil {
		return comparison.Report{}, fmt.Errorf("invalid report: %w", err)
	}
	return report, nil
}

// Import loads a report and records it in the history.
func (a *App) Import(ctx context.Context, data []byte, format comparison.Format, source string) (history.Entry, error) {
	report, err := a.LoadReport(data, format)
	if err != nil {
		return history.Entry{}, err
	}

	entry := history.Entry{
		Report:     report,
		Source:     source,
		ImportedAt: a.now(),
	}
	if err := a.History.Save(ctx, entry, a.Config.History.MaxEntries); err != nil {
		return history.Entry{}, fmt.Errorf("save history: %w", err)
	}

	logger := logging.Component("history")
	logger.Debug().
		Ctx(logging.WithReportID(ctx, report.ID)).
		Str("source", source).
		Int("differences", len(report.Differences)).
		Msg("report imported")

	return entry, nil
}

// Report returns a recorded report by ID or unique ID prefix. An empty id
// selects the most recent report.
func (a *App) Report(ctx context.Context, id string) (comparison.Report, error) {
	if id == "" {
		entries, err := a.History.List(ctx)
		if err != nil {
			return comparison.Report{}, err
		}
		if len(entries) == 0 {
			return comparison.Report{}, history.ErrNotFound
		}
		return entries[0].Report, nil
	}

	entry, err := a.History.Get(ctx, id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			return comparison.Report{}, fmt.Errorf("report %q: %w", id, err)
		}
		return comparison.Report{}, err
	}
	return entry.Report, nil
}
