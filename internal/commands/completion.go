package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/redline/internal/redline"
)

// HistoryIDCompleter returns a ShellCompleteFunc that suggests report IDs from
// history as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func HistoryIDCompleter(app *redline.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if app.History == nil {
			return
		}
		entries, err := app.History.List(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for i := range entries {
			_, _ = fmt.Fprintf(w, "%s:%s\n", entries[i].ID(), entries[i].Report.DisplayTitle())
		}
	}
}
