package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/redline/internal/core/comparison"
	"github.com/colonyops/redline/internal/redline"
	"github.com/colonyops/redline/pkg/iojson"
)

// reportInput resolves the report a command operates on: a file or piped
// stdin when given, otherwise a history entry by ID, otherwise the most
// recent import.
type reportInput struct {
	reader iojson.FileReader
	id     string
	format string
	noSave bool
}

func (in *reportInput) flags() []cli.Flag {
	return []cli.Flag{
		in.reader.Flag(),
		&cli.StringFlag{
			Name:        "id",
			Usage:       "load a report from history by ID or ID prefix",
			Destination: &in.id,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "input format (json, yaml); detected from the file extension when unset",
			Destination: &in.format,
		},
		&cli.BoolFlag{
			Name:        "no-save",
			Usage:       "do not record the report in history",
			Destination: &in.noSave,
		},
	}
}

// fromInput reports whether a file or piped stdin was supplied.
func (in *reportInput) fromInput() bool {
	return in.id == "" && in.reader.Provided()
}

func (in *reportInput) load(ctx context.Context, app *redline.App) (comparison.Report, error) {
	if !in.fromInput() {
		return app.Report(ctx, in.id)
	}

	data, err := in.reader.ReadAll()
	if err != nil {
		return comparison.Report{}, err
	}

	format := comparison.FormatFromPath(in.reader.Path())
	switch f := comparison.Format(in.format); f {
	case "":
	case comparison.FormatJSON, comparison.FormatYAML:
		format = f
	default:
		return comparison.Report{}, fmt.Errorf("unknown format %q (expected json or yaml)", in.format)
	}

	if in.noSave {
		return app.LoadReport(data, format)
	}

	entry, err := app.Import(ctx, data, format, in.reader.Path())
	if err != nil {
		return comparison.Report{}, fmt.Errorf("import report: %w", err)
	}
	return entry.Report, nil
}
