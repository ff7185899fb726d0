package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/redline/internal/render"
	"github.com/colonyops/redline/pkg/iojson"
)

// writeJSON writes v as indented JSON, syntax colored when w is a terminal.
func writeJSON(w io.Writer, v any) error {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, render.ColorJSON(data))
		return err
	}
	return iojson.WriteWith(w, os.Stderr, v)
}

// writeJSONError reports err as a JSON error document on the command's error
// writer and exits non-zero without printing err again.
func writeJSONError(c *cli.Command, err error, data map[string]any) error {
	var w io.Writer = os.Stderr
	if ew := c.Root().ErrWriter; ew != nil {
		w = ew
	}
	if werr := iojson.WriteError(w, err.Error(), data); werr != nil {
		return fmt.Errorf("write error: %w", werr)
	}
	return cli.Exit("", 1)
}
