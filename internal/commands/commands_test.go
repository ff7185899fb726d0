package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/redline/internal/core/config"
	"github.com/colonyops/redline/internal/redline"
	"github.com/colonyops/redline/internal/store/jsonfile"
	"github.com/colonyops/redline/pkg/tuitest"
)

const sampleReport = `{
  "id": "9f8e7d6c-0000-4000-8000-000000000001",
  "contract1_name": "MSA 2024",
  "contract2_name": "MSA 2026",
  "differences": [
    {
      "category": "Termination",
      "section": "12",
      "contract1": "Die Kündigungsfrist beträgt 3 Monate",
      "contract2": "Die Kündigungsfrist beträgt 6 Monate",
      "severity": "high",
      "impact": "Longer **lock-in**.",
      "recommendation": "Keep three months."
    },
    {
      "category": "Liability",
      "section": "8",
      "contract1": "Liability is capped",
      "contract2": "Liability is unlimited",
      "severity": "critical"
    },
    {
      "category": "Termination",
      "section": "13",
      "contract1": "Notice in writing",
      "contract2": "Notice by email",
      "severity": "low"
    }
  ]
}`

func newTestFlags(t *testing.T) *Flags {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &Flags{DataDir: cfg.DataDir, Config: &cfg}
}

func newTestApp(t *testing.T, flags *Flags) *redline.App {
	t.Helper()
	return redline.NewApp(flags.Config, jsonfile.NewHistoryStore(flags.Config.HistoryFile()))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type registrar interface {
	Register(app *cli.Command) *cli.Command
}

// run executes args against a root command holding only cmd and returns the
// plain-text output.
func run(t *testing.T, cmd registrar, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer

	app := &cli.Command{
		Name:      "redline",
		Writer:    &buf,
		ErrWriter: &buf,
		// keep cli.Exit errors from terminating the test binary
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	cmd.Register(app)

	err := app.Run(context.Background(), append([]string{"redline"}, args...))
	return tuitest.StripANSI(buf.String()), err
}
