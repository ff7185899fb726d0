package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/redline/internal/core/align"
	"github.com/colonyops/redline/pkg/iojson"
)

func TestDiffCmd_Text(t *testing.T) {
	flags := newTestFlags(t)
	cmd := NewDiffCmd(flags, newTestApp(t, flags))

	out, err := run(t, cmd, "diff",
		"--left", "Die Kündigungsfrist beträgt 3 Monate",
		"--right", "Die Kündigungsfrist beträgt 6 Monate")
	require.NoError(t, err)

	assert.Equal(t, "- Die Kündigungsfrist beträgt 3 Monate\n+ Die Kündigungsfrist beträgt 6 Monate\n4 same, 1 removed, 1 added", out)
}

func TestDiffCmd_JSON(t *testing.T) {
	flags := newTestFlags(t)
	cmd := NewDiffCmd(flags, newTestApp(t, flags))

	out, err := run(t, cmd, "diff", "--left", "a b", "--right", "b a", "--json")
	require.NoError(t, err)

	var got struct {
		Left []struct {
			Text string `json:"text"`
			Kind string `json:"kind"`
		} `json:"left"`
		Right []struct {
			Text string `json:"text"`
			Kind string `json:"kind"`
		} `json:"right"`
		Stats align.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	require.Len(t, got.Left, 2)
	assert.Equal(t, "a ", got.Left[0].Text)
	assert.Equal(t, "same", got.Left[0].Kind)
	assert.Equal(t, "removed", got.Left[1].Kind)
	assert.Equal(t, "added", got.Right[0].Kind)
	assert.Equal(t, align.Stats{Same: 1, Added: 1, Removed: 1}, got.Stats)
}

func TestDiffCmd_Files(t *testing.T) {
	flags := newTestFlags(t)
	dir := t.TempDir()
	left := writeFile(t, dir, "left.txt", "pay within 30 days\n")
	right := writeFile(t, dir, "right.txt", "pay within 60 days\n")

	out, err := run(t, NewDiffCmd(flags, newTestApp(t, flags)), "diff", "--left-file", left, "--right-file", right)
	require.NoError(t, err)
	assert.Contains(t, out, "- pay within 30 days")
	assert.Contains(t, out, "+ pay within 60 days")
}

func TestDiffCmd_Errors(t *testing.T) {
	flags := newTestFlags(t)

	t.Run("max tokens", func(t *testing.T) {
		_, err := run(t, NewDiffCmd(flags, newTestApp(t, flags)), "diff", "--left", "one two three", "--right", "one", "--max-tokens", "2")
		require.ErrorIs(t, err, align.ErrTooLong)
	})

	t.Run("inline and file", func(t *testing.T) {
		_, err := run(t, NewDiffCmd(flags, newTestApp(t, flags)), "diff", "--left", "x", "--left-file", "x.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, NewDiffCmd(flags, newTestApp(t, flags)), "diff", "--right-file", "/does/not/exist")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read right file")
	})
}

func TestDiffCmd_JSONError(t *testing.T) {
	flags := newTestFlags(t)

	out, err := run(t, NewDiffCmd(flags, newTestApp(t, flags)), "diff",
		"--left", "one two three", "--right", "one", "--max-tokens", "2", "--json")
	require.Error(t, err)

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())

	var got iojson.Error
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got.Message, "left text")
	assert.Contains(t, got.Message, align.ErrTooLong.Error())
	assert.InDelta(t, 2, got.Data["max_tokens"], 0)
}
