package iojson

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer
	err := WriteWith(&out, &errOut, map[string]int{"high": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"high\": 2\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer
	err := WriteWith(&out, &errOut, make(chan int))
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}

func TestWriteLine(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteLine(&out, struct {
		Kind string `json:"kind"`
	}{Kind: "added"}))
	assert.Equal(t, "{\"kind\":\"added\"}\n", out.String())
}

func TestMarshalError(t *testing.T) {
	got := MarshalError("boom", map[string]any{"path": "x.json"})
	assert.Contains(t, got, `"message": "boom"`)
	assert.Contains(t, got, `"path": "x.json"`)

	assert.Contains(t, jsonError("msg", errors.New("bad")), `"json_error":"bad"`)
}

func TestWriteError(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteError(&out, "read input: missing", nil))

	var got Error
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "read input: missing", got.Message)
	assert.Nil(t, got.Data)
}

func TestFileReader(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

		fr := &FileReader{fileFlagValue: path}
		data, err := fr.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
		assert.Equal(t, path, fr.Path())
		assert.True(t, fr.Provided())
	})

	t.Run("reads piped stdin", func(t *testing.T) {
		fr := &FileReader{stdin: strings.NewReader(`{"differences":[]}`)}
		data, err := fr.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, `{"differences":[]}`, string(data))
		assert.Equal(t, "-", fr.Path())
	})

	t.Run("refuses terminal stdin", func(t *testing.T) {
		fr := &FileReader{isTerminal: func() bool { return true }}
		assert.False(t, fr.Provided())
		_, err := fr.ReadAll()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stdin is a terminal")
	})

	t.Run("missing file", func(t *testing.T) {
		fr := &FileReader{fileFlagValue: filepath.Join(t.TempDir(), "nope.json")}
		_, err := fr.ReadAll()
		assert.Error(t, err)
	})
}
