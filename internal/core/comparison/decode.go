package comparison

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a report file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a report. The document may be a full report object or a bare
// list of differences. Reports without an ID get a fresh UUID; reports without
// a creation time are stamped with now.
func Decode(data []byte, format Format, now time.Time) (Report, error) {
	var (
		report Report
		err    error
	)

	switch format {
	case FormatYAML:
		report, err = decodeYAML(data)
	default:
		report, err = decodeJSON(data)
	}
	if err != nil {
		return Report{}, err
	}

	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}

	return report, nil
}

func decodeJSON(data []byte) (Report, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Report{}, fmt.Errorf("decode JSON: empty document")
	}

	if trimmed[0] == '[' {
		var diffs []Difference
		if err := json.Unmarshal(trimmed, &diffs); err != nil {
			return Report{}, fmt.Errorf("decode JSON: %w", err)
		}
		return Report{Differences: diffs}, nil
	}

	var report Report
	if err := json.Unmarshal(trimmed, &report); err != nil {
		return Report{}, fmt.Errorf("decode JSON: %w", err)
	}
	return report, nil
}

func decodeYAML(data []byte) (Report, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Report{}, fmt.Errorf("decode YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return Report{}, fmt.Errorf("decode YAML: empty document")
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var diffs []Difference
		if err := root.Decode(&diffs); err != nil {
			return Report{}, fmt.Errorf("decode YAML: %w", err)
		}
		return Report{Differences: diffs}, nil
	}

	var report Report
	if err := root.Decode(&report); err != nil {
		return Report{}, fmt.Errorf("decode YAML: %w", err)
	}
	return report, nil
}
