package comparison

import (
	"fmt"
	"strings"
)

// Severity is the risk level assigned to a difference by the analysis service.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities returns the known severities from least to most severe.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// ParseSeverity normalizes s and returns the matching severity.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if !sev.IsValid() {
		return sev, fmt.Errorf("unknown severity %q", s)
	}
	return sev, nil
}

// IsValid reports whether s is one of the four known severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// Rank orders severities; unknown values rank below low.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// UnmarshalText normalizes casing. Unknown values are kept as-is; validation
// is left to the caller.
func (s *Severity) UnmarshalText(text []byte) error {
	*s = Severity(strings.ToLower(strings.TrimSpace(string(text))))
	return nil
}
