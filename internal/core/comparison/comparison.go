// Package comparison defines the contract comparison domain types produced by
// the external analysis service.
package comparison

import (
	"fmt"
	"time"

	"github.com/hay-kot/criterio"
)

// Difference is a single finding from the analysis service. It is read-only
// for the lifetime of a triage session.
type Difference struct {
	Category       string   `json:"category"       yaml:"category"`
	Section        string   `json:"section"        yaml:"section"`
	Contract1      string   `json:"contract1"      yaml:"contract1"`
	Contract2      string   `json:"contract2"      yaml:"contract2"`
	Severity       Severity `json:"severity"       yaml:"severity"`
	Impact         string   `json:"impact"         yaml:"impact"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"`
}

// Report is a complete comparison result together with session metadata.
type Report struct {
	ID            string       `json:"id"                    yaml:"id"`
	Title         string       `json:"title,omitempty"       yaml:"title,omitempty"`
	Contract1Name string       `json:"contract1_name"        yaml:"contract1_name"`
	Contract2Name string       `json:"contract2_name"        yaml:"contract2_name"`
	RiskScore1    *int         `json:"risk_score1,omitempty" yaml:"risk_score1,omitempty"`
	RiskScore2    *int         `json:"risk_score2,omitempty" yaml:"risk_score2,omitempty"`
	Summary       string       `json:"summary,omitempty"     yaml:"summary,omitempty"`
	Differences   []Difference `json:"differences"           yaml:"differences"`
	CreatedAt     time.Time    `json:"created_at"            yaml:"created_at"`
}

// DisplayTitle returns the title, falling back to the contract names.
func (r *Report) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	left, right := r.Contract1Name, r.Contract2Name
	if left == "" {
		left = "Contract 1"
	}
	if right == "" {
		right = "Contract 2"
	}
	return left + " vs " + right
}

// Categories returns the distinct categories in first-seen order.
func (r *Report) Categories() []string {
	return Categories(r.Differences)
}

// Validate checks the fields the triage view relies on. The analysis service
// owns the data, so this runs at the load boundary only.
func (r *Report) Validate() error {
	var errs criterio.FieldErrorsBuilder

	for i, d := range r.Differences {
		if !d.Severity.IsValid() {
			errs = errs.Append(fmt.Sprintf("differences[%d].severity", i), fmt.Errorf("unknown severity %q", d.Severity))
		}
		if d.Category == "" {
			errs = errs.Append(fmt.Sprintf("differences[%d].category", i), fmt.Errorf("category is required"))
		}
	}

	scores := []struct {
		field string
		value *int
	}{
		{"risk_score1", r.RiskScore1},
		{"risk_score2", r.RiskScore2},
	}
	for _, s := range scores {
		if s.value != nil && (*s.value < 0 || *s.value > 100) {
			errs = errs.Append(s.field, fmt.Errorf("must be between 0 and 100, got %d", *s.value))
		}
	}

	return errs.ToError()
}

// Categories returns the distinct categories of diffs in first-seen order.
func Categories(diffs []Difference) []string {
	seen := make(map[string]struct{}, len(diffs))
	var out []string
	for _, d := range diffs {
		if _, ok := seen[d.Category]; ok {
			continue
		}
		seen[d.Category] = struct{}{}
		out = append(out, d.Category)
	}
	return out
}

// SeverityCounts counts diffs per severity. Severities with no diffs are
// omitted rather than zero-filled.
func SeverityCounts(diffs []Difference) map[Severity]int {
	counts := make(map[Severity]int)
	for _, d := range diffs {
		counts[d.Severity]++
	}
	return counts
}
