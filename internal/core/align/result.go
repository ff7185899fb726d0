package align

import (
	"strings"
)

// Stats counts segment kinds on each side of a Result.
type Stats struct {
	Same    int `json:"same"`
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// Changed reports whether the alignment contains any insertion or removal.
func (s Stats) Changed() bool {
	return s.Added > 0 || s.Removed > 0
}

// LeftText reconstructs the left input's tokens joined by single spaces.
func (r Result) LeftText() string {
	return joinSegments(r.Left)
}

// RightText reconstructs the right input's tokens joined by single spaces.
func (r Result) RightText() string {
	return joinSegments(r.Right)
}

// Common returns the SAME-tagged words of one side in order. The sequence is
// case-insensitively identical for both sides.
func Common(segs []Segment) []string {
	var out []string
	for _, s := range segs {
		if s.Kind == KindSame {
			out = append(out, s.Word())
		}
	}
	return out
}

// Stats returns segment counts. Same is counted once since both sides agree.
func (r Result) Stats() Stats {
	var st Stats
	for _, s := range r.Left {
		switch s.Kind {
		case KindSame:
			st.Same++
		case KindRemoved:
			st.Removed++
		}
	}
	for _, s := range r.Right {
		if s.Kind == KindAdded {
			st.Added++
		}
	}
	return st
}

func joinSegments(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return strings.TrimSuffix(b.String(), " ")
}
