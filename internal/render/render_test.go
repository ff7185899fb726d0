package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/redline/internal/core/align"
	"github.com/colonyops/redline/internal/core/comparison"
	"github.com/colonyops/redline/pkg/tuitest"
)

func TestSegments_PlainText(t *testing.T) {
	res := align.Align("Die Kündigungsfrist beträgt 3 Monate", "Die Kündigungsfrist beträgt 6 Monate")

	assert.Equal(t, "Die Kündigungsfrist beträgt 3 Monate", tuitest.StripANSI(Segments(res.Left, false)))
	assert.Equal(t, "Die Kündigungsfrist beträgt 6 Monate", tuitest.StripANSI(Segments(res.Right, false)))
}

func TestSegments_Collapse(t *testing.T) {
	left := "one two three four five six seven changed"
	right := "one two three four five six seven altered"
	res := align.Align(left, right)

	got := tuitest.StripANSI(Segments(res.Left, true))
	assert.Equal(t, "one two … six seven changed", got)

	t.Run("short runs are kept", func(t *testing.T) {
		res := align.Align("a b c x", "a b c y")
		assert.Equal(t, "a b c x", tuitest.StripANSI(Segments(res.Left, true)))
	})
}

func TestSegments_Empty(t *testing.T) {
	assert.Empty(t, Segments(nil, false))
}

func TestSeverityCounts(t *testing.T) {
	got := tuitest.StripANSI(SeverityCounts(map[comparison.Severity]int{
		comparison.SeverityLow:      1,
		comparison.SeverityCritical: 2,
	}))
	assert.Contains(t, got, "critical 2")
	assert.Contains(t, got, "low 1")
	assert.NotContains(t, got, "medium")
	assert.Less(t, indexOf(got, "critical"), indexOf(got, "low"), "most severe first")

	assert.Equal(t, "no findings", tuitest.StripANSI(SeverityCounts(nil)))
}

func TestSeverityBadge(t *testing.T) {
	assert.Contains(t, tuitest.StripANSI(SeverityBadge(comparison.SeverityHigh)), "HIGH")
	assert.Contains(t, tuitest.StripANSI(SeverityBadge("")), "?")
}

func TestMarkdown(t *testing.T) {
	assert.Empty(t, Markdown("  ", 40))

	got := tuitest.StripANSI(Markdown("Extends the **notice period**.", 60))
	assert.Contains(t, got, "notice period")
	assert.NotContains(t, got, "**")
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
