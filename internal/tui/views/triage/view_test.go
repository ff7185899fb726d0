package triage

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/redline/internal/core/comparison"
	"github.com/colonyops/redline/pkg/tuitest"
)

func testDiffs() []comparison.Difference {
	return []comparison.Difference{
		{
			Category:       "Termination",
			Section:        "12",
			Contract1:      "Die Kündigungsfrist beträgt 3 Monate",
			Contract2:      "Die Kündigungsfrist beträgt 6 Monate",
			Severity:       comparison.SeverityHigh,
			Impact:         "Longer **lock-in** period.",
			Recommendation: "Negotiate back to three months.",
		},
		{
			Category:  "Liability",
			Section:   "8",
			Contract1: "Liability is capped at the contract value",
			Contract2: "Liability is unlimited",
			Severity:  comparison.SeverityCritical,
		},
		{
			Category:  "Termination",
			Section:   "13",
			Contract1: "Notice must be in writing",
			Contract2: "Notice may be given by email",
			Severity:  comparison.SeverityLow,
		},
	}
}

func newMountedView(t *testing.T) View {
	t.Helper()
	v := New(testDiffs(), nil, Options{Title: "MSA v1 vs MSA v2"})
	v.SetSize(100, 40)
	v.Mount()
	t.Cleanup(v.Unmount)
	return v
}

// press sends a key to the view and runs any resulting command.
func press(t *testing.T, v View, msg tea.Msg) View {
	t.Helper()
	v, cmd := v.Update(msg)
	if cmd != nil {
		v, _ = v.Update(cmd())
	}
	return v
}

func TestView_AltNavigationWraps(t *testing.T) {
	v := newMountedView(t)

	v = press(t, v, tuitest.AltKeyDown())
	assert.Equal(t, 1, v.Controller().ActiveIndex())

	v = press(t, v, tuitest.AltKeyDown())
	v = press(t, v, tuitest.AltKeyDown())
	assert.Equal(t, 0, v.Controller().ActiveIndex(), "wraps from last to first")

	v = press(t, v, tuitest.AltKeyUp())
	assert.Equal(t, 2, v.Controller().ActiveIndex(), "wraps from first to last")
}

func TestView_VimAndArrowKeys(t *testing.T) {
	v := newMountedView(t)

	v = press(t, v, tuitest.KeyPress('j'))
	assert.Equal(t, 1, v.Controller().ActiveIndex())
	v = press(t, v, tuitest.KeyDown())
	assert.Equal(t, 2, v.Controller().ActiveIndex())
	v = press(t, v, tuitest.KeyPress('k'))
	assert.Equal(t, 1, v.Controller().ActiveIndex())
	v = press(t, v, tuitest.KeyUp())
	assert.Equal(t, 0, v.Controller().ActiveIndex())
}

func TestView_NavigationAppliesDuringUpdate(t *testing.T) {
	v := newMountedView(t)

	v, cmd := v.Update(tuitest.AltKeyDown())
	assert.Nil(t, cmd)
	assert.Equal(t, 1, v.Controller().ActiveIndex())

	active, ok := v.Controller().Active()
	require.True(t, ok)
	assert.Equal(t, "Liability", active.Category)
}

func TestView_NavigationThenFilterKeepsKeypressOrder(t *testing.T) {
	v := newMountedView(t)

	v, navCmd := v.Update(tuitest.AltKeyDown())
	v, tabCmd := v.Update(tuitest.KeyTab())
	for _, cmd := range []tea.Cmd{navCmd, tabCmd} {
		if cmd != nil {
			v, _ = v.Update(cmd())
		}
	}

	assert.Equal(t, "Termination", v.Controller().CategoryFilter())
	assert.Equal(t, 0, v.Controller().ActiveIndex(), "filter change after navigation resets cursor")
}

func TestView_IgnoresKeysWhenUnmounted(t *testing.T) {
	v := New(testDiffs(), nil, Options{})
	require.False(t, v.Mounted())

	v, cmd := v.Update(tuitest.AltKeyDown())
	assert.Nil(t, cmd)
	assert.Equal(t, 0, v.Controller().ActiveIndex())

	v.Mount()
	require.True(t, v.Mounted())
	v.Unmount()
	assert.False(t, v.Mounted())

	v, cmd = v.Update(tuitest.AltKeyDown())
	assert.Nil(t, cmd)
	assert.Equal(t, 0, v.Controller().ActiveIndex(), "no navigation after unmount")
}

func TestView_CategoryKeys(t *testing.T) {
	v := newMountedView(t)
	v = press(t, v, tuitest.AltKeyDown())

	v = press(t, v, tuitest.KeyTab())
	assert.Equal(t, "Termination", v.Controller().CategoryFilter())
	assert.Equal(t, 2, v.Controller().Len())
	assert.Equal(t, 0, v.Controller().ActiveIndex(), "filter change resets cursor")

	v = press(t, v, tuitest.KeyTab())
	assert.Equal(t, "Liability", v.Controller().CategoryFilter())

	v = press(t, v, tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift}))
	assert.Equal(t, "Termination", v.Controller().CategoryFilter())

	v = press(t, v, tuitest.KeyPress('a'))
	assert.Equal(t, "all", v.Controller().CategoryFilter())
	assert.Equal(t, 3, v.Controller().Len())
}

func TestView_DigitSelects(t *testing.T) {
	v := newMountedView(t)

	v = press(t, v, tuitest.KeyPress('3'))
	assert.Equal(t, 2, v.Controller().ActiveIndex())

	v = press(t, v, tuitest.KeyPress('9'))
	assert.Equal(t, 2, v.Controller().ActiveIndex(), "clamped to last item")

	v = press(t, v, tuitest.KeyPress('1'))
	assert.Equal(t, 0, v.Controller().ActiveIndex())
}

func TestView_CustomKeys(t *testing.T) {
	v := New(testDiffs(), nil, Options{Keys: NewKeyMap([]string{"n"}, []string{"p"})})
	v.Mount()
	defer v.Unmount()

	v = press(t, v, tuitest.KeyPress('n'))
	assert.Equal(t, 1, v.Controller().ActiveIndex())

	v = press(t, v, tuitest.AltKeyDown())
	assert.Equal(t, 1, v.Controller().ActiveIndex(), "alt+down is not bound")

	v = press(t, v, tuitest.KeyPress('p'))
	assert.Equal(t, 0, v.Controller().ActiveIndex())
}

func TestView_Render(t *testing.T) {
	v := newMountedView(t)

	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, "MSA v1 vs MSA v2")
	assert.Contains(t, out, "1 of 3")
	assert.Contains(t, out, "Category: all")
	assert.Contains(t, out, "critical 1")
	assert.Contains(t, out, "high 1")
	assert.Contains(t, out, "low 1")
	assert.Contains(t, out, "▸")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "1. Termination · 12")
	assert.Contains(t, out, "Die Kündigungsfrist beträgt 3 Monate")
	assert.Contains(t, out, "Die Kündigungsfrist beträgt 6 Monate")
	assert.Contains(t, out, "Impact")
	assert.Contains(t, out, "lock-in")

	v = press(t, v, tuitest.AltKeyDown())
	out = tuitest.StripANSI(v.View())
	assert.Contains(t, out, "2 of 3")
	assert.Contains(t, out, "Liability is unlimited")
}

func TestView_RenderEmpty(t *testing.T) {
	v := New(nil, nil, Options{})
	v.SetSize(80, 24)
	v.Mount()
	defer v.Unmount()

	v = press(t, v, tuitest.AltKeyDown())
	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, "0 of 0")
	assert.Contains(t, out, "no findings")
	assert.Contains(t, out, "No differences in this category.")
}

func TestView_MaxTokensShowsRawText(t *testing.T) {
	v := New(testDiffs(), nil, Options{MaxTokens: 2})
	v.SetSize(100, 40)

	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, "Die Kündigungsfrist beträgt 3 Monate")
}

func TestView_DetailHeightFollowsFilter(t *testing.T) {
	diffs := make([]comparison.Difference, 0, 7)
	for range 6 {
		diffs = append(diffs, comparison.Difference{Category: "Payment", Severity: comparison.SeverityLow})
	}
	diffs = append(diffs, comparison.Difference{Category: "Liability", Severity: comparison.SeverityHigh})

	v := New(diffs, nil, Options{})
	v.SetSize(100, 40)
	v.Mount()
	defer v.Unmount()

	// 40 rows less header, list, divider and help
	assert.Equal(t, 40-headerLines-7-1-helpLines, v.viewport.Height())

	v = press(t, v, tuitest.KeyTab())
	require.Equal(t, "Payment", v.Controller().CategoryFilter())
	assert.Equal(t, 40-headerLines-6-1-helpLines, v.viewport.Height())

	v = press(t, v, tuitest.KeyTab())
	require.Equal(t, "Liability", v.Controller().CategoryFilter())
	assert.Equal(t, 40-headerLines-minListLines-1-helpLines, v.viewport.Height())
}
