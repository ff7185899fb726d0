package triage

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/redline/internal/core/align"
	"github.com/colonyops/redline/internal/core/comparison"
	"github.com/colonyops/redline/internal/core/styles"
	coretriage "github.com/colonyops/redline/internal/core/triage"
	"github.com/colonyops/redline/internal/render"
)

const (
	headerLines  = 3
	helpLines    = 1
	minListLines = 3
	maxListLines = 8
	minWidth     = 40
)

// Options configures a triage View.
type Options struct {
	Title         string
	MaxTokens     int
	HideUnchanged bool
	Keys          KeyMap
}

// View is the Bubble Tea sub-model for triaging a comparison report.
type View struct {
	ctrl     *coretriage.Controller
	sub      *coretriage.Subscription
	memo     *align.Memo
	keys     KeyMap
	viewport viewport.Model
	opts     Options
	width    int
	height   int
}

// New creates a triage View over the given differences.
func New(diffs []comparison.Difference, memo *align.Memo, opts Options) View {
	if memo == nil {
		memo = align.NewMemo(align.DefaultMemoSize)
	}
	if len(opts.Keys.Next.Keys()) == 0 {
		opts.Keys = NewKeyMap(nil, nil)
	}
	v := View{
		ctrl:     coretriage.NewController(diffs),
		memo:     memo,
		keys:     opts.Keys,
		opts:     opts,
		viewport: viewport.New(viewport.WithWidth(minWidth), viewport.WithHeight(minListLines)),
	}
	v.refreshDetail()
	return v
}

// Controller exposes the underlying triage controller.
func (v View) Controller() *coretriage.Controller {
	return v.ctrl
}

// Mount subscribes the view to navigation events. Keys are ignored until the
// view is mounted.
func (v *View) Mount() {
	if v.sub != nil && !v.sub.Closed() {
		return
	}
	v.sub = v.ctrl.Subscribe()
	log.Debug().Msg("triage view mounted")
}

// Unmount releases the navigation subscription.
func (v *View) Unmount() {
	if v.sub == nil {
		return
	}
	v.sub.Close()
	v.sub = nil
	log.Debug().Msg("triage view unmounted")
}

// Mounted reports whether the view currently receives navigation events.
func (v View) Mounted() bool {
	return v.sub != nil && !v.sub.Closed()
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.SetWidth(max(v.contentWidth(), 1))
	v.refreshDetail()
}

// Init returns the initial commands for the triage view.
func (v View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the triage view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		return v.handleKey(msg)
	}
	return v, nil
}

func (v View) handleKey(msg tea.KeyPressMsg) (View, tea.Cmd) {
	if !v.Mounted() {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Next, v.keys.Down):
		if !v.navigate(coretriage.NavNext) {
			return v, nil
		}
	case key.Matches(msg, v.keys.Previous, v.keys.Up):
		if !v.navigate(coretriage.NavPrevious) {
			return v, nil
		}
	case key.Matches(msg, v.keys.NextCategory):
		v.ctrl.CycleCategory(1)
	case key.Matches(msg, v.keys.PrevCategory):
		v.ctrl.CycleCategory(-1)
	case key.Matches(msg, v.keys.AllCategory):
		v.ctrl.SetCategoryFilter(coretriage.AllCategories)
	case key.Matches(msg, v.keys.Select):
		v.ctrl.Select(int(msg.String()[0]-'1'))
	case key.Matches(msg, v.keys.ScrollDown):
		v.viewport.HalfPageDown()
		return v, nil
	case key.Matches(msg, v.keys.ScrollUp):
		v.viewport.HalfPageUp()
		return v, nil
	default:
		return v, nil
	}

	v.refreshDetail()
	return v, nil
}

// navigate delivers nav through the subscription and waits for it to apply,
// so navigation and filter keys take effect in keypress order.
func (v *View) navigate(nav coretriage.Nav) bool {
	state, ok := v.sub.Send(nav)
	if !ok {
		log.Debug().Stringer("nav", nav).Msg("navigation dropped, subscription closed")
		return false
	}
	log.Debug().Stringer("nav", nav).Int("active", state.ActiveIndex).Msg("navigation applied")
	return true
}

// refreshDetail renders the active item into the detail pane.
func (v *View) refreshDetail() {
	v.viewport.SetHeight(max(v.detailLines(), 1))

	d, ok := v.ctrl.Active()
	if !ok {
		v.viewport.SetContent(styles.TextMutedStyle.Render("No differences in this category."))
		return
	}
	v.viewport.SetContent(v.renderDetail(d))
	v.viewport.GotoTop()
}

// View renders the triage view.
func (v View) View() string {
	state := v.ctrl.Snapshot()

	sections := []string{
		v.renderHeader(state),
		v.renderList(state),
		styles.DividerStyle.Render(strings.Repeat("─", max(v.contentWidth(), 1))),
		v.viewport.View(),
		v.renderHelp(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v View) renderHeader(state coretriage.State) string {
	title := v.opts.Title
	if title == "" {
		title = "Contract comparison"
	}

	position := "0 of 0"
	if len(state.Filtered) > 0 {
		position = fmt.Sprintf("%d of %d", state.ActiveIndex+1, len(state.Filtered))
	}

	line1 := styles.TriageTitleStyle.Render(title) + "  " + styles.TextMutedStyle.Render(position)
	line2 := styles.TriageLabelStyle.Render("Category: ") +
		styles.TriageFilterStyle.Render(state.CategoryFilter) +
		styles.TextMutedStyle.Render(fmt.Sprintf("  (%d total)", state.Total))
	line3 := render.SeverityCounts(state.SeverityCounts)

	return strings.Join([]string{line1, line2, line3}, "\n")
}

func (v View) renderList(state coretriage.State) string {
	if len(state.Filtered) == 0 {
		return styles.TextMutedStyle.Render("  (empty)")
	}

	rows := v.listLines()
	start := 0
	if state.ActiveIndex >= rows {
		start = state.ActiveIndex - rows + 1
	}
	end := min(start+rows, len(state.Filtered))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		d := state.Filtered[i]
		label := fmt.Sprintf("%d. %s", i+1, d.Category)
		if d.Section != "" {
			label += " · " + d.Section
		}
		row := render.SeverityBadge(d.Severity) + " " + label
		if i == state.ActiveIndex {
			lines = append(lines, styles.TriageSelectedStyle.Render("▸ ")+row)
		} else {
			lines = append(lines, "  "+row)
		}
	}
	return strings.Join(lines, "\n")
}

func (v View) renderDetail(d comparison.Difference) string {
	width := v.contentWidth()
	var b strings.Builder

	b.WriteString(render.SeverityBadge(d.Severity))
	b.WriteString(" ")
	b.WriteString(styles.TriageSectionStyle.Render(d.Category))
	if d.Section != "" {
		b.WriteString(styles.TextMutedStyle.Render("  §" + d.Section))
	}
	b.WriteString("\n\n")

	left, right := v.alignTexts(d)
	pane := lipgloss.NewStyle().Width(width)
	b.WriteString(styles.TriageLabelStyle.Render("Contract 1"))
	b.WriteString("\n")
	b.WriteString(pane.Render(left))
	b.WriteString("\n\n")
	b.WriteString(styles.TriageLabelStyle.Render("Contract 2"))
	b.WriteString("\n")
	b.WriteString(pane.Render(right))

	if impact := render.Markdown(d.Impact, width); impact != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.TriageLabelStyle.Render("Impact"))
		b.WriteString("\n")
		b.WriteString(impact)
	}
	if rec := render.Markdown(d.Recommendation, width); rec != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.TriageLabelStyle.Render("Recommendation"))
		b.WriteString("\n")
		b.WriteString(rec)
	}

	return b.String()
}

// alignTexts renders both clause texts with word highlighting. Texts over the
// token limit are shown verbatim.
func (v View) alignTexts(d comparison.Difference) (string, string) {
	for _, text := range []string{d.Contract1, d.Contract2} {
		if err := align.CheckLimit(text, v.opts.MaxTokens); err != nil {
			log.Debug().Err(err).Str("category", d.Category).Msg("skipping word alignment")
			return d.Contract1, d.Contract2
		}
	}

	res := v.memo.Align(d.Contract1, d.Contract2)
	return render.Segments(res.Left, v.opts.HideUnchanged), render.Segments(res.Right, v.opts.HideUnchanged)
}

func (v View) renderHelp() string {
	parts := make([]string, 0, len(v.keys.ShortHelp())+1)
	for _, b := range v.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "q quit")
	return styles.TriageHelpStyle.Render(strings.Join(parts, " • "))
}

func (v View) contentWidth() int {
	return max(v.width-2, minWidth)
}

func (v View) listLines() int {
	return max(min(v.ctrl.Len(), maxListLines), minListLines)
}

func (v View) detailLines() int {
	return max(v.height-headerLines-v.listLines()-1-helpLines, minListLines)
}
