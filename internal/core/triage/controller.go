// Package triage maintains a filtered, navigable view over the differences of
// a single comparison session.
package triage

import (
	"slices"
	"sync"

	"github.com/colonyops/redline/internal/core/comparison"
)

// AllCategories is the filter value that matches every difference.
const AllCategories = "all"

// State is a point-in-time copy of the controller state.
type State struct {
	CategoryFilter string
	ActiveIndex    int
	Filtered       []comparison.Difference
	SeverityCounts map[comparison.Severity]int
	Total          int
}

// Active returns the difference under the cursor, if any.
func (s State) Active() (comparison.Difference, bool) {
	if len(s.Filtered) == 0 {
		return comparison.Difference{}, false
	}
	return s.Filtered[s.ActiveIndex], true
}

// Controller owns the category filter, the cursor, and the severity aggregates.
// It contains pure data logic with no Bubble Tea dependencies. All methods are
// safe for concurrent use; each call fully updates the state before returning.
type Controller struct {
	mu         sync.Mutex
	items      []comparison.Difference
	categories []string
	filter     string
	filteredAt []int // indices into items matching filter
	cursor     int
	counts     map[comparison.Severity]int
}

// NewController creates a controller over items with the filter set to all.
func NewController(items []comparison.Difference) *Controller {
	c := &Controller{
		filter:     AllCategories,
		filteredAt: make([]int, 0),
	}
	c.SetItems(items)
	return c
}

// SetItems replaces the session list, e.g. when a new comparison is loaded.
// The cursor resets to 0 when the filtered view changes size and is clamped
// otherwise.
func (c *Controller) SetItems(items []comparison.Difference) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = slices.Clone(items)
	c.categories = comparison.Categories(c.items)

	prev := len(c.filteredAt)
	c.applyFilter()
	if len(c.filteredAt) != prev {
		c.cursor = 0
	}
	c.clampCursor()
}

// SetCategoryFilter changes the filter and resets the cursor. An empty
// category is treated as AllCategories.
func (c *Controller) SetCategoryFilter(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setFilterLocked(category)
}

func (c *Controller) setFilterLocked(category string) {
	if category == "" {
		category = AllCategories
	}
	c.filter = category
	c.cursor = 0
	c.applyFilter()
}

// CycleCategory steps the filter through all followed by each category in
// first-seen order, wrapping at both ends.
func (c *Controller) CycleCategory(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	options := append([]string{AllCategories}, c.categories...)
	current := slices.Index(options, c.filter)
	if current < 0 {
		current = 0
	}
	next := ((current+delta)%len(options) + len(options)) % len(options)
	c.setFilterLocked(options[next])
}

// CategoryFilter returns the active filter.
func (c *Controller) CategoryFilter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Categories returns the distinct categories of the session list.
func (c *Controller) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.categories)
}

// Next advances the cursor, wrapping from the last item to the first.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n := len(c.filteredAt); n > 0 {
		c.cursor = (c.cursor + 1) % n
	}
}

// Previous retreats the cursor, wrapping from the first item to the last.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n := len(c.filteredAt); n > 0 {
		c.cursor = (c.cursor - 1 + n) % n
	}
}

// Select moves the cursor to i, clamped to the filtered view.
func (c *Controller) Select(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cursor = i
	c.clampCursor()
}

// ActiveIndex returns the cursor position within the filtered view.
func (c *Controller) ActiveIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Active returns the difference under the cursor, or false when the filtered
// view is empty.
func (c *Controller) Active() (comparison.Difference, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.filteredAt) == 0 {
		return comparison.Difference{}, false
	}
	return c.items[c.filteredAt[c.cursor]], true
}

// Filtered returns the differences matching the current filter.
func (c *Controller) Filtered() []comparison.Difference {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filteredLocked()
}

// Len returns the size of the filtered view.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.filteredAt)
}

// Total returns the size of the session list.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// SeverityCounts returns per-severity counts over the filtered view. Missing
// keys mean zero.
func (c *Controller) SeverityCounts() map[comparison.Severity]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneCounts(c.counts)
}

// Snapshot returns a consistent copy of the controller state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	return State{
		CategoryFilter: c.filter,
		ActiveIndex:    c.cursor,
		Filtered:       c.filteredLocked(),
		SeverityCounts: cloneCounts(c.counts),
		Total:          len(c.items),
	}
}

func (c *Controller) filteredLocked() []comparison.Difference {
	out := make([]comparison.Difference, len(c.filteredAt))
	for i, idx := range c.filteredAt {
		out[i] = c.items[idx]
	}
	return out
}

func (c *Controller) applyFilter() {
	c.filteredAt = c.filteredAt[:0]
	for i := range c.items {
		if c.filter == AllCategories || c.items[i].Category == c.filter {
			c.filteredAt = append(c.filteredAt, i)
		}
	}
	c.counts = comparison.SeverityCounts(c.filteredLocked())
}

func (c *Controller) clampCursor() {
	switch {
	case len(c.filteredAt) == 0, c.cursor < 0:
		c.cursor = 0
	case c.cursor >= len(c.filteredAt):
		c.cursor = len(c.filteredAt) - 1
	}
}

func cloneCounts(m map[comparison.Severity]int) map[comparison.Severity]int {
	out := make(map[comparison.Severity]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
