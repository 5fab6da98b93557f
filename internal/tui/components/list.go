package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/nvidela/duet/internal/tui/styles"
)

// Row is one renderable entry in a list column
type Row struct {
	ID          string
	Title       string
	Description string
	Done        bool   // struck through when set
	Pending     bool   // mutation in flight; renders a spinner glyph
	Badge       string // pre-rendered suffix (hearts, expiry)
}

// List is a cursor-driven list with an optional fuzzy title filter.
type List struct {
	rows     []Row
	filtered []int // indices into rows; nil = no filter active
	query    string
	cursor   int
	height   int
}

// NewList creates an empty list
func NewList() List {
	return List{}
}

// SetHeight sets the number of visible rows
func (l *List) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	l.height = h
}

// SetRows replaces the list contents, keeping the cursor on the same item
// when it survives the update.
func (l *List) SetRows(rows []Row) {
	prevID := ""
	if row, ok := l.Selected(); ok {
		prevID = row.ID
	}

	l.rows = rows
	l.applyFilter()

	l.cursor = 0
	if prevID != "" {
		for i, idx := range l.visible() {
			if l.rows[idx].ID == prevID {
				l.cursor = i
				break
			}
		}
	}
	l.clamp()
}

// SetQuery applies a fuzzy filter over row titles, ranked best-first
func (l *List) SetQuery(query string) {
	l.query = strings.TrimSpace(query)
	l.applyFilter()
	l.cursor = 0
}

// Query returns the active filter query
func (l *List) Query() string {
	return l.query
}

func (l *List) applyFilter() {
	if l.query == "" {
		l.filtered = nil
		return
	}
	titles := make([]string, len(l.rows))
	for i, row := range l.rows {
		titles[i] = row.Title
	}
	matches := fuzzy.Find(l.query, titles)
	l.filtered = make([]int, len(matches))
	for i, m := range matches {
		l.filtered[i] = m.Index
	}
}

func (l *List) visible() []int {
	if l.filtered != nil {
		return l.filtered
	}
	all := make([]int, len(l.rows))
	for i := range l.rows {
		all[i] = i
	}
	return all
}

// Len returns the number of visible rows
func (l *List) Len() int {
	if l.filtered != nil {
		return len(l.filtered)
	}
	return len(l.rows)
}

// Selected returns the row under the cursor
func (l *List) Selected() (Row, bool) {
	vis := l.visible()
	if l.cursor < 0 || l.cursor >= len(vis) {
		return Row{}, false
	}
	return l.rows[vis[l.cursor]], true
}

// MoveUp moves the cursor up one row
func (l *List) MoveUp() {
	l.cursor--
	l.clamp()
}

// MoveDown moves the cursor down one row
func (l *List) MoveDown() {
	l.cursor++
	l.clamp()
}

// GotoTop moves the cursor to the first row
func (l *List) GotoTop() {
	l.cursor = 0
}

// GotoBottom moves the cursor to the last row
func (l *List) GotoBottom() {
	l.cursor = l.Len() - 1
	l.clamp()
}

func (l *List) clamp() {
	if l.cursor >= l.Len() {
		l.cursor = l.Len() - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// View renders the visible window of rows. spinnerView is the current
// frame of the shared spinner, drawn next to pending rows.
func (l *List) View(width int, spinnerView string) string {
	vis := l.visible()
	if len(vis) == 0 {
		return styles.DimStyle.Render("  (empty)")
	}

	height := l.height
	if height == 0 {
		height = len(vis)
	}

	// Scroll window around cursor
	start := 0
	if l.cursor >= height {
		start = l.cursor - height + 1
	}
	end := start + height
	if end > len(vis) {
		end = len(vis)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		row := l.rows[vis[i]]

		marker := styles.PendingDot
		if row.Done {
			marker = styles.DoneCheck
		}
		if row.Pending {
			marker = spinnerView
		}

		title := row.Title
		if row.Done {
			title = styles.StrikeStyle.Render(title)
		}

		line := fmt.Sprintf("%s %s", marker, title)
		if row.Badge != "" {
			line += " " + row.Badge
		}
		if row.Description != "" {
			line += " " + styles.DimStyle.Render(row.Description)
		}

		if i == l.cursor {
			line = styles.SelectedStyle.Render(lipgloss.NewStyle().MaxWidth(width - 2).Render(line))
		} else {
			line = "  " + lipgloss.NewStyle().MaxWidth(width - 2).Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
