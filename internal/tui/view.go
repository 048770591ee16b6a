package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"launcher/internal/desktop"
	"launcher/internal/fuzzy"
)

const (
	// chrome is the number of rows taken by the query line and status bar.
	chrome = 3
	// defaultRows applies before the first WindowSizeMsg.
	defaultRows = 20
	// scoreWidth is the width of the "%4d " score column.
	scoreWidth = 5
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.viewList())
	b.WriteRune('\n')
	b.WriteString(m.viewStatus())

	return b.String()
}

func (m Model) listRows() int {
	rows := m.height - chrome
	if rows < 1 {
		return defaultRows
	}
	return rows
}

func (m Model) viewList() string {
	if len(m.ranked) == 0 {
		if m.cfg.Index.Done() {
			if m.cfg.Index.Len() == 0 {
				return m.styles.errorText.Render("  No applications found in the scanned directories")
			}
			return m.styles.dim.Render("  No matches")
		}
		return m.styles.dim.Render("  Looking for applications...")
	}

	rows := min(len(m.ranked), m.listRows())
	lines := make([]string, 0, rows)
	for i := range rows {
		lines = append(lines, m.viewRow(i, m.ranked[i]))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewRow(i int, r fuzzy.Ranked) string {
	marker := "  "
	if i == 0 {
		marker = m.styles.selected.Render("> ")
	}
	score := m.styles.score.Render(fmt.Sprintf("%4d ", r.Score))

	avail := 0
	if m.width > 0 {
		avail = m.width - 2 - scoreWidth
	}

	e := r.Item.Entry
	name := e.DisplayName()
	if avail > 0 {
		name = runewidth.Truncate(name, avail, "…")
	}
	line := marker + score + m.highlight(name, e, r.Positions, i == 0)

	if e.Has(desktop.FieldComment) && e.Comment != "" {
		rest := avail - runewidth.StringWidth(name) - 2
		if avail == 0 || rest > 3 {
			comment := e.Comment
			if avail > 0 {
				comment = runewidth.Truncate(comment, rest, "…")
			}
			line += m.styles.comment.Render("  " + comment)
		}
	}
	return line
}

// highlight renders name with the runes that matched the query emphasized.
// Positions index the search key, whose prefix is the name when one is set.
func (m Model) highlight(name string, e desktop.Entry, positions []int, selected bool) string {
	base := m.styles.name
	if selected {
		base = m.styles.selected
	}
	if !e.Has(desktop.FieldName) || len(positions) == 0 {
		return base.Render(name)
	}

	hit := make(map[int]bool, len(positions))
	for _, p := range positions {
		hit[p] = true
	}

	var b strings.Builder
	for i, r := range []rune(name) {
		if hit[i] {
			b.WriteString(m.styles.matched.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

func (m Model) viewStatus() string {
	total := m.cfg.Index.Len()
	var status string
	if m.cfg.Index.Done() {
		status = m.styles.success.Render(fmt.Sprintf("%d/%d", len(m.ranked), total))
	} else {
		status = fmt.Sprintf("%s %d/%d", m.spinner.View(), len(m.ranked), total)
	}
	help := m.styles.dim.Render("enter launch · esc quit")
	return m.styles.statusBar.Render(status + "  " + help)
}
