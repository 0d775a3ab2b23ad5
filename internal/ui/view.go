package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/chess10kp/whereami/internal/search"
)

const minLabelWidth = 12

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Search.Width(max(m.width-2, 1)).Render(m.input.View()))
	b.WriteString("\n")

	rows := m.visibleRows()
	list := m.engine.List()
	selected, _ := m.engine.Cursor().Index()

	written := 0
	switch {
	case !m.engine.Loaded():
		b.WriteString(m.styles.Dim.Render("Loading windows..."))
		b.WriteString("\n")
		written++
	case list.Len() == 0:
		b.WriteString(m.styles.Dim.Render("No matching windows"))
		b.WriteString("\n")
		written++
	default:
		labelWidth := m.labelWidth(list)
		for i := m.offset; i < list.Len() && written < rows; i++ {
			b.WriteString(m.renderRow(list[i], i == selected, labelWidth))
			b.WriteString("\n")
			written++
		}
	}
	for ; written < rows; written++ {
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine() string {
	if status := m.engine.Status(); status != "" {
		return m.styles.Error.Render(status)
	}
	line := fmt.Sprintf("%d/%d windows", m.engine.List().Len(), m.engine.Snapshot().Len())
	if m.engine.Stale() {
		line += " (stale)"
	}
	return m.styles.Dim.Render(line)
}

func (m Model) renderRow(entry search.Entry, selected bool, labelWidth int) string {
	base, match := m.styles.Text, m.styles.Match
	if selected {
		base, match = m.styles.Selected, m.styles.SelectedMatch
	}

	label := highlight(entry.Label, entry.MatchedIndexes, base, match)
	label = base.Width(labelWidth).MaxWidth(labelWidth).MaxHeight(1).Render(label)

	workspace := m.styles.Workspace.Render("@Workspace: " + entry.Client.WorkspaceLabel())
	status := entry.Client.Status()

	marker := "  "
	if selected {
		marker = base.Render("> ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		marker,
		label,
		"  ",
		workspace,
		"  ",
		m.styles.Status(status).Render(status),
	)
}

// labelWidth fits the longest label, leaving room for the other columns.
func (m Model) labelWidth(list search.DisplayList) int {
	longest := 0
	for _, entry := range list {
		if w := lipgloss.Width(entry.Label); w > longest {
			longest = w
		}
	}
	limit := m.width - len("> ") - len("  @Workspace: Special Workspace  Fullscreen")
	if limit < minLabelWidth {
		limit = minLabelWidth
	}
	return min(longest, limit)
}

// highlight renders label with the bytes at matched styled as matches.
// matched holds byte offsets of rune starts.
func highlight(label string, matched []int, base, match lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(label)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	start, inMatch := 0, hit[0]
	for i := 0; i < len(label); {
		_, size := utf8.DecodeRuneInString(label[i:])
		if hit[i] != inMatch {
			b.WriteString(styleFor(inMatch, base, match).Render(label[start:i]))
			start, inMatch = i, hit[i]
		}
		i += size
	}
	b.WriteString(styleFor(inMatch, base, match).Render(label[start:]))
	return b.String()
}

func styleFor(isMatch bool, base, match lipgloss.Style) lipgloss.Style {
	if isMatch {
		return match
	}
	return base
}

func (m Model) visibleRows() int {
	return max(m.height-headerLines-footerLines, 1)
}

// rowAt maps a terminal line to a display list index.
func (m Model) rowAt(y int) (int, bool) {
	line := y - headerLines
	if line < 0 || line >= m.visibleRows() {
		return 0, false
	}
	idx := m.offset + line
	if idx >= m.engine.List().Len() {
		return 0, false
	}
	return idx, true
}

// syncOffset scrolls so the cursor stays visible.
func (m *Model) syncOffset() {
	idx, ok := m.engine.Cursor().Index()
	if !ok {
		m.offset = 0
		return
	}
	rows := m.visibleRows()
	switch {
	case idx < m.offset:
		m.offset = idx
	case idx >= m.offset+rows:
		m.offset = idx - rows + 1
	}
	if last := m.engine.List().Len() - rows; m.offset > last {
		m.offset = max(last, 0)
	}
}
