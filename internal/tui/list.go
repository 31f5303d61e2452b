package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/ventures/internal/portfolio"
)

// emptyState is shown when no venture survives the filters.
const emptyState = "No ventures found matching your criteria"

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func chip(key, label string, active bool) string {
	style := chipInactiveStyle
	if active {
		style = chipActiveStyle
	}
	return style.Render(key + " " + label)
}

// wrapChips lays chips out on as many rows as width needs.
func wrapChips(chips []string, width int) string {
	var rows []string
	var row string
	for _, c := range chips {
		candidate := c
		if row != "" {
			candidate = row + " " + c
		}
		if width > 0 && lipgloss.Width(candidate) > width && row != "" {
			rows = append(rows, row)
			row = c
			continue
		}
		row = candidate
	}
	if row != "" {
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func renderFacetBar(q *portfolio.QueryState, width int) string {
	avail := width - lipgloss.Width(facetLabelStyle.Render(""))

	cats := make([]string, len(portfolio.Categories))
	for i, c := range portfolio.Categories {
		cats[i] = chip(categoryKeys[i], c.Label(), q.CategorySelected(c))
	}
	stages := make([]string, len(portfolio.Stages))
	for i, s := range portfolio.Stages {
		stages[i] = chip(stageKeys[i], s.Label(), q.StageSelected(s))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, facetLabelStyle.Render("Category"), wrapChips(cats, avail)),
		lipgloss.JoinHorizontal(lipgloss.Top, facetLabelStyle.Render("Stage"), wrapChips(stages, avail)),
		lipgloss.JoinHorizontal(lipgloss.Top, facetLabelStyle.Render("Sort (s)"), chipActiveStyle.Render(q.Sort().Label())),
	)
}

func renderListItem(v portfolio.Venture, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	name := v.Name
	if v.Featured {
		name += " *"
	}
	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(name, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(name, width-4))
	}

	meta := "  " + itemMetaStyle.Render(v.Category.Label()) +
		itemDimStyle.Render(" · "+v.Stage.Label()+" · "+v.Founded)
	return title + "\n" + meta
}

func renderList(ventures []portfolio.Venture, cursor, height, width int) string {
	if len(ventures) == 0 {
		return "\n  " + emptyStyle.Render(emptyState)
	}

	// two lines per item plus a blank line
	itemHeight := 3
	visible := max(1, height/itemHeight)

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := min(start+visible, len(ventures))

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(ventures[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func renderDetail(v portfolio.Venture, width int) string {
	var b strings.Builder
	b.WriteString(itemTitleStyle.Render(v.Name) + "\n")
	b.WriteString(itemDimStyle.Render(v.Tagline) + "\n\n")
	b.WriteString(v.Description + "\n\n")
	fmt.Fprintf(&b, "%s · %s · founded %s\n", v.Category.Label(), v.Stage.Label(), v.Founded)
	if len(v.Technologies) > 0 {
		b.WriteString(itemMetaStyle.Render(strings.Join(v.Technologies, ", ")) + "\n")
	}
	if m := v.Metrics; !m.Empty() {
		for _, kv := range [][2]string{{"Revenue", m.Revenue}, {"Users", m.Users}, {"Growth", m.Growth}} {
			if kv[1] != "" {
				fmt.Fprintf(&b, "%s: %s\n", kv[0], kv[1])
			}
		}
	}
	return detailPaneStyle.Width(max(20, width-2)).Render(strings.TrimRight(b.String(), "\n"))
}

func countLine(v portfolio.View) string {
	line := fmt.Sprintf("Showing %d of %d ventures", v.FilteredCount, v.TotalCount)
	if v.HasActiveFilters {
		line += fmt.Sprintf("  (%d active, c to clear)", v.ActiveFilterCount)
	}
	return countStyle.Render(line)
}
