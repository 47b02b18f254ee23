package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bnema/tabgroups/internal/domain/entity"
)

// StripRow is one tab line of a rendered strip.
type StripRow struct {
	ID     entity.TabID
	Title  string
	Active bool
	Cursor bool
}

// StripSegment is a run of adjacent tabs sharing a group, or a single
// ungrouped tab.
type StripSegment struct {
	Grouped bool
	Label   string
	Color   entity.GroupColor
	Rows    []StripRow
}

// RenderStrip renders segments top to bottom. Group members hang under a
// coloured header. Titles are truncated to width when width > 0.
func (t *Theme) RenderStrip(segments []StripSegment, showIDs bool, width int) string {
	if len(segments) == 0 {
		return t.Subtle.Render("  (empty strip)")
	}

	var b strings.Builder
	for _, seg := range segments {
		gutter := "  "
		if seg.Grouped {
			rail := lipgloss.NewStyle().Foreground(t.railColor(seg.Color))
			b.WriteString(" ")
			b.WriteString(t.GroupBadge(seg.Label, seg.Color))
			b.WriteString(t.Subtle.Render(fmt.Sprintf(" %d tabs", len(seg.Rows))))
			b.WriteString("\n")
			gutter = " " + rail.Render("│")
		}
		for _, row := range seg.Rows {
			b.WriteString(gutter)
			b.WriteString(t.renderRow(row, showIDs, width))
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (t *Theme) renderRow(row StripRow, showIDs bool, width int) string {
	marker := " "
	if row.Cursor {
		marker = "›"
	}

	title := row.Title
	if showIDs {
		title = fmt.Sprintf("%3d  %s", row.ID, title)
	}
	if width > 8 {
		title = ansi.Truncate(title, width-8, "…")
	}

	style := t.InactiveTab
	switch {
	case row.Active:
		style = t.ActiveTab
	case row.Cursor:
		style = t.CursorTab
	}
	return t.Highlight.Render(marker) + " " + style.Render(title)
}

func (t *Theme) railColor(c entity.GroupColor) lipgloss.Color {
	if c == entity.NoGroupColor {
		return t.Muted
	}
	return lipgloss.Color(c.Hex())
}
