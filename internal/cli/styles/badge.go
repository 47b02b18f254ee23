package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tabgroups/internal/domain/entity"
)

// GroupBadge renders a group label in the group's colour. Groups without a
// colour use the muted badge.
func (t *Theme) GroupBadge(label string, color entity.GroupColor) string {
	if color == entity.NoGroupColor {
		return t.BadgeMuted.Render(label)
	}
	return lipgloss.NewStyle().
		Foreground(t.Background).
		Background(lipgloss.Color(color.Hex())).
		Padding(0, 1).
		Render(label)
}

// SchemeBadge renders the identity scheme of a strip.
func (t *Theme) SchemeBadge(scheme string) string {
	if scheme == "legacy" {
		return t.BadgeMuted.Render(scheme)
	}
	return t.Badge.Render(scheme)
}

// TimeBadge renders a relative time badge.
func (t *Theme) TimeBadge(tm time.Time) string {
	return t.BadgeMuted.Render(RelativeTime(tm))
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	diff := time.Since(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/(24*7)))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(diff.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(diff.Hours()/(24*365)))
	}
}
