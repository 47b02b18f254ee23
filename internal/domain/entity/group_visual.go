package entity

import (
	"fmt"
	"strings"
)

// GroupColor is the colour assigned to a tab group. The zero value is
// NoGroupColor.
type GroupColor int

const (
	// NoGroupColor marks a group without an assigned colour.
	NoGroupColor GroupColor = iota
	ColorGrey
	ColorBlue
	ColorRed
	ColorYellow
	ColorGreen
	ColorPink
	ColorPurple
	ColorCyan
	ColorOrange
)

var groupColorNames = []string{"grey", "blue", "red", "yellow", "green", "pink", "purple", "cyan", "orange"}

func (c GroupColor) String() string {
	if c > NoGroupColor && int(c) <= len(groupColorNames) {
		return groupColorNames[c-1]
	}
	return "none"
}

// Hex returns a display colour for terminal rendering.
func (c GroupColor) Hex() string {
	switch c {
	case ColorGrey:
		return "#9aa0a6"
	case ColorBlue:
		return "#8ab4f8"
	case ColorRed:
		return "#f28b82"
	case ColorYellow:
		return "#fdd663"
	case ColorGreen:
		return "#81c995"
	case ColorPink:
		return "#ff8bcb"
	case ColorPurple:
		return "#c58af9"
	case ColorCyan:
		return "#78d9ec"
	case ColorOrange:
		return "#fcad70"
	}
	return "#909090"
}

// ParseGroupColor converts a colour name to a GroupColor.
func ParseGroupColor(s string) (GroupColor, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return NoGroupColor, nil
	}
	for i, name := range groupColorNames {
		if name == s {
			return GroupColor(i + 1), nil
		}
	}
	return NoGroupColor, fmt.Errorf("unknown group color %q (valid: %s)", s, strings.Join(groupColorNames, ", "))
}

// GroupVisual holds the user-facing decoration of a group, keyed by root id.
type GroupVisual struct {
	Title string
	Color GroupColor
}

// IsZero reports whether the visual carries neither title nor colour.
func (v GroupVisual) IsZero() bool {
	return v.Title == "" && v.Color == NoGroupColor
}
