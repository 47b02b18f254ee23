package entity

import (
	"fmt"
	"strings"
)

// LaunchType describes how a tab was created.
type LaunchType int

const (
	FromLink LaunchType = iota
	FromExternalApp
	FromChromeUI
	FromRestore
	FromStartup
	FromLongpressForeground
	FromLongpressBackground
	FromTabGroupUI
	FromLongpressForegroundInGroup
	FromLongpressBackgroundInGroup
	FromReparenting
)

var launchTypeNames = map[LaunchType]string{
	FromLink:                       "link",
	FromExternalApp:                "external_app",
	FromChromeUI:                   "chrome_ui",
	FromRestore:                    "restore",
	FromStartup:                    "startup",
	FromLongpressForeground:        "longpress_foreground",
	FromLongpressBackground:        "longpress_background",
	FromTabGroupUI:                 "tab_group_ui",
	FromLongpressForegroundInGroup: "longpress_foreground_in_group",
	FromLongpressBackgroundInGroup: "longpress_background_in_group",
	FromReparenting:                "reparenting",
}

func (l LaunchType) String() string {
	if name, ok := launchTypeNames[l]; ok {
		return name
	}
	return fmt.Sprintf("launch_type(%d)", int(l))
}

// ParseLaunchType converts a name produced by String back to a LaunchType.
func ParseLaunchType(s string) (LaunchType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, name := range launchTypeNames {
		if name == s {
			return l, nil
		}
	}
	return FromLink, fmt.Errorf("unknown launch type %q", s)
}

// OpenedInGroup reports whether the launch always targets the parent's group.
func (l LaunchType) OpenedInGroup() bool {
	switch l {
	case FromTabGroupUI, FromLongpressForegroundInGroup, FromLongpressBackgroundInGroup:
		return true
	}
	return false
}
