package entity

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// TabID uniquely identifies a tab for its whole lifetime.
// Valid ids are strictly positive; NoTabID marks an absent reference.
type TabID int

// NoTabID is the zero TabID, used for "no parent" and "no selection".
const NoTabID TabID = 0

// String returns the decimal form of the id.
func (id TabID) String() string {
	return strconv.Itoa(int(id))
}

// Tab represents a browser tab inside a tab strip.
// The group identity fields (RootID, GroupToken) are owned by the group index;
// everything else belongs to the strip.
type Tab struct {
	ID TabID
	// RootID is the legacy group key: the id of some member of the tab's group.
	// An ungrouped tab carries its own id.
	RootID TabID
	// GroupToken is the stable group identity. uuid.Nil means no token.
	GroupToken uuid.UUID
	// ParentID is the tab this one was opened from (NoTabID when none).
	ParentID   TabID
	LaunchType LaunchType
	Incognito  bool
	Title      string
	URL        string
	CreatedAt  time.Time
}

// NewTab creates an ungrouped tab whose root id is its own id.
func NewTab(id TabID, launchType LaunchType) *Tab {
	return &Tab{
		ID:         id,
		RootID:     id,
		LaunchType: launchType,
		CreatedAt:  time.Now(),
	}
}

// HasGroupToken reports whether the tab carries a stable group token.
func (t *Tab) HasGroupToken() bool {
	return t.GroupToken != uuid.Nil
}

// DisplayTitle returns the title, falling back to URL or "New Tab".
func (t *Tab) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if t.URL != "" {
		return t.URL
	}
	return "New Tab"
}
