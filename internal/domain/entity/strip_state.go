package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StripStateVersion is the current schema version for persisted strips.
const StripStateVersion = 1

// StripID names a persisted tab strip.
type StripID string

// ErrInvalidStrip is returned when a strip snapshot fails validation.
var ErrInvalidStrip = errors.New("invalid strip state")

// StripState is a complete snapshot of a tab strip, including group identity.
type StripState struct {
	Version        int
	StripID        StripID
	IdentityScheme string
	Incognito      bool
	Tabs           []TabSnapshot
	ActiveTabID    TabID
	SavedAt        time.Time
}

// TabSnapshot captures the persisted state of a single tab.
type TabSnapshot struct {
	ID         TabID
	RootID     TabID
	GroupToken uuid.UUID
	ParentID   TabID
	LaunchType LaunchType
	Title      string
	URL        string
	CreatedAt  time.Time
}

// StripInfo summarises a stored strip for listings.
type StripInfo struct {
	ID             StripID
	IdentityScheme string
	TabCount       int
	UpdatedAt      time.Time
}

// SnapshotFromTabList captures the live strip in order.
func SnapshotFromTabList(stripID StripID, scheme string, tabs *TabList) *StripState {
	state := &StripState{
		Version:        StripStateVersion,
		StripID:        stripID,
		IdentityScheme: scheme,
		Tabs:           []TabSnapshot{},
		SavedAt:        time.Now(),
	}
	if tabs == nil {
		return state
	}

	state.Incognito = tabs.IsIncognito()
	state.ActiveTabID = tabs.ActiveTabID()
	for _, tab := range tabs.Tabs() {
		state.Tabs = append(state.Tabs, TabSnapshot{
			ID:         tab.ID,
			RootID:     tab.RootID,
			GroupToken: tab.GroupToken,
			ParentID:   tab.ParentID,
			LaunchType: tab.LaunchType,
			Title:      tab.Title,
			URL:        tab.URL,
			CreatedAt:  tab.CreatedAt,
		})
	}
	return state
}

// Validate checks ids are positive and unique.
func (s *StripState) Validate() error {
	if s == nil || s.StripID == "" {
		return ErrInvalidStrip
	}
	seen := make(map[TabID]struct{}, len(s.Tabs))
	for _, snap := range s.Tabs {
		if snap.ID <= NoTabID {
			return ErrInvalidStrip
		}
		if _, dup := seen[snap.ID]; dup {
			return ErrInvalidStrip
		}
		seen[snap.ID] = struct{}{}
	}
	return nil
}

// RestoredTabs materialises the snapshot's tabs in strip order.
// A missing root id falls back to the tab's own id.
func (s *StripState) RestoredTabs() []*Tab {
	if s == nil {
		return nil
	}
	tabs := make([]*Tab, 0, len(s.Tabs))
	for _, snap := range s.Tabs {
		rootID := snap.RootID
		if rootID == NoTabID {
			rootID = snap.ID
		}
		createdAt := snap.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		tabs = append(tabs, &Tab{
			ID:         snap.ID,
			RootID:     rootID,
			GroupToken: snap.GroupToken,
			ParentID:   snap.ParentID,
			LaunchType: snap.LaunchType,
			Incognito:  s.Incognito,
			Title:      snap.Title,
			URL:        snap.URL,
			CreatedAt:  createdAt,
		})
	}
	return tabs
}
