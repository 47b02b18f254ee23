package usecase_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/bnema/tabgroups/internal/application/usecase"
	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/domain/tabgroup"
	"github.com/bnema/tabgroups/internal/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func sequentialTokens() func() uuid.UUID {
	n := 0
	return func() uuid.UUID {
		n++
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(strconv.Itoa(n)))
	}
}

// newSession builds an in-memory strip of n link tabs with ids 1..n.
func newSession(t *testing.T, scheme tabgroup.IdentityScheme, n int) *usecase.StripSession {
	t.Helper()
	tabs := entity.NewTabList(false)
	for i := 0; i < n; i++ {
		tabs.AddTab(entity.NewTab(tabs.NextID(), entity.FromLink), -1)
	}
	s := usecase.NewStripSession("test", tabs, tabgroup.Config{
		Scheme:   scheme,
		NewToken: sequentialTokens(),
	})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func stripIDs(s *usecase.StripSession) []entity.TabID {
	out := make([]entity.TabID, 0, s.Tabs.Count())
	for _, tab := range s.Tabs.Tabs() {
		out = append(out, tab.ID)
	}
	return out
}

func rootIDs(s *usecase.StripSession) []entity.TabID {
	out := make([]entity.TabID, 0, s.Tabs.Count())
	for _, tab := range s.Tabs.Tabs() {
		out = append(out, tab.RootID)
	}
	return out
}

// assertConsistent checks contiguity and that every root id names a member.
func assertConsistent(t *testing.T, s *usecase.StripSession) {
	t.Helper()
	assert.True(t, s.Groups.IsOrderValid(), "groups not contiguous: %v", rootIDs(s))
	for _, info := range s.Groups.Groups() {
		assert.Contains(t, info.TabIDs, info.RootID, "root %d not a member", info.RootID)
	}
}
