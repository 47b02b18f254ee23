package tabgroup

import (
	"fmt"
	"strings"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/google/uuid"
)

// IdentityScheme selects how group membership is decided.
type IdentityScheme int

const (
	// IdentityLegacy keys groups by root id only. Singletons are never groups.
	IdentityLegacy IdentityScheme = iota
	// IdentityStable additionally tags every grouped tab with a shared token,
	// which allows groups of a single tab.
	IdentityStable
)

func (s IdentityScheme) String() string {
	switch s {
	case IdentityLegacy:
		return "legacy"
	case IdentityStable:
		return "stable"
	}
	return fmt.Sprintf("IdentityScheme(%d)", int(s))
}

// ParseIdentityScheme parses "legacy" or "stable".
func ParseIdentityScheme(s string) (IdentityScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legacy":
		return IdentityLegacy, nil
	case "stable", "":
		return IdentityStable, nil
	}
	return IdentityLegacy, fmt.Errorf("unknown identity scheme %q (valid: legacy, stable)", s)
}

// GroupIdentity is the identity a tab reports under the active scheme.
type GroupIdentity struct {
	Scheme IdentityScheme
	RootID entity.TabID
	Token  uuid.UUID
}

// InGroup reports whether the identity denotes a real tab group.
func (g GroupIdentity) InGroup(groupSize int) bool {
	if g.Scheme == IdentityStable {
		return g.Token != uuid.Nil
	}
	return groupSize > 1
}

// MigrationResult summarises a ConvertIdentity pass.
type MigrationResult struct {
	From           IdentityScheme
	To             IdentityScheme
	TokensAssigned int
	TokensCleared  int
	GroupsTouched  int
}

// ConvertIdentity switches the index to target and rewrites tab tokens to
// match: stable gives every multi-tab group one token, legacy strips them.
func (idx *Index) ConvertIdentity(target IdentityScheme) MigrationResult {
	defer idx.begin("ConvertIdentity")()
	return idx.convertIdentity(target)
}

func (idx *Index) convertIdentity(target IdentityScheme) MigrationResult {
	res := MigrationResult{From: idx.scheme, To: target}
	idx.scheme = target

	for _, g := range idx.orderedGroups() {
		touched := false
		switch target {
		case IdentityStable:
			if g.size() < 2 {
				continue
			}
			token := idx.existingToken(g)
			if token == uuid.Nil {
				token = idx.newToken()
			}
			for _, id := range g.tabIDs {
				if tab := idx.tabs.TabByID(id); tab != nil && tab.GroupToken != token {
					tab.GroupToken = token
					res.TokensAssigned++
					touched = true
				}
			}
			g.token = token
		case IdentityLegacy:
			for _, id := range g.tabIDs {
				if tab := idx.tabs.TabByID(id); tab != nil && tab.HasGroupToken() {
					tab.GroupToken = uuid.Nil
					res.TokensCleared++
					touched = true
				}
			}
			g.token = uuid.Nil
		}
		if touched {
			res.GroupsTouched++
		}
	}

	idx.recountGroups()
	idx.diag.TokensAssigned += res.TokensAssigned
	idx.diag.TokensCleared += res.TokensCleared

	idx.log.Debug().
		Str("from", res.From.String()).
		Str("to", res.To.String()).
		Int("tokens_assigned", res.TokensAssigned).
		Int("tokens_cleared", res.TokensCleared).
		Int("groups_touched", res.GroupsTouched).
		Msg("group identity converted")
	return res
}

// existingToken returns the first token carried by any member.
func (idx *Index) existingToken(g *group) uuid.UUID {
	if g.token != uuid.Nil {
		return g.token
	}
	for _, id := range g.tabIDs {
		if tab := idx.tabs.TabByID(id); tab != nil && tab.HasGroupToken() {
			return tab.GroupToken
		}
	}
	return uuid.Nil
}

// destinationToken returns the token merged tabs should carry. Under the
// stable scheme a tokenless destination gets a fresh one first.
func (idx *Index) destinationToken(destination *entity.Tab) uuid.UUID {
	if idx.scheme != IdentityStable {
		return uuid.Nil
	}
	if destination.HasGroupToken() {
		return destination.GroupToken
	}
	token := idx.newToken()
	idx.setGroupToken(idx.groups[destination.RootID], token)
	return token
}

// setGroupToken stamps token on every member of g, keeping the count current.
func (idx *Index) setGroupToken(g *group, token uuid.UUID) {
	if g == nil {
		return
	}
	idx.track(g, func() {
		for _, id := range g.tabIDs {
			if tab := idx.tabs.TabByID(id); tab != nil {
				tab.GroupToken = token
			}
		}
		g.token = token
	})
}
