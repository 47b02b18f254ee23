// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/tabgroups/internal/application/usecase"
	"github.com/bnema/tabgroups/internal/cli/styles"
	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/infrastructure/config"
	"github.com/bnema/tabgroups/internal/logging"
)

// ConfigChangedMsg carries a reloaded configuration into the model.
type ConfigChangedMsg struct {
	Config *config.Config
}

// StripModelConfig holds the dependencies of the strip browser.
type StripModelConfig struct {
	Session  *usecase.StripSession
	TabsUC   *usecase.ManageTabsUseCase
	GroupsUC *usecase.ManageTabGroupsUseCase
	// Save writes the session back to storage.
	Save       func(*usecase.StripSession) error
	ShowTabIDs bool
	// Dirty marks a session that must be saved even without edits.
	Dirty bool
}

// StripModel is the Bubble Tea model for the interactive strip browser.
type StripModel struct {
	// UI components
	help  help.Model
	keys  styles.StripKeyMap
	input textinput.Model

	// State
	cursor   int
	renaming bool
	showIDs  bool
	width    int
	height   int
	status   string
	err      error
	dirty    bool
	quitting bool
	showHelp bool

	// Dependencies
	ctx      context.Context
	session  *usecase.StripSession
	tabsUC   *usecase.ManageTabsUseCase
	groupsUC *usecase.ManageTabGroupsUseCase
	save     func(*usecase.StripSession) error
	theme    *styles.Theme
}

// NewStripModel creates a strip browser positioned on the active tab.
func NewStripModel(ctx context.Context, theme *styles.Theme, cfg StripModelConfig) StripModel {
	ti := textinput.New()
	ti.Placeholder = "group title"
	ti.CharLimit = 64
	ti.Prompt = "title: "

	m := StripModel{
		help:     styles.NewStyledHelp(theme),
		keys:     styles.DefaultStripKeyMap(),
		input:    ti,
		showIDs:  cfg.ShowTabIDs,
		dirty:    cfg.Dirty,
		width:    80,
		height:   24,
		ctx:      ctx,
		session:  cfg.Session,
		tabsUC:   cfg.TabsUC,
		groupsUC: cfg.GroupsUC,
		save:     cfg.Save,
		theme:    theme,
	}
	if idx := cfg.Session.Tabs.IndexOf(cfg.Session.Tabs.ActiveTabID()); idx >= 0 {
		m.cursor = idx
	}
	return m
}

// Init implements tea.Model.
func (m StripModel) Init() tea.Cmd {
	return nil
}

// Dirty reports whether the strip changed since the last save.
func (m StripModel) Dirty() bool {
	return m.dirty
}

// Update implements tea.Model.
func (m StripModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ConfigChangedMsg:
		if msg.Config != nil {
			m.theme = styles.NewTheme(msg.Config)
			m.help = styles.NewStyledHelp(m.theme)
			m.help.Width = m.width
			m.showIDs = msg.Config.Appearance.ShowTabIDs
			m.status = "config reloaded"
		}
		return m, nil

	case tea.KeyMsg:
		if m.renaming {
			return m.updateRename(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m StripModel) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.renaming = false
		m.input.Blur()
		m.status = "rename cancelled"
		return m, nil
	case key.Matches(msg, m.keys.ConfirmKey):
		m.renaming = false
		m.input.Blur()
		if tab := m.cursorTab(); tab != nil {
			m.apply(m.groupsUC.Rename(m.ctx, m.session, tab.ID, strings.TrimSpace(m.input.Value())), "group renamed")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m StripModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.status = ""
	count := m.session.Tabs.Count()
	tab := m.cursorTab()

	switch {
	case key.Matches(msg, m.keys.Quit):
		if err := m.saveNow(); err != nil {
			m.err = err
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < count-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Save):
		if err := m.saveNow(); err != nil {
			m.err = err
		} else {
			m.status = "saved"
		}

	case tab == nil:
		if key.Matches(msg, m.keys.NewTab) {
			m.openTab(nil)
		}

	case key.Matches(msg, m.keys.Select):
		m.apply(m.tabsUC.Select(m.ctx, m.session, tab.ID), "")

	case key.Matches(msg, m.keys.MoveUp):
		m.moveTab(tab, m.runStartAbove(tab))

	case key.Matches(msg, m.keys.MoveDown):
		m.moveTab(tab, m.cursor+2)

	case key.Matches(msg, m.keys.MergeUp):
		m.mergeInto(tab, m.cursor-1)

	case key.Matches(msg, m.keys.MergeDown):
		m.mergeInto(tab, m.cursor+1)

	case key.Matches(msg, m.keys.Ungroup):
		m.apply(m.groupsUC.Ungroup(m.ctx, m.session, tab.ID, true), "moved out of group")
		m.follow(tab.ID)

	case key.Matches(msg, m.keys.Single):
		m.apply(m.groupsUC.CreateSingleTabGroup(m.ctx, m.session, tab.ID), "group created")

	case key.Matches(msg, m.keys.Undo):
		m.undo(tab.ID)

	case key.Matches(msg, m.keys.Rename):
		if !m.session.Groups.IsTabInTabGroup(tab.ID) {
			m.err = usecase.ErrNotGrouped
			break
		}
		m.renaming = true
		m.input.SetValue(m.session.Groups.TabGroupTitle(tab.RootID))
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Recolor):
		m.apply(m.groupsUC.Recolor(m.ctx, m.session, tab.ID, m.nextColor(tab)), "colour changed")

	case key.Matches(msg, m.keys.NewTab):
		m.openTab(tab)

	case key.Matches(msg, m.keys.CloseTab):
		m.apply(closeErr(m.tabsUC.Close(m.ctx, m.session, tab.ID)), fmt.Sprintf("closed tab %d", tab.ID))
		m.clampCursor()

	case key.Matches(msg, m.keys.Check):
		out, err := m.groupsUC.Check(m.ctx, m.session)
		if err != nil {
			m.err = err
			break
		}
		m.dirty = m.dirty || out.Reordered || out.RootIDsFixed > 0
		m.status = fmt.Sprintf("order valid: %t, root ids fixed: %d", out.OrderValid, out.RootIDsFixed)
	}
	return m, nil
}

func closeErr(_ bool, err error) error {
	return err
}

// apply records the outcome of a mutating command.
func (m *StripModel) apply(err error, status string) {
	if err != nil {
		m.err = err
		return
	}
	m.dirty = true
	m.status = status
}

func (m *StripModel) moveTab(tab *entity.Tab, index int) {
	if index < 0 || index > m.session.Tabs.Count() {
		return
	}
	if _, err := m.tabsUC.Move(m.ctx, m.session, tab.ID, index); err != nil {
		m.err = err
		return
	}
	m.dirty = true
	m.follow(tab.ID)
}

// runStartAbove returns the insertion point that puts tab before the run
// directly above it, so an ungrouped tab hops over a whole group.
func (m *StripModel) runStartAbove(tab *entity.Tab) int {
	target := m.cursor - 1
	prev := m.session.Tabs.TabAt(target)
	if prev == nil || prev.RootID == tab.RootID {
		return target
	}
	for target > 0 && m.session.Tabs.TabAt(target-1).RootID == prev.RootID {
		target--
	}
	return target
}

// mergeInto merges the cursor tab's group into the group of the tab at index.
func (m *StripModel) mergeInto(tab *entity.Tab, index int) {
	target := m.session.Tabs.TabAt(index)
	if target == nil {
		return
	}
	if target.RootID == tab.RootID && m.session.Groups.IsTabInTabGroup(tab.ID) {
		m.status = "already in the same group"
		return
	}
	m.apply(m.groupsUC.Merge(m.ctx, m.session, tab.ID, target.ID), fmt.Sprintf("merged into group %d", target.RootID))
	m.follow(tab.ID)
}

func (m *StripModel) undo(fallback entity.TabID) {
	creation, err := m.groupsUC.UndoLastGrouping(m.ctx, m.session)
	if err != nil {
		if errors.Is(err, usecase.ErrNothingToUndo) {
			m.status = "nothing to undo"
			return
		}
		m.err = err
		return
	}
	m.dirty = true
	m.status = fmt.Sprintf("undid grouping of %d tabs", len(creation.Tabs))
	if len(creation.Tabs) > 0 {
		fallback = creation.Tabs[0].ID
	}
	m.follow(fallback)
}

// openTab opens a tab after the cursor. Inside a group it joins the group.
func (m *StripModel) openTab(from *entity.Tab) {
	input := usecase.OpenTabInput{
		Session:    m.session,
		LaunchType: entity.FromChromeUI,
		Index:      -1,
		Select:     true,
	}
	if from != nil {
		input.ParentID = from.ID
		input.Index = m.cursor + 1
		if m.session.Groups.IsTabInTabGroup(from.ID) {
			input.LaunchType = entity.FromTabGroupUI
			input.Index = -1
		}
	}
	out, err := m.tabsUC.Open(m.ctx, input)
	if err != nil {
		m.err = err
		return
	}
	m.dirty = true
	m.status = fmt.Sprintf("opened tab %d", out.Tab.ID)
	m.follow(out.Tab.ID)
}

// nextColor cycles none, grey ... orange, none.
func (m *StripModel) nextColor(tab *entity.Tab) entity.GroupColor {
	color, ok := m.session.Groups.TabGroupColor(tab.RootID)
	if !ok || color == entity.NoGroupColor {
		return entity.ColorGrey
	}
	if color >= entity.ColorOrange {
		return entity.NoGroupColor
	}
	return color + 1
}

func (m *StripModel) saveNow() error {
	if !m.dirty || m.save == nil {
		return nil
	}
	if err := m.save(m.session); err != nil {
		logging.FromContext(m.ctx).Error().Err(err).Msg("failed to save strip")
		return fmt.Errorf("save strip: %w", err)
	}
	m.dirty = false
	return nil
}

func (m *StripModel) follow(id entity.TabID) {
	if idx := m.session.Tabs.IndexOf(id); idx >= 0 {
		m.cursor = idx
	}
	m.clampCursor()
}

func (m *StripModel) clampCursor() {
	if n := m.session.Tabs.Count(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m StripModel) cursorTab() *entity.Tab {
	return m.session.Tabs.TabAt(m.cursor)
}

// segments groups adjacent tabs by group for rendering. It also returns the
// rendered line of the cursor.
func (m StripModel) segments() ([]styles.StripSegment, int) {
	var (
		segs       []styles.StripSegment
		line       int
		cursorLine int
		prevRoot   = entity.NoTabID
	)
	active := m.session.Tabs.ActiveTabID()
	for i, tab := range m.session.Tabs.Tabs() {
		grouped := m.session.Groups.IsTabInTabGroup(tab.ID)
		if !grouped || len(segs) == 0 || !segs[len(segs)-1].Grouped || tab.RootID != prevRoot {
			seg := styles.StripSegment{Grouped: grouped, Color: entity.NoGroupColor}
			if grouped {
				seg.Label = m.session.Groups.TabGroupTitle(tab.RootID)
				if seg.Label == "" {
					seg.Label = fmt.Sprintf("group %d", tab.RootID)
				}
				if c, ok := m.session.Groups.TabGroupColor(tab.RootID); ok {
					seg.Color = c
				}
				line++
			}
			segs = append(segs, seg)
		}
		prevRoot = tab.RootID

		if i == m.cursor {
			cursorLine = line
		}
		last := &segs[len(segs)-1]
		last.Rows = append(last.Rows, styles.StripRow{
			ID:     tab.ID,
			Title:  tab.DisplayTitle(),
			Active: tab.ID == active,
			Cursor: i == m.cursor,
		})
		line++
	}
	return segs, cursorLine
}

// View implements tea.Model.
func (m StripModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	segs, cursorLine := m.segments()
	body := m.theme.RenderStrip(segs, m.showIDs, m.width)
	b.WriteString(m.window(body, cursorLine))
	b.WriteString("\n\n")

	switch {
	case m.renaming:
		b.WriteString(m.theme.Input.Render(m.input.View()))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(m.theme.ErrorStyle.Render("✗ " + m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(m.theme.SuccessStyle.Render("✓ " + m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m StripModel) renderHeader() string {
	s := m.session
	parts := []string{
		m.theme.Title.Render("tabgroups"),
		m.theme.Badge.Render(string(s.ID)),
		m.theme.SchemeBadge(s.Groups.Scheme().String()),
		m.theme.Subtle.Render(fmt.Sprintf("%d tabs · %d groups", s.Tabs.Count(), s.Groups.TabGroupCount())),
	}
	if m.dirty {
		parts = append(parts, m.theme.WarningStyle.Render("● unsaved"))
	}
	return strings.Join(parts, " ")
}

// window keeps the cursor line visible when the strip is taller than the
// space left by the header and footer.
func (m StripModel) window(body string, cursorLine int) string {
	const chrome = 7
	avail := m.height - chrome
	lines := strings.Split(body, "\n")
	if avail <= 0 || len(lines) <= avail {
		return body
	}

	start := 0
	if cursorLine >= avail {
		start = cursorLine - avail + 1
	}
	end := min(start+avail, len(lines))
	return strings.Join(lines[start:end], "\n")
}
