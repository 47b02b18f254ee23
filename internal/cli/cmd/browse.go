package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/tabgroups/internal/cli/model"
	"github.com/bnema/tabgroups/internal/infrastructure/config"
	"github.com/bnema/tabgroups/internal/logging"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and edit a strip interactively",
	Long: `Open the interactive strip browser.

Tabs are listed in strip order with their groups. Move tabs, merge them into
neighbouring groups, take them out again, rename and recolour groups. The
last groupings can be undone until the browser exits. Changes are saved on
quit and with ctrl+s.

Logs go to the log file while the browser runs. Edits to the config file
are picked up live.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return errAppNotInitialized
	}
	if err := app.RedirectLogsToFile(); err != nil {
		return err
	}
	log := logging.FromContext(app.Ctx())

	out, err := app.OpenStrip(app.StripID(stripFlag), true)
	if err != nil {
		return fmt.Errorf("open strip: %w", err)
	}
	s := out.Session
	defer func() {
		if cerr := s.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close strip session")
		}
	}()

	m := model.NewStripModel(app.Ctx(), app.Theme, model.StripModelConfig{
		Session:    s,
		TabsUC:     app.TabsUC,
		GroupsUC:   app.GroupsUC,
		Save:       app.SaveStrip,
		ShowTabIDs: app.Config.Appearance.ShowTabIDs,
		Dirty:      out.NeedsSave(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if err := app.WatchConfig(func(cfg *config.Config) {
		p.Send(model.ConfigChangedMsg{Config: cfg})
	}); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	}

	final, err := p.Run()
	if err != nil {
		return err
	}
	if sm, ok := final.(model.StripModel); ok && sm.Dirty() {
		return app.SaveStrip(s)
	}
	return nil
}
