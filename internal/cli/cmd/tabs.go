package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/tabgroups/internal/application/usecase"
	"github.com/bnema/tabgroups/internal/cli"
	"github.com/bnema/tabgroups/internal/domain/entity"
)

var (
	tabsJSON bool

	openTitle  string
	openParent int
	openLaunch string
	openAt     int
	openSelect bool
)

var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "List and edit the tabs of a strip",
}

func init() {
	rootCmd.AddCommand(tabsCmd)
}

// tabs list
var tabsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tabs in strip order",
	Long: `List the tabs of the strip in order with their group identity.

The ROOT column is the legacy group key, TOKEN the stable group id.
The active tab is marked with ●.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStrip(false, func(_ *cli.App, s *usecase.StripSession) (bool, error) {
			if tabsJSON {
				return false, outputJSON(tabViews(s))
			}
			return false, outputTabsTable(s)
		})
	},
}

func init() {
	tabsCmd.AddCommand(tabsListCmd)
	tabsListCmd.Flags().BoolVar(&tabsJSON, "json", false, "output as JSON")
}

type tabView struct {
	Index      int       `json:"index"`
	ID         int       `json:"id"`
	RootID     int       `json:"root_id"`
	GroupToken string    `json:"group_token,omitempty"`
	ParentID   int       `json:"parent_id,omitempty"`
	LaunchType string    `json:"launch_type"`
	Active     bool      `json:"active"`
	Grouped    bool      `json:"grouped"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
}

func tabViews(s *usecase.StripSession) []tabView {
	views := make([]tabView, 0, s.Tabs.Count())
	for i, tab := range s.Tabs.Tabs() {
		v := tabView{
			Index:      i,
			ID:         int(tab.ID),
			RootID:     int(tab.RootID),
			ParentID:   int(tab.ParentID),
			LaunchType: tab.LaunchType.String(),
			Active:     tab.ID == s.Tabs.ActiveTabID(),
			Grouped:    s.Groups.IsTabInTabGroup(tab.ID),
			Title:      tab.Title,
			URL:        tab.URL,
			CreatedAt:  tab.CreatedAt,
		}
		if tab.HasGroupToken() {
			v.GroupToken = tab.GroupToken.String()
		}
		views = append(views, v)
	}
	return views
}

func outputTabsTable(s *usecase.StripSession) error {
	if s.Tabs.Count() == 0 {
		fmt.Println("No tabs in this strip.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, " \tIDX\tID\tROOT\tTOKEN\tGROUP\tTITLE")

	for _, v := range tabViews(s) {
		active := " "
		if v.Active {
			active = "●"
		}
		token := "-"
		if v.GroupToken != "" {
			token = v.GroupToken[:8]
		}
		group := "-"
		if v.Grouped {
			group = s.Groups.TabGroupTitle(entity.TabID(v.RootID))
			if group == "" {
				group = fmt.Sprintf("#%d", v.RootID)
			}
		}
		title := v.Title
		if title == "" {
			title = v.URL
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			active, v.Index, v.ID, v.RootID, token, group, title)
	}

	return w.Flush()
}

// tabs open [url]
var tabsOpenCmd = &cobra.Command{
	Use:   "open [url]",
	Short: "Open a new tab",
	Long: `Open a new tab in the strip.

With --parent and an in-group launch type (tab_group_ui,
longpress_foreground_in_group, longpress_background_in_group) the tab joins
the parent's group and is placed inside its run.

Examples:
  tabgroups tabs open https://go.dev
  tabgroups tabs open https://pkg.go.dev --parent 3 --launch tab_group_ui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTabsOpen,
}

func init() {
	tabsCmd.AddCommand(tabsOpenCmd)
	tabsOpenCmd.Flags().StringVar(&openTitle, "title", "", "tab title")
	tabsOpenCmd.Flags().IntVar(&openParent, "parent", 0, "id of the tab this one is opened from")
	tabsOpenCmd.Flags().StringVar(&openLaunch, "launch", entity.FromChromeUI.String(), "launch type")
	tabsOpenCmd.Flags().IntVar(&openAt, "at", -1, "strip index (-1 appends)")
	tabsOpenCmd.Flags().BoolVar(&openSelect, "select", true, "select the new tab")
}

func runTabsOpen(_ *cobra.Command, args []string) error {
	launch, err := entity.ParseLaunchType(openLaunch)
	if err != nil {
		return err
	}
	var url string
	if len(args) == 1 {
		url = args[0]
	}

	return withStrip(true, func(app *cli.App, s *usecase.StripSession) (bool, error) {
		out, err := app.TabsUC.Open(app.Ctx(), usecase.OpenTabInput{
			Session:    s,
			Title:      openTitle,
			URL:        url,
			LaunchType: launch,
			ParentID:   entity.TabID(openParent),
			Index:      openAt,
			Select:     openSelect,
		})
		if err != nil {
			return false, fmt.Errorf("open tab: %w", err)
		}
		if out.Grouped {
			fmt.Printf("Opened tab %d in group %d\n", out.Tab.ID, out.Tab.RootID)
		} else {
			fmt.Printf("Opened tab %d\n", out.Tab.ID)
		}
		return true, nil
	})
}

// tabs close <id>
var tabsCloseCmd = &cobra.Command{
	Use:   "close <tab-id>",
	Short: "Close a tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseTabID(args[0])
		if err != nil {
			return err
		}
		return withStrip(false, func(app *cli.App, s *usecase.StripSession) (bool, error) {
			if _, err := app.TabsUC.Close(app.Ctx(), s, id); err != nil {
				return false, fmt.Errorf("close tab: %w", err)
			}
			fmt.Printf("Closed tab %d\n", id)
			return true, nil
		})
	},
}

// tabs select <id>
var tabsSelectCmd = &cobra.Command{
	Use:   "select <tab-id>",
	Short: "Make a tab the active tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseTabID(args[0])
		if err != nil {
			return err
		}
		return withStrip(false, func(app *cli.App, s *usecase.StripSession) (bool, error) {
			if err := app.TabsUC.Select(app.Ctx(), s, id); err != nil {
				return false, fmt.Errorf("select tab: %w", err)
			}
			return true, nil
		})
	},
}

// tabs move <id> <index>
var tabsMoveCmd = &cobra.Command{
	Use:   "move <tab-id> <index>",
	Short: "Move a tab to a strip index",
	Long: `Move a tab to a new strip index (insertion point).

Dragging a grouped tab outside its group's run takes it out of the group.
An ungrouped tab never lands inside another group's run.`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseTabID(args[0])
		if err != nil {
			return err
		}
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		return withStrip(false, func(app *cli.App, s *usecase.StripSession) (bool, error) {
			final, err := app.TabsUC.Move(app.Ctx(), s, id, index)
			if err != nil {
				return false, fmt.Errorf("move tab: %w", err)
			}
			fmt.Printf("Moved tab %d to index %d\n", id, final)
			return true, nil
		})
	},
}

func init() {
	tabsCmd.AddCommand(tabsCloseCmd)
	tabsCmd.AddCommand(tabsSelectCmd)
	tabsCmd.AddCommand(tabsMoveCmd)
}
