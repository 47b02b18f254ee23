package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bnema/tabgroups/internal/application/usecase"
	"github.com/bnema/tabgroups/internal/cli"
	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/domain/tabgroup"
)

var (
	groupsJSON    bool
	groupsAll     bool
	ungroupLead   bool
	ungroupAll    bool
	checkJSONFlag bool
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Merge, split and decorate tab groups",
	Long: `Manage the tab groups of a strip.

Groups are addressed by any member tab id. Titles and colours are stored per
group and follow the group when its root tab changes.`,
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}

// groups list
var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups in display order",
	Long: `List the groups of the strip in display order.

By default only real groups are shown. With --all every slot is listed,
single ungrouped tabs included.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStrip(false, func(_ *cli.App, s *usecase.StripSession) (bool, error) {
			views := groupViews(s, groupsAll)
			if groupsJSON {
				return false, outputJSON(views)
			}
			return false, outputGroupsTable(views)
		})
	},
}

func init() {
	groupsCmd.AddCommand(groupsListCmd)
	groupsListCmd.Flags().BoolVar(&groupsJSON, "json", false, "output as JSON")
	groupsListCmd.Flags().BoolVar(&groupsAll, "all", false, "include single ungrouped tabs")
}

type groupView struct {
	Slot        int    `json:"slot"`
	RootID      int    `json:"root_id"`
	Token       string `json:"token,omitempty"`
	TabIDs      []int  `json:"tab_ids"`
	LastShownID int    `json:"last_shown_id"`
	Title       string `json:"title,omitempty"`
	Color       string `json:"color,omitempty"`
	IsTabGroup  bool   `json:"is_tab_group"`
}

func groupViews(s *usecase.StripSession, all bool) []groupView {
	infos := s.Groups.Groups()
	views := make([]groupView, 0, len(infos))
	for _, info := range infos {
		if !all && !info.IsTabGroup {
			continue
		}
		ids := make([]int, 0, len(info.TabIDs))
		for _, id := range s.Groups.RelatedTabIDs(info.RootID) {
			ids = append(ids, int(id))
		}
		v := groupView{
			Slot:        info.Slot,
			RootID:      int(info.RootID),
			TabIDs:      ids,
			LastShownID: int(info.LastShownID),
			Title:       info.Title,
			IsTabGroup:  info.IsTabGroup,
		}
		if info.Token != uuid.Nil {
			v.Token = info.Token.String()
		}
		if info.Color != entity.NoGroupColor {
			v.Color = info.Color.String()
		}
		views = append(views, v)
	}
	return views
}

func outputGroupsTable(views []groupView) error {
	if len(views) == 0 {
		fmt.Println("No groups in this strip.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SLOT\tROOT\tTOKEN\tTABS\tTITLE\tCOLOR")
	for _, v := range views {
		token := "-"
		if v.Token != "" {
			token = v.Token[:8]
		}
		ids := make([]string, 0, len(v.TabIDs))
		for _, id := range v.TabIDs {
			ids = append(ids, fmt.Sprint(id))
		}
		_, _ = fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
			v.Slot, v.RootID, token, strings.Join(ids, ","), dash(v.Title), dash(v.Color))
	}
	return w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// groups merge <source> <destination>
var groupsMergeCmd = &cobra.Command{
	Use:   "merge <source-id> <destination-id>",
	Short: "Merge a tab (or its whole group) into another tab's group",
	Long: `Merge the source tab, together with every tab of its group, into the
group of the destination tab. The merged tabs are moved next to the
destination's run.`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		ids, err := parseTabIDs(args)
		if err != nil {
			return err
		}
		return withStrip(false, func(app *cli.App, s *usecase.StripSession) (bool, error) {
			if err := app.GroupsUC.Merge(app.Ctx(), s, ids[0], ids[1]); err != nil {
				return false, fmt.Errorf("merge: %w", err)
			}
			fmt.Printf("Merged tab %d into group %d\n", ids[0], s.Tabs.TabByID(ids[1]).RootID)
			return true, nil
		})
	},
}

// groups group <id> <id>...
var groupsGroupCmd = &cobra.Command{
	Use:   "group <tab-id> <tab-id>...",
	Short: "Group tabs together with the first one",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		ids, err := parseTabIDs(args)
		if err != nil {
			return err
		}
		return withStrip(false, func(app *cli.App, s *usecase.StripSession) (bool, error) {
			if err := app.GroupsUC.GroupTabs(app.Ctx(), s, ids); err != nil {
				return false, fmt.Errorf("group tabs: %w", err)
			}
			fmt.Printf("Grouped %d tabs into group %d\n", len(ids), s.Tabs.TabByID(ids[0]).RootID)
			return true, nil
		})
	},
}

// groups ungroup <id>
var groupsUngroupCmd = &cobra.Command{
	Use:   "ungroup <tab-id>",
	Short: "Move a tab out of its group",
	Long: `Move a tab out of its group. The tab is placed after the group's run,
or before it with --leading. With --all the whole group is dissolved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseTabID(args[0])
		if err != nil {
			return err
		}
		return withStrip(false, func(app *cli.App, s *usecase.StripSession) (bool, error) {
			if ungroupAll {
				if err := app.GroupsUC.Dissolve(app.Ctx(), s, id); err != nil {
					return false, fmt.Errorf("dissolve group: %w", err)
				}
				fmt.Printf("Dissolved the group of tab %d\n", id)
				return true, nil
			}
			if err := app.GroupsUC.Ungroup(app.Ctx(), s, id, !ungroupLead); err != nil {
				return false, fmt.Errorf("ungroup: %w", err)
			}
			fmt.Printf("Moved tab %d out of its group\n", id)
			return true, nil
		})
	},
}

func init() {
	groupsUngroupCmd.Flags().BoolVar(&ungroupLead, "leading", false, "place the tab before the group")
	groupsUngroupCmd.Flags().BoolVar(&ungroupAll, "all", false, "dissolve the whole group")
}

// groups single <id>
var groupsSingleCmd = &cobra.Command{
	Use:   "single <tab-id>",
	Short: "Turn a single tab into a group (stable scheme only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseTabID(args[0])
		if err != nil {
			return err
		}
		return withStrip(false, func(app *cli.App, s *usecase.StripSession) (bool, error) {
			if err := app.GroupsUC.CreateSingleTabGroup(app.Ctx(), s, id); err != nil {
				return false, fmt.Errorf("create group: %w", err)
			}
			fmt.Printf("Tab %d is now a group\n", id)
			return true, nil
		})
	},
}

// groups title <id> [title]
var groupsTitleCmd = &cobra.Command{
	Use:   "title <tab-id> [title]",
	Short: "Set or clear a group title",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseTabID(args[0])
		if err != nil {
			return err
		}
		var title string
		if len(args) == 2 {
			title = args[1]
		}
		return withStrip(false, func(app *cli.App, s *usecase.StripSession) (bool, error) {
			if err := app.GroupsUC.Rename(app.Ctx(), s, id, title); err != nil {
				return false, fmt.Errorf("rename group: %w", err)
			}
			return true, nil
		})
	},
}

// groups color <id> <color>
var groupsColorCmd = &cobra.Command{
	Use:   "color <tab-id> <color>",
	Short: "Set or clear a group colour",
	Long: `Set the colour of a group. Valid colours: grey, blue, red, yellow,
green, pink, purple, cyan, orange. Use "none" to clear it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseTabID(args[0])
		if err != nil {
			return err
		}
		color, err := entity.ParseGroupColor(args[1])
		if err != nil {
			return err
		}
		return withStrip(false, func(app *cli.App, s *usecase.StripSession) (bool, error) {
			if err := app.GroupsUC.Recolor(app.Ctx(), s, id, color); err != nil {
				return false, fmt.Errorf("recolor group: %w", err)
			}
			return true, nil
		})
	},
}

// groups move <id> <slot>
var groupsMoveCmd = &cobra.Command{
	Use:   "move <tab-id> <slot>",
	Short: "Move a whole group to another display slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseTabID(args[0])
		if err != nil {
			return err
		}
		slot, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		return withStrip(false, func(app *cli.App, s *usecase.StripSession) (bool, error) {
			final, err := app.GroupsUC.MoveGroup(app.Ctx(), s, id, slot)
			if err != nil {
				return false, fmt.Errorf("move group: %w", err)
			}
			fmt.Printf("Moved group of tab %d to slot %d\n", id, final)
			return true, nil
		})
	},
}

// groups check
var groupsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify group order and repair stale root ids",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStrip(false, func(app *cli.App, s *usecase.StripSession) (bool, error) {
			out, err := app.GroupsUC.Check(app.Ctx(), s)
			if err != nil {
				return false, fmt.Errorf("check: %w", err)
			}
			changed := out.Reordered || out.RootIDsFixed > 0
			if checkJSONFlag {
				return changed, outputJSON(struct {
					OrderValid   bool `json:"order_valid"`
					Reordered    bool `json:"reordered"`
					RootIDsFixed int  `json:"root_ids_fixed"`
					Groups       int  `json:"groups"`
				}{out.OrderValid, out.Reordered, out.RootIDsFixed, out.Groups})
			}

			status := "ok"
			if out.Reordered {
				status = "reordered"
			}
			fmt.Printf("order: %s, root ids fixed: %d, groups: %d\n", status, out.RootIDsFixed, out.Groups)
			return changed, nil
		})
	},
}

func init() {
	groupsCheckCmd.Flags().BoolVar(&checkJSONFlag, "json", false, "output as JSON")
}

// groups migrate <scheme>
var groupsMigrateCmd = &cobra.Command{
	Use:   "migrate <legacy|stable>",
	Short: "Convert group identity to another scheme",
	Long: `Convert the strip's group identity to the given scheme and make it the
configured scheme.

Migrating to stable assigns a token to every group. Migrating to legacy
clears all tokens; groups are then keyed by root id only. Other strips are
converted the next time they are opened.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"legacy", "stable"},
	RunE: func(_ *cobra.Command, args []string) error {
		target, err := tabgroup.ParseIdentityScheme(args[0])
		if err != nil {
			return err
		}
		err = withStrip(false, func(app *cli.App, s *usecase.StripSession) (bool, error) {
			res, err := app.GroupsUC.Migrate(app.Ctx(), s, target)
			if err != nil {
				return false, fmt.Errorf("migrate: %w", err)
			}
			fmt.Printf("%s -> %s: %d groups, %d tokens assigned, %d cleared\n",
				res.From, res.To, res.GroupsTouched, res.TokensAssigned, res.TokensCleared)
			return true, nil
		})
		if err != nil {
			return err
		}
		return GetApp().SetScheme(target)
	},
}

func init() {
	groupsCmd.AddCommand(groupsMergeCmd)
	groupsCmd.AddCommand(groupsGroupCmd)
	groupsCmd.AddCommand(groupsUngroupCmd)
	groupsCmd.AddCommand(groupsSingleCmd)
	groupsCmd.AddCommand(groupsTitleCmd)
	groupsCmd.AddCommand(groupsColorCmd)
	groupsCmd.AddCommand(groupsMoveCmd)
	groupsCmd.AddCommand(groupsCheckCmd)
	groupsCmd.AddCommand(groupsMigrateCmd)
}
