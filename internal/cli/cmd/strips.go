package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bnema/tabgroups/internal/cli/styles"
	"github.com/bnema/tabgroups/internal/domain/entity"
)

var stripsJSON bool

var stripsCmd = &cobra.Command{
	Use:   "strips",
	Short: "List and delete stored strips",
}

func init() {
	rootCmd.AddCommand(stripsCmd)
}

// strips list
var stripsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored strips",
	Long: `List every stored strip, most recently updated first.

The default strip (from config) is marked with ●.`,
	Args: cobra.NoArgs,
	RunE: runStripsList,
}

func init() {
	stripsCmd.AddCommand(stripsListCmd)
	stripsListCmd.Flags().BoolVar(&stripsJSON, "json", false, "output as JSON")
}

func runStripsList(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return errAppNotInitialized
	}

	infos, err := app.Strips.List(app.Ctx())
	if err != nil {
		return fmt.Errorf("list strips: %w", err)
	}

	if stripsJSON {
		return outputJSON(infos)
	}
	return outputStripsTable(infos, app.StripID(""))
}

func outputStripsTable(infos []entity.StripInfo, current entity.StripID) error {
	if len(infos) == 0 {
		fmt.Println("No saved strips found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, " \tSTRIP\tSCHEME\tTABS\tLAST UPDATED")
	for _, info := range infos {
		mark := " "
		if info.ID == current {
			mark = "●"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			mark, info.ID, info.IdentityScheme, info.TabCount, styles.RelativeTime(info.UpdatedAt))
	}
	return w.Flush()
}

// strips delete <id>
var stripsDeleteCmd = &cobra.Command{
	Use:   "delete <strip-id>",
	Short: "Delete a stored strip with its tabs and group visuals",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return errAppNotInitialized
		}
		id := entity.StripID(args[0])
		if err := app.Strips.Delete(app.Ctx(), id); err != nil {
			return fmt.Errorf("delete strip: %w", err)
		}
		fmt.Printf("Deleted strip %s\n", id)
		return nil
	},
}

func init() {
	stripsCmd.AddCommand(stripsDeleteCmd)
}
