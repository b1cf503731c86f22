package commands

import (
	"ibiassist-backend/cmd/raspisan-cli/utils"
	"ibiassist-backend/lib/scrapers/raspisan"
	"ibiassist-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(teachersCmd)
}

func renderItems(items []raspisan.BasicItem) {
	t := utils.NewTable()
	t.AppendHeader(table.Row{"Id", "Label"})
	for _, item := range items {
		t.AppendRow(table.Row{item.Id, item.Label})
	}
	t.Render()
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Lists the education levels the portal knows about.",
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(readConfig())
		items, err := client.GetLevels(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch levels", err)
		}
		renderItems(items)
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups <level_id>",
	Short: "Lists the groups of one education level.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(readConfig())
		items, err := client.GetGroups(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to fetch groups", err)
		}
		renderItems(items)
	},
}

var teachersCmd = &cobra.Command{
	Use:   "teachers",
	Short: "Lists the teachers the portal knows about.",
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(readConfig())
		items, err := client.GetTeachers(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch teachers", err)
		}
		renderItems(items)
	},
}
