package commands

import (
	"fmt"

	"ibiassist-backend/cmd/raspisan-cli/utils"
	"ibiassist-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var gradesLastName *string
var gradesPin *string

func init() {
	gradesLastName = gradesCmd.Flags().String("lastname", "", "The student's last name. Defaults to the configured one.")
	gradesPin = gradesCmd.Flags().String("pin", "", "The student's pin code. Defaults to the configured one.")
	rootCmd.AddCommand(gradesCmd)
}

var gradesCmd = &cobra.Command{
	Use:   "grades [--lastname <name>] [--pin <pin>]",
	Short: "Fetches and renders a student's grades for every semester.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()

		lastName, pin := *gradesLastName, *gradesPin
		if lastName == "" {
			lastName = cfg.LastName
		}
		if pin == "" {
			pin = cfg.Pin
		}
		if lastName == "" || pin == "" {
			serviceutil.Fatal("no credentials given", fmt.Errorf("pass --lastname and --pin or set them in config.json5"))
		}

		client := createClient(cfg)
		semesters, err := client.GetGrades(cmd.Context(), lastName, pin)
		if err != nil {
			serviceutil.Fatal("failed to fetch grades", err)
		}

		for index, items := range semesters {
			if len(items) == 0 {
				continue
			}
			t := utils.NewTable()
			t.SetTitle(fmt.Sprintf("Semester %d", index+1))
			t.AppendHeader(table.Row{"Discipline", "Form", "Result"})
			for _, item := range items {
				t.AppendRow(table.Row{item.Name, item.Type.String(), item.Grade.String()})
			}
			t.Render()
		}
	},
}
