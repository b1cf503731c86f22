package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ibiassist-backend/cmd/raspisan-cli/utils"
	"ibiassist-backend/lib/scrapers/raspisan"
	"ibiassist-backend/lib/serviceutil"
	"ibiassist-backend/lib/timezone"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var scheduleGroup *string
var scheduleFrom *string
var scheduleTo *string

func init() {
	scheduleGroup = scheduleCmd.Flags().String("group", "", "The group name to look up, fuzzy matched. Defaults to the configured group.")
	scheduleFrom = scheduleCmd.Flags().String("from", "", "Start of the period, DD.MM.YYYY. Defaults to the current week.")
	scheduleTo = scheduleCmd.Flags().String("to", "", "End of the period, DD.MM.YYYY. Defaults to the current week.")
	rootCmd.AddCommand(scheduleCmd)
}

// resolveGroup fuzzy matches a group name against every group of every
// education level, since the portal only exposes groups per level.
func resolveGroup(ctx context.Context, client *raspisan.Client, query string) (raspisan.BasicItem, error) {
	levels, err := client.GetLevels(ctx)
	if err != nil {
		return raspisan.BasicItem{}, err
	}

	var all []raspisan.BasicItem
	for _, level := range levels {
		groups, err := client.GetGroups(ctx, level.Id)
		if err != nil {
			return raspisan.BasicItem{}, err
		}
		all = append(all, groups...)
	}

	group, ok := raspisan.ResolveItem(all, query)
	if !ok {
		return raspisan.BasicItem{}, fmt.Errorf("no group matches %q", query)
	}
	return group, nil
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [--group <name>] [--from <DD.MM.YYYY>] [--to <DD.MM.YYYY>]",
	Short: "Fetches and renders the week's schedule of a group.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		client := createClient(cfg)

		query := *scheduleGroup
		if query == "" {
			query = cfg.Group
		}
		if query == "" {
			serviceutil.Fatal("no group given", fmt.Errorf("pass --group or set it in config.json5"))
		}

		group, err := resolveGroup(cmd.Context(), client, query)
		if err != nil {
			serviceutil.Fatal("failed to resolve group", err)
		}
		slog.Info("resolved group", "label", group.Label, "id", group.Id)

		from, to := *scheduleFrom, *scheduleTo
		if from == "" || to == "" {
			start, stop := timezone.GetCurrentWeek(timezone.Now())
			if from == "" {
				from = start.Format("02.01.2006")
			}
			if to == "" {
				to = stop.Format("02.01.2006")
			}
		}

		days, err := client.GetSchedules(cmd.Context(), raspisan.GetSchedulesRequest{
			DateFrom: from,
			DateTo:   to,
			GroupId:  group.Id,
		})
		if err != nil {
			serviceutil.Fatal("failed to fetch schedules", err)
		}
		if len(days) == 0 {
			slog.Info("no lessons in the given period", "from", from, "to", to)
			return
		}

		renderDays(days)
	},
}

func renderDays(days []raspisan.DayItem) {
	for _, day := range days {
		t := utils.NewTable()
		t.SetTitle(fmt.Sprintf("%s.%s %s", day.Day, day.Month, day.WeekDay))
		t.AppendHeader(table.Row{"Time", "Type", "Lesson", "Teacher", "Classroom", "Links"})
		for _, lesson := range day.Lessons {
			var links []string
			for _, url := range lesson.Urls {
				links = append(links, url.Url)
			}
			classroom := lesson.Additional.Classroom
			if lesson.Additional.Online {
				classroom = "online"
			}
			t.AppendRow(table.Row{
				fmt.Sprintf("%s-%s", lesson.TimeStart, lesson.TimeEnd),
				lesson.Additional.Type.String(),
				lesson.Text,
				lesson.Additional.TeacherName,
				classroom,
				strings.Join(links, "\n"),
			})
		}
		t.Render()
	}
}
