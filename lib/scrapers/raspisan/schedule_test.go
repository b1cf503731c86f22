package raspisan

import (
	"testing"

	_ "embed"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/schedule.html
var scheduleFixture string

func TestParseScheduleTable(t *testing.T) {
	days, err := ParseScheduleTable(scheduleFixture)
	require.NoError(t, err)

	expected := []DayItem{
		{
			Day:     "01",
			Month:   "11",
			WeekDay: "Пн",
			Lessons: []LessonItem{
				{
					TimeStart: "09:00",
					TimeEnd:   "10:30",
					Text:      "Математический анализ.",
					Additional: AdditionalLessonInfo{
						TeacherName: "Иванов И.И.",
						Classroom:   "К-204",
						Type:        LESSON_TYPE_LECTURE,
					},
				},
				{
					TimeStart: "12:30",
					TimeEnd:   "14:00",
					Text:      "Физика",
					Additional: AdditionalLessonInfo{
						TeacherName: "Петров П.П.",
						Online:      true,
						Type:        LESSON_TYPE_PRACTICE,
					},
					Urls: []LessonUrl{
						{Text: "Вход на занятие", Url: "https://example.com/meet/42"},
					},
				},
			},
		},
		{
			Day:     "02",
			Month:   "11",
			WeekDay: "Вт",
			Lessons: []LessonItem{
				{
					TimeStart: "14:30",
					TimeEnd:   "16:00",
					Text:      "Информатика",
					Additional: AdditionalLessonInfo{
						TeacherName: "Кузнецов К.К.",
						Type:        LESSON_TYPE_SUBJECT_REPORT,
					},
				},
			},
		},
	}

	if diff := cmp.Diff(expected, days); diff != "" {
		t.Fatalf("schedule mismatch (-want +got):\n%s", diff)
	}
}

// every data row past the two header rows becomes exactly one day,
// empty cells do not become lessons
func TestParseScheduleTableShape(t *testing.T) {
	days, err := ParseScheduleTable(scheduleFixture)
	require.NoError(t, err)

	require.Len(t, days, 2)
	for _, day := range days {
		require.LessOrEqual(t, len(day.Lessons), 3)
	}
}

func TestParseScheduleTableNoRows(t *testing.T) {
	_, err := ParseScheduleTable("<html><body><p>нет таблицы</p></body></html>")
	require.ErrorIs(t, err, ErrScheduleRows)

	_, err = ParseScheduleTable("<table></table>")
	require.ErrorIs(t, err, ErrScheduleRows)
}

func TestParseScheduleTableShortRow(t *testing.T) {
	html := `<table>
<tr><td>Дата</td><td>1 пара</td></tr>
<tr><td>09:00-10:30</td><td>10:45-12:15</td></tr>
<tr><td>01.11 Пн</td><td>Физика</td></tr>
</table>`
	_, err := ParseScheduleTable(html)
	require.ErrorIs(t, err, ErrScheduleRows)
}

func TestParseScheduleTableBadDate(t *testing.T) {
	html := `<table>
<tr><td>Дата</td><td>1 пара</td></tr>
<tr><td>09:00-10:30</td></tr>
<tr><td>понедельник</td><td>Физика</td></tr>
</table>`
	_, err := ParseScheduleTable(html)
	require.ErrorIs(t, err, ErrScheduleDate)
}
