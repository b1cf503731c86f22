package raspisan

import (
	"strings"
	"testing"

	_ "embed"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/grades.html
var gradesFixture string

func TestParseGradeTable(t *testing.T) {
	semesters, err := ParseGradeTable(gradesFixture)
	require.NoError(t, err)

	expected := [][]GradeItem{
		{
			{Name: "Математический анализ", Type: GRADE_TYPE_EXAM, Grade: GRADE_RESULT_FIVE},
			{Name: "Иностранный язык", Type: GRADE_TYPE_SUBJECT_REPORT, Grade: GRADE_RESULT_PASSED},
			{Name: "Физическая культура", Type: GRADE_TYPE_SUBJECT_REPORT, Grade: GRADE_RESULT_ABSENCE},
		},
		{
			{Name: "Эконометрика", Type: GRADE_TYPE_SUBJECT_REPORT_WITH_GRADE, Grade: GRADE_RESULT_FOUR},
			// "отл." is not a known result label, it degrades instead of failing
			{Name: "Курсовой проект", Type: GRADE_TYPE_OFFLINE_COURSE_WORK, Grade: GRADE_RESULT_UNKNOWN},
		},
	}

	for i, want := range expected {
		if diff := cmp.Diff(want, semesters[i]); diff != "" {
			t.Fatalf("semester %d mismatch (-want +got):\n%s", i+1, diff)
		}
	}
	for i := len(expected); i < SemesterCount; i++ {
		require.Empty(t, semesters[i])
	}
}

func TestParseGradeTableSemesterRange(t *testing.T) {
	table := `<table><tr><td>h</td></tr><tr><td>Дисциплина</td><td>Экзамен</td><td><p>5</p></td></tr></table>`

	// exactly eight tables fill every slot
	semesters, err := ParseGradeTable(strings.Repeat(table, SemesterCount))
	require.NoError(t, err)
	for _, semester := range semesters {
		require.Len(t, semester, 1)
	}

	// a ninth one has no slot to land in
	_, err = ParseGradeTable(strings.Repeat(table, SemesterCount+1))
	require.ErrorIs(t, err, ErrSemesterRange)
}

func TestParseGradeTableMalformedRow(t *testing.T) {
	html := `<table>
<tr><td>Дисциплина</td><td>Форма контроля</td><td>Оценка</td></tr>
<tr><td>Математика</td><td>Экзамен</td></tr>
</table>`
	_, err := ParseGradeTable(html)
	require.ErrorIs(t, err, ErrGradeRow)
}

func TestGradeLabelTotality(t *testing.T) {
	inputs := []string{"", "Экзамен!", "что угодно", "5.0", "zachet", "  5"}
	for _, input := range inputs {
		require.Equal(t, GRADE_TYPE_UNKNOWN, GradeTypeFromLabel(input))
		require.Equal(t, GRADE_RESULT_UNKNOWN, GradeResultFromLabel(input))
	}
}

// serializations stay stable however often they round-trip
func TestGradeLabelSerializationStable(t *testing.T) {
	labels := []string{
		"Государственный экзамен", "Экзамен", "Курсовая работа (очно)",
		"Курсовая работа (заочно)", "Зачёт", "Дифференцированный зачет",
		"не существует",
	}
	for _, label := range labels {
		once := GradeTypeFromLabel(label).String()
		require.Equal(t, once, GradeTypeFromLabel(label).String())
	}

	results := []string{"н/я", "зач.", "н/зач.", "5", "4", "3", "2", "н/доп.", "?"}
	for _, label := range results {
		once := GradeResultFromLabel(label).String()
		require.Equal(t, once, GradeResultFromLabel(label).String())
	}
}
