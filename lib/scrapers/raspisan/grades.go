package raspisan

import (
	"strings"

	"ibiassist-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// SemesterCount is fixed by the portal, it always renders one grade table
// per semester of a four year program.
const SemesterCount = 8

type GradeType int

const (
	GRADE_TYPE_UNKNOWN GradeType = iota
	GRADE_TYPE_SUBJECT_REPORT_WITH_GRADE
	GRADE_TYPE_SUBJECT_REPORT
	GRADE_TYPE_EXAM
	GRADE_TYPE_ONLINE_COURSE_WORK
	GRADE_TYPE_OFFLINE_COURSE_WORK
	GRADE_TYPE_GOV_EXAM
)

// GradeTypeFromLabel classifies the portal's label for a grading form.
// It is total: anything unrecognized maps to GRADE_TYPE_UNKNOWN.
func GradeTypeFromLabel(label string) GradeType {
	switch label {
	case "Государственный экзамен":
		return GRADE_TYPE_GOV_EXAM
	case "Экзамен":
		return GRADE_TYPE_EXAM
	case "Курсовая работа (очно)":
		return GRADE_TYPE_OFFLINE_COURSE_WORK
	case "Курсовая работа (заочно)":
		return GRADE_TYPE_ONLINE_COURSE_WORK
	case "Зачёт":
		return GRADE_TYPE_SUBJECT_REPORT
	case "Дифференцированный зачет":
		return GRADE_TYPE_SUBJECT_REPORT_WITH_GRADE
	default:
		return GRADE_TYPE_UNKNOWN
	}
}

func (t GradeType) String() string {
	switch t {
	case GRADE_TYPE_GOV_EXAM:
		return "gov_exam"
	case GRADE_TYPE_EXAM:
		return "exam"
	case GRADE_TYPE_OFFLINE_COURSE_WORK:
		return "offline_course_work"
	case GRADE_TYPE_ONLINE_COURSE_WORK:
		return "online_course_work"
	case GRADE_TYPE_SUBJECT_REPORT:
		return "subject_report"
	case GRADE_TYPE_SUBJECT_REPORT_WITH_GRADE:
		return "subject_report_with_grade"
	default:
		return "unknown"
	}
}

type GradeResult int

const (
	GRADE_RESULT_UNKNOWN GradeResult = iota
	GRADE_RESULT_FAILED
	GRADE_RESULT_PASSED
	GRADE_RESULT_ABSENCE
	GRADE_RESULT_NOT_ADMITTED
	GRADE_RESULT_TWO
	GRADE_RESULT_THREE
	GRADE_RESULT_FOUR
	GRADE_RESULT_FIVE
)

// GradeResultFromLabel classifies the portal's label for a received grade.
// It is total: anything unrecognized maps to GRADE_RESULT_UNKNOWN.
func GradeResultFromLabel(label string) GradeResult {
	switch label {
	case "н/я":
		return GRADE_RESULT_ABSENCE
	case "зач.":
		return GRADE_RESULT_PASSED
	case "н/зач.":
		return GRADE_RESULT_FAILED
	case "5":
		return GRADE_RESULT_FIVE
	case "4":
		return GRADE_RESULT_FOUR
	case "3":
		return GRADE_RESULT_THREE
	case "2":
		return GRADE_RESULT_TWO
	case "н/доп.":
		return GRADE_RESULT_NOT_ADMITTED
	default:
		return GRADE_RESULT_UNKNOWN
	}
}

func (r GradeResult) String() string {
	switch r {
	case GRADE_RESULT_FAILED:
		return "failed"
	case GRADE_RESULT_PASSED:
		return "passed"
	case GRADE_RESULT_ABSENCE:
		return "absence"
	case GRADE_RESULT_NOT_ADMITTED:
		return "not_admitted"
	case GRADE_RESULT_TWO:
		return "2"
	case GRADE_RESULT_THREE:
		return "3"
	case GRADE_RESULT_FOUR:
		return "4"
	case GRADE_RESULT_FIVE:
		return "5"
	default:
		return "unknown"
	}
}

// GradeItem is one row of one semester's grade table.
type GradeItem struct {
	Name  string
	Type  GradeType
	Grade GradeResult
}

// ParseGradeTable walks a grades document where the n-th <table> holds the
// n-th semester. The first row of every table is a header. Each data row
// carries at least three cells: discipline name, grading form, result. The
// result label sits one element deeper than the cell itself.
func ParseGradeTable(html string) ([SemesterCount][]GradeItem, error) {
	var semesters [SemesterCount][]GradeItem

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return semesters, err
	}

	var parseErr error
	doc.Find("table").EachWithBreak(func(index int, table *goquery.Selection) bool {
		if index >= SemesterCount {
			parseErr = ErrSemesterRange
			return false
		}

		var result []GradeItem
		table.Find("tr").EachWithBreak(func(rowIndex int, row *goquery.Selection) bool {
			if rowIndex == 0 {
				// header row
				return true
			}

			cells := row.Find("td")
			if cells.Length() < 3 {
				parseErr = ErrGradeRow
				return false
			}

			// the result label is wrapped in a nested element,
			// the cell's own text is padding
			resultCell := cells.Eq(2).Children().First()
			if resultCell.Length() == 0 {
				resultCell = cells.Eq(2)
			}

			result = append(result, GradeItem{
				Name:  textutil.StripNbsp(cells.Eq(0).Text()),
				Type:  GradeTypeFromLabel(textutil.StripNbsp(cells.Eq(1).Text())),
				Grade: GradeResultFromLabel(strings.TrimSpace(resultCell.Text())),
			})
			return true
		})
		if parseErr != nil {
			return false
		}

		semesters[index] = result
		return true
	})
	if parseErr != nil {
		return [SemesterCount][]GradeItem{}, parseErr
	}

	return semesters, nil
}
