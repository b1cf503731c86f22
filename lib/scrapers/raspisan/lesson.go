package raspisan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ibiassist-backend/lib/htmlutil"
	"ibiassist-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

type LessonType int

const (
	LESSON_TYPE_UNKNOWN LessonType = iota
	LESSON_TYPE_PRACTICE
	LESSON_TYPE_LECTURE
	LESSON_TYPE_EXAM
	LESSON_TYPE_SUBJECT_REPORT
	LESSON_TYPE_CONSULTATION
	LESSON_TYPE_SUBJECT_REPORT_WITH_GRADE
	LESSON_TYPE_COURSE_WORK_DEFEND
	LESSON_TYPE_MEETING
)

func (t LessonType) String() string {
	switch t {
	case LESSON_TYPE_CONSULTATION:
		return "consultation"
	case LESSON_TYPE_SUBJECT_REPORT:
		return "subject_report"
	case LESSON_TYPE_SUBJECT_REPORT_WITH_GRADE:
		return "subject_report_with_grade"
	case LESSON_TYPE_LECTURE:
		return "lecture"
	case LESSON_TYPE_PRACTICE:
		return "practice"
	case LESSON_TYPE_EXAM:
		return "exam"
	case LESSON_TYPE_COURSE_WORK_DEFEND:
		return "course_work_defend"
	case LESSON_TYPE_MEETING:
		return "meeting"
	default:
		return "unknown"
	}
}

// the order is load-bearing: some abbreviations appear inside the context
// of others, the first matching pattern wins and the rest are skipped.
var lessonTypeMarkers = []struct {
	lessonType LessonType
	re         *regexp.Regexp
}{
	{LESSON_TYPE_LECTURE, regexp.MustCompile(`(?i),? ?-?Лекц`)},
	{LESSON_TYPE_PRACTICE, regexp.MustCompile(`(?i),? ?-?Прак`)},
	{LESSON_TYPE_CONSULTATION, regexp.MustCompile(`(?i),? ?-?Конс`)},
	{LESSON_TYPE_SUBJECT_REPORT_WITH_GRADE, regexp.MustCompile(`(?i),? ?-?ДифЗ`)},
	{LESSON_TYPE_EXAM, regexp.MustCompile(`(?i),? ?-?Экз`)},
	{LESSON_TYPE_SUBJECT_REPORT, regexp.MustCompile(`(?i),? ?-?Зач`)},
	{LESSON_TYPE_COURSE_WORK_DEFEND, regexp.MustCompile(`(?i),? ?-?ЗКР`)},
	{LESSON_TYPE_MEETING, regexp.MustCompile(`(?i),? ?-?Собр`)},
}

// phrases the portal embeds when a lesson happens remotely
var onlineMarkers = []string{
	"ОНЛАЙН!",
	"Вход на собрание",
	"Вход на занятие",
}

var teacherRegex = regexp.MustCompile(`, .* .\..\.`)
var classroomRegex = regexp.MustCompile(`(?i), ?ауд\. ?\pL{1,2}-?[0-9]{1,3}-?[0-9](-web|-к)?`)

// AdditionalLessonInfo carries everything extracted out of a lesson cell's
// free text. TeacherName and Classroom are empty when the respective marker
// was not present. Groups is reserved, the portal does not currently render
// per-subgroup markers in group schedules.
type AdditionalLessonInfo struct {
	TeacherName string
	Classroom   string
	Online      bool
	Groups      string
	Type        LessonType
}

// LessonUrl is one link embedded in a lesson cell, usually a meeting join
// link, in document order.
type LessonUrl struct {
	Text string
	Url  string
}

// ExtractLinks parses a cell's inner HTML, collects every anchor carrying an
// href and detaches the anchor subtrees, returning the links and the cell's
// remaining plain text. This must run before the marker pipeline because
// anchors sit inside classification-relevant text.
func ExtractLinks(cellHtml string) ([]LessonUrl, string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cellHtml))
	if err != nil {
		return nil, textutil.StripNbsp(cellHtml)
	}

	body := doc.Find("body")
	anchors := htmlutil.DetachAnchors(body)

	var urls []LessonUrl
	for _, a := range anchors {
		urls = append(urls, LessonUrl{
			Text: a.Name,
			Url:  a.Href,
		})
	}

	var remaining strings.Builder
	for _, node := range body.Nodes {
		remaining.WriteString(htmlutil.GetText(node))
	}
	return urls, textutil.StripNbsp(remaining.String())
}

// replaceFirst removes only the leftmost match, later pipeline steps operate
// on the remainder and may legitimately re-match similar shapes.
func replaceFirst(re *regexp.Regexp, text string) string {
	loc := re.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + text[loc[1]:]
}

func extractLessonType(text string) (LessonType, string) {
	for _, marker := range lessonTypeMarkers {
		if marker.re.MatchString(text) {
			return marker.lessonType, replaceFirst(marker.re, text)
		}
	}
	return LESSON_TYPE_UNKNOWN, text
}

// extractTeacher looks for the ", Surname I.I." tail the portal appends to
// most lessons. An empty result means the pattern was absent.
func extractTeacher(text string) (string, string) {
	match := teacherRegex.FindString(text)
	if match == "" {
		return "", text
	}
	text = replaceFirst(teacherRegex, text)
	return strings.ReplaceAll(match, ", ", ""), text
}

func extractClassroom(text string) (string, string) {
	match := classroomRegex.FindString(text)
	if match == "" {
		return "", text
	}
	text = replaceFirst(classroomRegex, text)

	cleaned := strings.ReplaceAll(match, ", ", "")
	parts := strings.Split(cleaned, " ")
	if len(parts) > 1 {
		return parts[1], text
	}
	return strings.ReplaceAll(cleaned, "ауд.", ""), text
}

// ExtractLessonInfo runs the ordered detect-and-strip pipeline over a
// lesson cell's text: online markers, then the lesson-type abbreviation,
// then the teacher tail, then the classroom code. Each step consumes its
// match and hands the remainder to the next, the final remainder is the
// lesson's display title.
func ExtractLessonInfo(text string) (AdditionalLessonInfo, string) {
	info := AdditionalLessonInfo{
		Type: LESSON_TYPE_UNKNOWN,
	}

	for _, marker := range onlineMarkers {
		if strings.Contains(text, marker) {
			text = strings.ReplaceAll(text, marker, "")
			info.Online = true
		}
	}

	info.Type, text = extractLessonType(text)
	info.TeacherName, text = extractTeacher(text)
	info.Classroom, text = extractClassroom(text)

	return info, strings.TrimSpace(text)
}

var customTimeRegex = regexp.MustCompile(`[0-9]{2}[-:.][0-9]{2}`)
var customTimeFullRegex = regexp.MustCompile(`(?i),*\s+начало в [0-9]{2}[-:.][0-9]{2}( час)?!*`)
var customTimeSeparatorRegex = regexp.MustCompile(`[-:.]`)

// lessons rescheduled via a "начало в HH:MM" note keep the standard
// academic-pair length, the portal carries no per-lesson duration
const lessonDuration = 90

// detectCustomTime picks up an explicit start-time override in the residual
// lesson text. It reports false when there is no HH:MM pattern or when the
// values are out of range, in which case the slot times from the header row
// stand.
func detectCustomTime(text string) (timeStart, timeEnd, remaining string, ok bool) {
	match := customTimeRegex.FindString(text)
	if match == "" {
		return "", "", text, false
	}

	parts := customTimeSeparatorRegex.Split(match, -1)
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", "", text, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", text, false
	}
	if hours > 23 || minutes > 59 {
		return "", "", text, false
	}

	remaining = replaceFirst(customTimeFullRegex, text)

	endTotal := (hours*60 + minutes + lessonDuration) % (24 * 60)
	timeStart = fmt.Sprintf("%02d:%02d", hours, minutes)
	timeEnd = fmt.Sprintf("%02d:%02d", endTotal/60, endTotal%60)
	return timeStart, timeEnd, remaining, true
}
