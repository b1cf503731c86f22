package raspisan

import (
	"strings"

	"ibiassist-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// LessonItem is one occupied slot of one day. TimeStart/TimeEnd are "HH:MM",
// either the slot boundaries from the header row or a per-lesson override.
type LessonItem struct {
	TimeStart  string
	TimeEnd    string
	Text       string
	Additional AdditionalLessonInfo
	Urls       []LessonUrl
}

// DayItem is one data row of the schedule table. Lessons preserve column
// order, which is chronological by slot.
type DayItem struct {
	Day     string
	Month   string
	WeekDay string
	Lessons []LessonItem
}

type timeSlot struct {
	start string
	end   string
}

// ParseScheduleTable turns the portal's schedule table into day items.
//
// The geometry is discovered, not declared: row 1 is the canonical time-slot
// header, data rows start at row 2, and the lesson column count is the slot
// count of the header. Rows that break that shape abort the whole parse,
// misaligned cells would be worse than no data.
func ParseScheduleTable(html string) ([]DayItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ErrScheduleRows
	}

	rows := doc.Find("table tbody tr")
	if rows.Length() == 0 {
		return nil, ErrScheduleRows
	}

	slots, err := parseTimeSlots(rows.Eq(1))
	if err != nil {
		return nil, err
	}

	var days []DayItem
	for rowIndex := 2; rowIndex < rows.Length(); rowIndex++ {
		day, err := parseDayRow(rows.Eq(rowIndex), slots)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	return days, nil
}

// parseTimeSlots reads the header row's "HH:MM-HH:MM" cells, one per lesson
// column.
func parseTimeSlots(headerRow *goquery.Selection) ([]timeSlot, error) {
	var slots []timeSlot
	var parseErr error
	headerRow.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		text := textutil.StripNbsp(cell.Text())
		start, end, found := strings.Cut(text, "-")
		if !found {
			parseErr = ErrScheduleRows
			return false
		}
		slots = append(slots, timeSlot{
			start: strings.TrimSpace(start),
			end:   strings.TrimSpace(end),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(slots) == 0 {
		return nil, ErrScheduleRows
	}
	return slots, nil
}

func parseDayRow(row *goquery.Selection, slots []timeSlot) (DayItem, error) {
	cells := row.Find("td")
	if cells.Length() == 0 {
		return DayItem{}, ErrScheduleRows
	}
	if cells.Length() < len(slots)+1 {
		// fail fast on a short row, silently truncating would misalign
		// every lesson after the gap
		return DayItem{}, ErrScheduleRows
	}

	// the first cell reads "DD.MM Weekday"
	date := strings.TrimSpace(cells.Eq(0).Text())
	dayMonth, weekDay, found := strings.Cut(date, " ")
	if !found {
		return DayItem{}, ErrScheduleDate
	}
	dayPart, monthPart, found := strings.Cut(dayMonth, ".")
	if !found {
		return DayItem{}, ErrScheduleDate
	}

	day := DayItem{
		Day:     dayPart,
		Month:   monthPart,
		WeekDay: strings.TrimSpace(weekDay),
	}

	for col := range slots {
		cell := cells.Eq(col + 1)
		if strings.TrimSpace(cell.Text()) == "" {
			// empty slot, not represented at all
			continue
		}

		cellHtml, err := cell.Html()
		if err != nil {
			return DayItem{}, ErrScheduleRows
		}

		urls, text := ExtractLinks(cellHtml)
		additional, text := ExtractLessonInfo(text)

		timeStart, timeEnd := slots[col].start, slots[col].end
		if overrideStart, overrideEnd, remaining, ok := detectCustomTime(text); ok {
			timeStart, timeEnd = overrideStart, overrideEnd
			text = remaining
		}

		day.Lessons = append(day.Lessons, LessonItem{
			TimeStart:  timeStart,
			TimeEnd:    timeEnd,
			Text:       strings.ReplaceAll(text, ", ", ""),
			Additional: additional,
			Urls:       urls,
		})
	}

	return day, nil
}
