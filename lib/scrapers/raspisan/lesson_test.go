package raspisan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLessonInfo(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		expect     AdditionalLessonInfo
		expectText string
	}{
		{
			name: "lecture with teacher and classroom",
			text: "Математический анализ, Лекц., Иванов И.И., ауд. К-204",
			expect: AdditionalLessonInfo{
				TeacherName: "Иванов И.И.",
				Classroom:   "К-204",
				Type:        LESSON_TYPE_LECTURE,
			},
			expectText: "Математический анализ.",
		},
		{
			name: "online practice",
			text: "ОНЛАЙН! Физика, Прак, Петров П.П. ",
			expect: AdditionalLessonInfo{
				TeacherName: "Петров П.П.",
				Online:      true,
				Type:        LESSON_TYPE_PRACTICE,
			},
			expectText: "Физика",
		},
		{
			name: "meeting join phrase implies online",
			text: "Вход на занятие История",
			expect: AdditionalLessonInfo{
				Online: true,
				Type:   LESSON_TYPE_UNKNOWN,
			},
			expectText: "История",
		},
		{
			name: "no markers at all",
			text: "Самостоятельная работа",
			expect: AdditionalLessonInfo{
				Type: LESSON_TYPE_UNKNOWN,
			},
			expectText: "Самостоятельная работа",
		},
		{
			name: "classroom without teacher",
			text: "Информатика, ауд. В-101-к",
			expect: AdditionalLessonInfo{
				Classroom: "В-101-к",
				Type:      LESSON_TYPE_UNKNOWN,
			},
			expectText: "Информатика",
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			info, text := ExtractLessonInfo(test.text)
			require.Equal(t, test.expect, info)
			require.Equal(t, test.expectText, text)
		})
	}
}

// some abbreviations can show up together in one cell, the first pattern in
// the fixed order decides the type
func TestLessonTypePriority(t *testing.T) {
	info, _ := ExtractLessonInfo("Лекц Экз по курсу")
	require.Equal(t, LESSON_TYPE_LECTURE, info.Type)

	info, _ = ExtractLessonInfo("Экз по курсу")
	require.Equal(t, LESSON_TYPE_EXAM, info.Type)

	info, _ = ExtractLessonInfo("Прак Конс")
	require.Equal(t, LESSON_TYPE_PRACTICE, info.Type)
}

func TestLessonTypeCaseInsensitive(t *testing.T) {
	info, _ := ExtractLessonInfo("лекция по матанализу")
	require.Equal(t, LESSON_TYPE_LECTURE, info.Type)
}

func TestDetectCustomTime(t *testing.T) {
	start, end, text, ok := detectCustomTime("Информатика, начало в 14:30!")
	require.True(t, ok)
	require.Equal(t, "14:30", start)
	require.Equal(t, "16:00", end)
	require.Equal(t, "Информатика", text)

	// dash and dot separators are accepted too
	start, end, _, ok = detectCustomTime("Информатика, начало в 08-15")
	require.True(t, ok)
	require.Equal(t, "08:15", start)
	require.Equal(t, "09:45", end)

	start, end, _, ok = detectCustomTime("Информатика, начало в 23.00")
	require.True(t, ok)
	require.Equal(t, "23:00", start)
	require.Equal(t, "00:30", end)
}

func TestDetectCustomTimeAbsent(t *testing.T) {
	_, _, text, ok := detectCustomTime("Информатика")
	require.False(t, ok)
	require.Equal(t, "Информатика", text)
}

// out-of-range values fall back to the slot time instead of failing the cell
func TestDetectCustomTimeOutOfRange(t *testing.T) {
	_, _, _, ok := detectCustomTime("начало в 25:00")
	require.False(t, ok)

	_, _, _, ok = detectCustomTime("начало в 14:75")
	require.False(t, ok)
}

func TestExtractLinks(t *testing.T) {
	urls, text := ExtractLinks(`Join <a href='https://x/y'>here</a> at 10:00`)
	require.Equal(t, []LessonUrl{{Text: "here", Url: "https://x/y"}}, urls)
	require.Equal(t, "Join  at 10:00", text)
}

func TestExtractLinksOrderAndNbsp(t *testing.T) {
	urls, text := ExtractLinks(
		`&nbsp;Лекция <a href="https://a">первая</a> и <a href="https://b">вторая</a>`,
	)
	require.Equal(t, []LessonUrl{
		{Text: "первая", Url: "https://a"},
		{Text: "вторая", Url: "https://b"},
	}, urls)
	require.Equal(t, "Лекция  и ", text)
}

func TestExtractLinksSkipsAnchorsWithoutHref(t *testing.T) {
	urls, text := ExtractLinks(`<a name="x">метка</a> Физика`)
	require.Empty(t, urls)
	require.Equal(t, " Физика", text)
}
