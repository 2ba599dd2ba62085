package ics

import (
	"strings"
	"testing"
	"time"

	"easyics/internal/appers"
	"easyics/internal/application/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wrapCalendar(blocks ...string) string {
	lines := []string{"BEGIN:VCALENDAR", "VERSION:2.0"}
	lines = append(lines, blocks...)
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}

func veventBlock(props ...string) string {
	lines := append([]string{"BEGIN:VEVENT"}, props...)
	lines = append(lines, "END:VEVENT")
	return strings.Join(lines, "\r\n")
}

func TestParseEmptyContent(t *testing.T) {
	for _, in := range []string{"", "   ", "\r\n\r\n"} {
		_, err := Parse(in)
		require.Error(t, err, "input %q", in)
		assert.True(t, appers.IsValidation(err))
	}
}

func TestParseSingleEvent(t *testing.T) {
	content := wrapCalendar(veventBlock(
		"UID:abc12345-1761487200@easy-ics.local",
		"DTSTAMP:20251026T120000Z",
		"DTSTART:20251026T140000Z",
		"DTEND:20251026T150000Z",
		"SUMMARY:Team meeting",
		"LOCATION:Room A",
		"DESCRIPTION:Project status",
		"STATUS:CONFIRMED",
		"PRIORITY:9",
	))

	events, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "Team meeting", e.Title)
	assert.Equal(t, "Room A", e.Location)
	assert.Equal(t, "Project status", e.Description)
	assert.Equal(t, entity.PriorityHigh, e.Priority)
	assert.Equal(t, "abc12345-1761487200@easy-ics.local", e.UID)
	assert.True(t, time.Date(2025, 10, 26, 14, 0, 0, 0, time.UTC).Equal(e.Start))
	assert.True(t, time.Date(2025, 10, 26, 15, 0, 0, 0, time.UTC).Equal(e.End))
	assert.False(t, e.AllDay)
}

func TestParseSkipsInvalidBlockKeepsValid(t *testing.T) {
	// первый блок без DTSTART, второй корректный:
	// на выходе ровно одно событие — из второго блока
	content := wrapCalendar(
		veventBlock(
			"SUMMARY:Broken event",
			"DTEND:20251026T150000Z",
		),
		veventBlock(
			"SUMMARY:Valid event",
			"DTSTART:20251026T160000Z",
			"DTEND:20251026T170000Z",
		),
	)

	report, err := ParseWithReport(content)
	require.NoError(t, err)
	require.Len(t, report.Events, 1)
	assert.Equal(t, "Valid event", report.Events[0].Title)
	assert.Equal(t, 1, report.Skipped)
}

func TestParseSkipsBlockOnFieldFormatError(t *testing.T) {
	content := wrapCalendar(
		veventBlock(
			"SUMMARY:Bad start",
			"DTSTART:garbage",
			"DTEND:20251026T170000Z",
		),
		veventBlock(
			"SUMMARY:Bad priority",
			"DTSTART:20251026T160000Z",
			"DTEND:20251026T170000Z",
			"PRIORITY:urgent",
		),
		veventBlock(
			"SUMMARY:End before start",
			"DTSTART:20251026T180000Z",
			"DTEND:20251026T170000Z",
		),
		veventBlock(
			"SUMMARY:Survivor",
			"DTSTART:20251026T160000Z",
			"DTEND:20251026T170000Z",
		),
	)

	report, err := ParseWithReport(content)
	require.NoError(t, err)
	require.Len(t, report.Events, 1)
	assert.Equal(t, "Survivor", report.Events[0].Title)
	assert.Equal(t, 3, report.Skipped)
}

func TestParseIgnoresUnknownProperties(t *testing.T) {
	content := wrapCalendar(veventBlock(
		"SUMMARY:Event",
		"DTSTART:20251026T160000Z",
		"DTEND:20251026T170000Z",
		"X-CUSTOM-PROP:whatever",
		"SEQUENCE:3",
		"TRANSP:OPAQUE",
	))

	events, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Event", events[0].Title)
}

func TestParseStripsPropertyParameters(t *testing.T) {
	content := wrapCalendar(veventBlock(
		"SUMMARY;LANGUAGE=en:Event",
		"DTSTART;TZID=UTC:20251026T160000Z",
		"DTEND;TZID=UTC:20251026T170000Z",
	))

	events, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Event", events[0].Title)
	assert.True(t, time.Date(2025, 10, 26, 16, 0, 0, 0, time.UTC).Equal(events[0].Start))
}

func TestParsePreservesBlockOrder(t *testing.T) {
	content := wrapCalendar(
		veventBlock("SUMMARY:First", "DTSTART:20251026T100000Z", "DTEND:20251026T110000Z"),
		veventBlock("SUMMARY:Second", "DTSTART:20251026T090000Z", "DTEND:20251026T093000Z"),
		veventBlock("SUMMARY:Third", "DTSTART:20251026T120000Z", "DTEND:20251026T130000Z"),
	)

	events, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 3)
	// порядок выходных событий равен порядку блоков в тексте, не по времени
	assert.Equal(t, "First", events[0].Title)
	assert.Equal(t, "Second", events[1].Title)
	assert.Equal(t, "Third", events[2].Title)
}

func TestParsePriorityMapping(t *testing.T) {
	testCases := []struct {
		value string
		want  entity.EventPriority
	}{
		{"1", entity.PriorityLow},
		{"5", entity.PriorityMedium},
		{"9", entity.PriorityHigh},
		// значения вне опорных точек прижимаются к ближайшему уровню
		{"0", entity.PriorityLow},
		{"3", entity.PriorityLow},
		{"4", entity.PriorityMedium},
		{"6", entity.PriorityMedium},
		{"7", entity.PriorityHigh},
		{"99", entity.PriorityHigh},
	}

	for _, tc := range testCases {
		t.Run("priority "+tc.value, func(t *testing.T) {
			content := wrapCalendar(veventBlock(
				"SUMMARY:Event",
				"DTSTART:20251026T160000Z",
				"DTEND:20251026T170000Z",
				"PRIORITY:"+tc.value,
			))
			events, err := Parse(content)
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, tc.want, events[0].Priority)
		})
	}
}

func TestParseFloatingAndDateOnly(t *testing.T) {
	content := wrapCalendar(
		veventBlock("SUMMARY:Floating", "DTSTART:20251026T160000", "DTEND:20251026T170000"),
		veventBlock("SUMMARY:All day", "DTSTART:20251224", "DTEND:20251225"),
	)

	events, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.True(t, time.Date(2025, 10, 26, 16, 0, 0, 0, time.UTC).Equal(events[0].Start))
	assert.False(t, events[0].AllDay)

	assert.True(t, events[1].AllDay)
	assert.True(t, time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC).Equal(events[1].Start))
	assert.True(t, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC).Equal(events[1].End))
}

func TestParseAlarmTrigger(t *testing.T) {
	content := wrapCalendar(veventBlock(
		"SUMMARY:With reminder",
		"DTSTART:20251026T160000Z",
		"DTEND:20251026T170000Z",
		"BEGIN:VALARM",
		"ACTION:DISPLAY",
		"TRIGGER:-PT30M",
		"DESCRIPTION:Event Reminder",
		"END:VALARM",
	))

	events, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 30, events[0].ReminderMinutes)
	// DESCRIPTION внутри VALARM не перетирает описание события
	assert.Empty(t, events[0].Description)
}

func TestParseFoldedLines(t *testing.T) {
	content := "BEGIN:VCALENDAR\r\n" +
		"BEGIN:VEVENT\r\n" +
		"SUMMARY:A summary that was split across\r\n" +
		"  physical lines by folding\r\n" +
		"DTSTART:20251026T160000Z\r\n" +
		"DTEND:20251026T170000Z\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR"

	events, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "A summary that was split across physical lines by folding", events[0].Title)
}

func TestParseKeepsTrailingWhitespace(t *testing.T) {
	// завершающие пробелы в тексте значимы и должны пережить разбор
	content := wrapCalendar(veventBlock(
		"DTSTART:20251026T140000Z",
		"DTEND:20251026T150000Z",
		"SUMMARY:ends with space ",
		"LOCATION:padded location  ",
	))

	events, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ends with space ", events[0].Title)
	assert.Equal(t, "padded location  ", events[0].Location)

	// то же для свёрнутой строки, чья последняя логическая литера — пробел
	folded := "BEGIN:VCALENDAR\r\n" +
		"BEGIN:VEVENT\r\n" +
		"DTSTART:20251026T140000Z\r\n" +
		"DTEND:20251026T150000Z\r\n" +
		"SUMMARY:folded title \r\n" +
		"  with trailing space \r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR"

	events, err = Parse(folded)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "folded title  with trailing space ", events[0].Title)
}
