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

func mustEvent(t *testing.T, p entity.NewEventParams) *entity.Event {
	t.Helper()
	e, err := entity.NewEvent(p)
	require.NoError(t, err)
	return e
}

func sampleEvents(t *testing.T) []*entity.Event {
	t.Helper()
	start := time.Date(2025, 10, 26, 14, 0, 0, 0, time.UTC)
	return []*entity.Event{
		mustEvent(t, entity.NewEventParams{
			Title:       "Team meeting",
			Start:       start,
			End:         start.Add(time.Hour),
			Location:    "Room A",
			Description: "Project status",
			Priority:    entity.PriorityHigh,
		}),
		mustEvent(t, entity.NewEventParams{
			Title:           "Lunch",
			Start:           start.Add(2 * time.Hour),
			End:             start.Add(3 * time.Hour),
			Priority:        entity.PriorityLow,
			ReminderMinutes: 15,
		}),
	}
}

func TestGenerateEmptyList(t *testing.T) {
	_, err := Generate(nil)
	require.Error(t, err)
	assert.True(t, appers.IsValidation(err))

	_, err = Generate([]*entity.Event{})
	require.Error(t, err)
	assert.True(t, appers.IsValidation(err))
}

func TestGenerateStructure(t *testing.T) {
	events := sampleEvents(t)
	content, err := Generate(events)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(content, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(content, "END:VCALENDAR"))

	for _, line := range []string{
		"VERSION:2.0",
		"PRODID:-//Easy ICS//Easy ICS v1.0//CH",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:Easy ICS Calendar",
		"X-WR-TIMEZONE:UTC",
	} {
		assert.Contains(t, content, line+"\r\n")
	}

	// число VEVENT-блоков равно числу событий,
	// число VALARM-блоков — числу событий с напоминанием
	assert.Equal(t, len(events), strings.Count(content, "BEGIN:VEVENT"))
	assert.Equal(t, len(events), strings.Count(content, "END:VEVENT"))
	assert.Equal(t, 1, strings.Count(content, "BEGIN:VALARM"))
	assert.Contains(t, content, "TRIGGER:-PT15M\r\n")
	assert.Contains(t, content, "ACTION:DISPLAY\r\n")
	assert.Contains(t, content, "DESCRIPTION:Event Reminder\r\n")

	assert.Contains(t, content, "DTSTART:20251026T140000Z\r\n")
	assert.Contains(t, content, "DTEND:20251026T150000Z\r\n")
	assert.Contains(t, content, "STATUS:CONFIRMED\r\n")
	assert.Contains(t, content, "PRIORITY:9\r\n")
	assert.Contains(t, content, "PRIORITY:1\r\n")
	assert.Contains(t, content, "UID:")
	assert.Contains(t, content, "@easy-ics.local")
}

func TestGenerateOmitsEmptyOptionalFields(t *testing.T) {
	start := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	e := mustEvent(t, entity.NewEventParams{
		Title: "Bare event",
		Start: start,
		End:   start.Add(time.Hour),
	})

	content, err := Generate([]*entity.Event{e})
	require.NoError(t, err)

	assert.NotContains(t, content, "LOCATION:")
	assert.NotContains(t, content, "BEGIN:VALARM")
	// DESCRIPTION остаётся только внутри VALARM, а его здесь нет
	assert.NotContains(t, content, "DESCRIPTION:")
	// дефолтный приоритет — MEDIUM
	assert.Contains(t, content, "PRIORITY:5\r\n")
}

func TestGenerateEscapesReservedCharacters(t *testing.T) {
	start := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	e := mustEvent(t, entity.NewEventParams{
		Title: `Budget; plan, rev\final`,
		Start: start,
		End:   start.Add(time.Hour),
	})

	content, err := Generate([]*entity.Event{e})
	require.NoError(t, err)
	assert.Contains(t, content, `SUMMARY:Budget\; plan\, rev\\final`)
}

func TestGenerateFoldsLongLines(t *testing.T) {
	start := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	e := mustEvent(t, entity.NewEventParams{
		Title:       "Planning",
		Description: strings.Repeat("very long description ", 30),
		Start:       start,
		End:         start.Add(time.Hour),
	})

	content, err := Generate([]*entity.Event{e})
	require.NoError(t, err)

	for _, physical := range strings.Split(content, "\r\n") {
		assert.LessOrEqual(t, len(physical), 75, "line %q exceeds 75 octets", physical)
	}
}

func TestGenerateAllDay(t *testing.T) {
	start := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	e := mustEvent(t, entity.NewEventParams{
		Title:  "Holiday",
		Start:  start,
		End:    start.AddDate(0, 0, 1),
		AllDay: true,
	})

	content, err := Generate([]*entity.Event{e})
	require.NoError(t, err)
	assert.Contains(t, content, "DTSTART:20251224\r\n")
	assert.Contains(t, content, "DTEND:20251225\r\n")
}
