package ics

import (
	"strings"
	"testing"
	"time"

	"easyics/internal/application/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Полный цикл generate -> parse: та же длина, тот же порядок,
// совпадение полей (время — с точностью до секунды).
func TestGenerateParseRoundTrip(t *testing.T) {
	start := time.Date(2025, 10, 26, 14, 0, 0, 0, time.UTC)

	original := []*entity.Event{
		mustEvent(t, entity.NewEventParams{
			Title:       "Team meeting",
			Start:       start,
			End:         start.Add(90 * time.Minute),
			Location:    "Room A, floor 2",
			Description: "Agenda:\nstatus; risks, blockers",
			Priority:    entity.PriorityHigh,
		}),
		mustEvent(t, entity.NewEventParams{
			Title:           "Lunch",
			Start:           start.Add(3 * time.Hour),
			End:             start.Add(4 * time.Hour),
			Priority:        entity.PriorityLow,
			ReminderMinutes: 15,
		}),
		mustEvent(t, entity.NewEventParams{
			Title:       "Retro",
			Start:       start.Add(5 * time.Hour),
			End:         start.Add(6 * time.Hour),
			Description: strings.Repeat("a rather long description that will be folded ", 10),
		}),
	}

	content, err := Generate(original)
	require.NoError(t, err)

	parsed, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, parsed, len(original))

	for i, want := range original {
		got := parsed[i]
		assert.Equal(t, want.Title, got.Title, "event %d", i)
		assert.Equal(t, want.Location, got.Location, "event %d", i)
		assert.Equal(t, want.Description, got.Description, "event %d", i)
		assert.Equal(t, want.Priority, got.Priority, "event %d", i)
		assert.Equal(t, want.ReminderMinutes, got.ReminderMinutes, "event %d", i)
		assert.Equal(t, want.AllDay, got.AllDay, "event %d", i)
		assert.True(t, want.Start.Truncate(time.Second).Equal(got.Start), "event %d start", i)
		assert.True(t, want.End.Truncate(time.Second).Equal(got.End), "event %d end", i)
		assert.Contains(t, got.UID, "@easy-ics.local")
	}
}

// Заголовок со всеми зарезервированными символами и переводом строки
// проходит цикл generate/parse байт-в-байт.
func TestRoundTripReservedCharactersTitle(t *testing.T) {
	title := "plan; alpha, beta\\gamma\nsecond line"
	start := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

	e := mustEvent(t, entity.NewEventParams{
		Title: title,
		Start: start,
		End:   start.Add(time.Hour),
	})

	content, err := Generate([]*entity.Event{e})
	require.NoError(t, err)

	parsed, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, title, parsed[0].Title)
}

func TestRoundTripAllDay(t *testing.T) {
	start := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	e := mustEvent(t, entity.NewEventParams{
		Title:  "Holiday",
		Start:  start,
		End:    start.AddDate(0, 0, 1),
		AllDay: true,
	})

	content, err := Generate([]*entity.Event{e})
	require.NoError(t, err)

	parsed, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.True(t, parsed[0].AllDay)
	assert.True(t, start.Equal(parsed[0].Start))
	assert.True(t, start.AddDate(0, 0, 1).Equal(parsed[0].End))
}

func TestRoundTripUnicode(t *testing.T) {
	start := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	e := mustEvent(t, entity.NewEventParams{
		Title:       "Встреча команды 会议",
		Location:    "Переговорная 北京",
		Description: strings.Repeat("длинный юникодный текст 世界 ", 15),
		Start:       start,
		End:         start.Add(time.Hour),
	})

	content, err := Generate([]*entity.Event{e})
	require.NoError(t, err)

	parsed, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, e.Title, parsed[0].Title)
	assert.Equal(t, e.Location, parsed[0].Location)
	assert.Equal(t, e.Description, parsed[0].Description)
}
