package entity

import (
	"strings"
	"testing"
	"time"

	"easyics/internal/appers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() NewEventParams {
	start := time.Date(2025, 10, 26, 14, 0, 0, 0, time.UTC)
	return NewEventParams{
		Title: "Meeting",
		Start: start,
		End:   start.Add(time.Hour),
	}
}

func TestNewEventValid(t *testing.T) {
	e, err := NewEvent(validParams())
	require.NoError(t, err)

	assert.Equal(t, "Meeting", e.Title)
	assert.Equal(t, PriorityMedium, e.Priority, "приоритет по умолчанию — MEDIUM")
	assert.Zero(t, e.ReminderMinutes)
	assert.False(t, e.ID.IsNil())
}

func TestNewEventValidationRules(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*NewEventParams)
		rule   string
	}{
		{"empty title", func(p *NewEventParams) { p.Title = "" }, "title_required"},
		{"title too long", func(p *NewEventParams) { p.Title = strings.Repeat("x", MaxTitleLength+1) }, "title_too_long"},
		{"zero start", func(p *NewEventParams) { p.Start = time.Time{} }, "start_required"},
		{"zero end", func(p *NewEventParams) { p.End = time.Time{} }, "end_required"},
		{"end equals start", func(p *NewEventParams) { p.End = p.Start }, "end_before_start"},
		{"end before start", func(p *NewEventParams) { p.End = p.Start.Add(-time.Minute) }, "end_before_start"},
		{"negative reminder", func(p *NewEventParams) { p.ReminderMinutes = -5 }, "reminder_negative"},
		{"unknown priority", func(p *NewEventParams) { p.Priority = "URGENT" }, "priority_unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)

			e, err := NewEvent(p)
			require.Error(t, err)
			assert.Nil(t, e, "невалидного события не существует даже частично")

			var ve *appers.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.rule, ve.Rule)
		})
	}
}

func TestNewEventTitleLengthCountsRunes(t *testing.T) {
	// кириллический заголовок в 100 рун длиннее 100 байт, но валиден
	p := validParams()
	p.Title = strings.Repeat("я", MaxTitleLength)

	_, err := NewEvent(p)
	assert.NoError(t, err)
}

func TestEventDataToEvent(t *testing.T) {
	d := EventData{
		Title:    "Call",
		Start:    "2025-10-26T14:00:00Z",
		End:      "2025-10-26T15:00:00",
		Location: "Office",
		Priority: "HIGH",
	}

	e, err := d.ToEvent()
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, e.Priority)
	assert.True(t, time.Date(2025, 10, 26, 14, 0, 0, 0, time.UTC).Equal(e.Start))
	// плавающее время трактуется как UTC
	assert.True(t, time.Date(2025, 10, 26, 15, 0, 0, 0, time.UTC).Equal(e.End))
}

func TestEventDataToEventBadTime(t *testing.T) {
	d := EventData{Title: "Call", Start: "26.10.2025 14:00", End: "2025-10-26T15:00:00Z"}

	_, err := d.ToEvent()
	require.Error(t, err)
	assert.True(t, appers.IsFormat(err))
}
