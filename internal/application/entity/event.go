package entity

import (
	"time"
	"unicode/utf8"

	"easyics/internal/appers"

	"github.com/gofrs/uuid"
)

// EventPriority — закрытое множество приоритетов события.
// Числовое представление (1/5/9) живёт только на границе сериализации ICS.
type EventPriority string

const (
	PriorityLow    EventPriority = "LOW"
	PriorityMedium EventPriority = "MEDIUM"
	PriorityHigh   EventPriority = "HIGH"
)

func (p EventPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

const MaxTitleLength = 100

// Event — валидная запись календарного события.
// Конструируется только через NewEvent, после конструирования не изменяется.
// UID, CreatedAt и LastModified проставляются генератором, не вызывающей стороной.
type Event struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Start           time.Time     `json:"start"`
	End             time.Time     `json:"end"`
	Location        string        `json:"location,omitempty"`
	Description     string        `json:"description,omitempty"`
	Priority        EventPriority `json:"priority"`
	ReminderMinutes int           `json:"reminderMinutes,omitempty"`
	AllDay          bool          `json:"allDay,omitempty"`

	UID          string    `json:"uid,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	LastModified time.Time `json:"lastModified,omitempty"`
}

type NewEventParams struct {
	Title           string
	Start           time.Time
	End             time.Time
	Location        string
	Description     string
	Priority        EventPriority
	ReminderMinutes int
	AllDay          bool
}

// NewEvent валидирует параметры и возвращает событие либо *appers.ValidationError
// с конкретным нарушенным правилом. Частично валидных событий не существует.
func NewEvent(p NewEventParams) (*Event, error) {
	if p.Title == "" {
		return nil, appers.NewValidationError("title_required", "title must not be empty")
	}
	if utf8.RuneCountInString(p.Title) > MaxTitleLength {
		return nil, appers.NewValidationError("title_too_long", "title exceeds %d characters", MaxTitleLength)
	}
	if p.Start.IsZero() {
		return nil, appers.NewValidationError("start_required", "start time must be set")
	}
	if p.End.IsZero() {
		return nil, appers.NewValidationError("end_required", "end time must be set")
	}
	if !p.End.After(p.Start) {
		return nil, appers.NewValidationError("end_before_start", "end time %s must be after start time %s",
			p.End.Format(time.RFC3339), p.Start.Format(time.RFC3339))
	}
	if p.ReminderMinutes < 0 {
		return nil, appers.NewValidationError("reminder_negative", "reminder minutes must be >= 0, got %d", p.ReminderMinutes)
	}

	priority := p.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, appers.NewValidationError("priority_unknown", "priority must be one of LOW, MEDIUM, HIGH, got %q", priority)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:              id,
		Title:           p.Title,
		Start:           p.Start,
		End:             p.End,
		Location:        p.Location,
		Description:     p.Description,
		Priority:        priority,
		ReminderMinutes: p.ReminderMinutes,
		AllDay:          p.AllDay,
	}, nil
}

// EventData — модель события в запросах API
type EventData struct {
	Title           string `json:"title" validate:"required,min=1,max=100"`
	Start           string `json:"start" validate:"required,iso8601"`
	End             string `json:"end" validate:"required,iso8601"`
	Location        string `json:"location" validate:"omitempty,max=200"`
	Description     string `json:"description" validate:"omitempty,max=500"`
	Priority        string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	ReminderMinutes int    `json:"reminderMinutes" validate:"omitempty,min=0"`
}

// ICSDownloadRequest — запрос на генерацию ICS-файла
type ICSDownloadRequest struct {
	Events []EventData `json:"events" validate:"required,min=1,dive"`
}

// ToEvent преобразует данные запроса в валидную запись события.
// Время принимается в ISO-8601: с таймзоной или плавающее (трактуется как UTC).
func (d EventData) ToEvent() (*Event, error) {
	start, err := ParseISOTime(d.Start)
	if err != nil {
		return nil, appers.NewFormatError("datetime", d.Start)
	}
	end, err := ParseISOTime(d.End)
	if err != nil {
		return nil, appers.NewFormatError("datetime", d.End)
	}

	return NewEvent(NewEventParams{
		Title:           d.Title,
		Start:           start,
		End:             end,
		Location:        d.Location,
		Description:     d.Description,
		Priority:        EventPriority(d.Priority),
		ReminderMinutes: d.ReminderMinutes,
	})
}

// ParseISOTime разбирает ISO-8601 время: RFC3339 либо плавающую форму без зоны
func ParseISOTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
