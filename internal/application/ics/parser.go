package ics

import (
	"strconv"
	"strings"
	"time"

	"easyics/internal/appers"
	"easyics/internal/application/entity"
)

// Состояния построчного разбора документа
type parseState int

const (
	stateOutside parseState = iota
	stateInEvent
	stateInAlarm
)

// ParseReport — результат разбора с диагностикой: сколько VEVENT-блоков
// было отброшено из-за невалидного содержимого.
type ParseReport struct {
	Events  []*entity.Event
	Skipped int
}

// Parse разбирает ICS-документ в список событий.
// Ошибка возвращается только на пустом входе; невалидный VEVENT-блок
// отбрасывается целиком, разбор документа продолжается.
func Parse(content string) ([]*entity.Event, error) {
	report, err := ParseWithReport(content)
	if err != nil {
		return nil, err
	}
	return report.Events, nil
}

// ParseWithReport — то же, что Parse, плюс счётчик отброшенных блоков
func ParseWithReport(content string) (*ParseReport, error) {
	if strings.TrimSpace(content) == "" {
		return nil, appers.NewValidationError("content_empty", "ICS content must not be empty")
	}

	report := &ParseReport{Events: make([]*entity.Event, 0)}

	state := stateOutside
	var fields eventFields

	for _, line := range UnfoldLines(content) {
		// пустые строки пропускаем, но само значение не трогаем:
		// завершающие пробелы в тексте значимы
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		// параметры свойства (DTSTART;TZID=UTC:...) отсекаются от имени
		if i := strings.IndexByte(name, ';'); i >= 0 {
			name = name[:i]
		}

		switch {
		case name == "BEGIN" && value == "VEVENT":
			state = stateInEvent
			fields = eventFields{}
		case name == "END" && value == "VEVENT":
			if state == stateOutside {
				continue
			}
			if e := fields.build(); e != nil {
				report.Events = append(report.Events, e)
			} else {
				report.Skipped++
			}
			state = stateOutside
		case name == "BEGIN" && value == "VALARM" && state == stateInEvent:
			state = stateInAlarm
		case name == "END" && value == "VALARM" && state == stateInAlarm:
			state = stateInEvent
		case state == stateInAlarm:
			fields.alarmLine(name, value)
		case state == stateInEvent:
			fields.eventLine(name, value)
		}
	}

	return report, nil
}

// eventFields — арена полей текущего VEVENT-блока.
// Первая ошибка формата отравляет блок: на END:VEVENT он будет отброшен.
type eventFields struct {
	title        string
	location     string
	description  string
	start        time.Time
	end          time.Time
	allDay       bool
	priority     entity.EventPriority
	reminder     int
	uid          string
	created      time.Time
	lastModified time.Time
	err          error
}

// eventLine обрабатывает одну строку свойства внутри VEVENT.
// Неизвестные имена игнорируются — совместимость вперёд.
func (f *eventFields) eventLine(name, value string) {
	if f.err != nil {
		return
	}

	switch name {
	case "SUMMARY":
		f.title = UnescapeText(value)
	case "LOCATION":
		f.location = UnescapeText(value)
	case "DESCRIPTION":
		f.description = UnescapeText(value)
	case "DTSTART":
		f.start, f.allDay, f.err = ParseDateTime(value)
	case "DTEND":
		f.end, _, f.err = ParseDateTime(value)
	case "PRIORITY":
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			f.err = appers.NewFormatError("priority", value)
			return
		}
		f.priority = parsePriorityValue(v)
	case "UID":
		f.uid = value
	case "CREATED":
		f.created, _, f.err = ParseDateTime(value)
	case "LAST-MODIFIED":
		f.lastModified, _, f.err = ParseDateTime(value)
	}
}

// alarmLine обрабатывает строку внутри VALARM: интересен только TRIGGER
func (f *eventFields) alarmLine(name, value string) {
	if f.err != nil || name != "TRIGGER" {
		return
	}

	minutes, err := parseTrigger(value)
	if err != nil {
		f.err = err
		return
	}
	f.reminder = minutes
}

// parseTrigger разбирает отрицательный триггер напоминания вида -PT<N>M
func parseTrigger(value string) (int, error) {
	v := strings.TrimSpace(value)
	inner, ok := strings.CutPrefix(v, "-PT")
	if !ok {
		return 0, appers.NewFormatError("trigger", value)
	}
	inner, ok = strings.CutSuffix(inner, "M")
	if !ok {
		return 0, appers.NewFormatError("trigger", value)
	}
	minutes, err := strconv.Atoi(inner)
	if err != nil || minutes < 0 {
		return 0, appers.NewFormatError("trigger", value)
	}
	return minutes, nil
}

// build конструирует событие из накопленных полей.
// nil означает, что блок невалиден и должен быть отброшен.
func (f *eventFields) build() *entity.Event {
	if f.err != nil {
		return nil
	}

	e, err := entity.NewEvent(entity.NewEventParams{
		Title:           f.title,
		Start:           f.start,
		End:             f.end,
		Location:        f.location,
		Description:     f.description,
		Priority:        f.priority,
		ReminderMinutes: f.reminder,
		AllDay:          f.allDay,
	})
	if err != nil {
		return nil
	}

	e.UID = f.uid
	e.CreatedAt = f.created
	e.LastModified = f.lastModified
	return e
}
