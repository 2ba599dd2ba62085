package ics

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"easyics/internal/appers"
	"easyics/internal/application/entity"

	"github.com/gofrs/uuid"
)

// Константы формата ICS
const (
	Version  = "2.0"
	ProdID   = "-//Easy ICS//Easy ICS v1.0//CH"
	CalScale = "GREGORIAN"
	Method   = "PUBLISH"

	calendarName = "Easy ICS Calendar"
	uidDomain    = "easy-ics.local"
)

// Generate собирает ICS-документ из непустого списка событий.
// Порядок VEVENT-блоков повторяет порядок входного списка.
// Пустой список — *appers.ValidationError: документа без событий не бывает.
func Generate(events []*entity.Event) (string, error) {
	if len(events) == 0 {
		return "", appers.NewValidationError("events_empty", "events list must not be empty")
	}

	now := time.Now().UTC()

	lines := calendarHeader(now)
	for _, e := range events {
		lines = append(lines, eventBlock(e, now)...)
	}
	lines = append(lines, "END:VCALENDAR")

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(FoldLine(l))
	}
	return b.String(), nil
}

func calendarHeader(now time.Time) []string {
	return []string{
		"BEGIN:VCALENDAR",
		"VERSION:" + Version,
		"PRODID:" + ProdID,
		"CALSCALE:" + CalScale,
		"METHOD:" + Method,
		"X-WR-CALNAME:" + calendarName,
		"X-WR-TIMEZONE:UTC",
		"DTSTAMP:" + FormatDateTime(now, false),
		"BEGIN:VTIMEZONE",
		"TZID:UTC",
		"BEGIN:STANDARD",
		"DTSTART:19700101T000000",
		"TZOFFSETFROM:+0000",
		"TZOFFSETTO:+0000",
		"TZNAME:UTC",
		"END:STANDARD",
		"END:VTIMEZONE",
	}
}

// eventBlock собирает один VEVENT. Порядок полей — контракт совместимости,
// пустые опциональные поля не эмитятся вовсе.
func eventBlock(e *entity.Event, now time.Time) []string {
	stamp := FormatDateTime(now, false)

	block := []string{
		"BEGIN:VEVENT",
		"UID:" + newUID(e.Start),
		"DTSTAMP:" + stamp,
		"DTSTART:" + FormatDateTime(e.Start, e.AllDay),
		"DTEND:" + FormatDateTime(e.End, e.AllDay),
		"CREATED:" + stamp,
		"LAST-MODIFIED:" + stamp,
		"SUMMARY:" + EscapeText(e.Title),
	}

	if e.Location != "" {
		block = append(block, "LOCATION:"+EscapeText(e.Location))
	}
	if e.Description != "" {
		block = append(block, "DESCRIPTION:"+EscapeText(e.Description))
	}

	block = append(block,
		"STATUS:CONFIRMED",
		fmt.Sprintf("PRIORITY:%d", priorityValue(e.Priority)),
	)

	if e.ReminderMinutes > 0 {
		block = append(block,
			"BEGIN:VALARM",
			"ACTION:DISPLAY",
			fmt.Sprintf("TRIGGER:-PT%dM", e.ReminderMinutes),
			"DESCRIPTION:Event Reminder",
			"END:VALARM",
		)
	}

	return append(block, "END:VEVENT")
}

// newUID: случайная hex-компонента + epoch начала события + доменный суффикс
func newUID(start time.Time) string {
	u := uuid.Must(uuid.NewV4())
	return fmt.Sprintf("%s-%d@%s", hex.EncodeToString(u.Bytes())[:8], start.Unix(), uidDomain)
}

// priorityValue отображает приоритет в числовую трёхточечную шкалу ICS
func priorityValue(p entity.EventPriority) int {
	switch p {
	case entity.PriorityLow:
		return 1
	case entity.PriorityHigh:
		return 9
	default:
		return 5
	}
}

// parsePriorityValue — обратное отображение: значение вне трёх опорных точек
// прижимается к ближайшему уровню (>=7 HIGH, >=4 MEDIUM, иначе LOW)
func parsePriorityValue(v int) entity.EventPriority {
	switch {
	case v >= 7:
		return entity.PriorityHigh
	case v >= 4:
		return entity.PriorityMedium
	default:
		return entity.PriorityLow
	}
}
