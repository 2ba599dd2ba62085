package ics

import (
	"strings"
	"time"

	"easyics/internal/appers"
)

// Сериализованные формы даты/времени ICS
const (
	layoutUTC      = "20060102T150405" // + суффикс Z
	layoutFloating = "20060102T150405" // без зоны, нормализуется к UTC
	layoutDate     = "20060102"        // события на весь день
)

// FormatDateTime сериализует момент времени: UTC-форма с суффиксом Z
// по умолчанию, только дата — для событий на весь день.
func FormatDateTime(t time.Time, allDay bool) string {
	if allDay {
		return t.UTC().Format(layoutDate)
	}
	return t.UTC().Format(layoutUTC) + "Z"
}

// ParseDateTime принимает все три сериализованные формы.
// Плавающая форма нормализуется к UTC без обращения к базе таймзон.
// Возвращает признак "только дата". Некорректное значение — *appers.FormatError,
// никаких тихих подстановок текущего времени.
func ParseDateTime(s string) (time.Time, bool, error) {
	v := strings.TrimSpace(s)

	switch {
	case strings.HasSuffix(v, "Z"):
		t, err := time.ParseInLocation(layoutUTC, strings.TrimSuffix(v, "Z"), time.UTC)
		if err != nil {
			return time.Time{}, false, appers.NewFormatError("datetime", s)
		}
		return t, false, nil

	case strings.ContainsRune(v, 'T'):
		t, err := time.ParseInLocation(layoutFloating, v, time.UTC)
		if err != nil {
			return time.Time{}, false, appers.NewFormatError("datetime", s)
		}
		return t, false, nil

	default:
		t, err := time.ParseInLocation(layoutDate, v, time.UTC)
		if err != nil {
			return time.Time{}, false, appers.NewFormatError("datetime", s)
		}
		return t, true, nil
	}
}
