package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// Validate - singleton экземпляр валидатора для переиспользования
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Регистрируем кастомные валидаторы
	_ = Validate.RegisterValidation("iso8601", validateISO8601)
	_ = Validate.RegisterValidation("iso8601_optional", validateISO8601Optional)
}

// validateISO8601 проверяет, что строка является валидной датой-временем:
// RFC3339 (с зоной) или плавающая форма "2006-01-02T15:04:05"
func validateISO8601(fl validator.FieldLevel) bool {
	return isISO8601(fl.Field().String())
}

// validateISO8601Optional проверяет дату, но разрешает пустую строку
func validateISO8601Optional(fl validator.FieldLevel) bool {
	dateStr := fl.Field().String()
	if dateStr == "" {
		return true // опциональное поле может быть пустым
	}
	return isISO8601(dateStr)
}

func isISO8601(dateStr string) bool {
	if dateStr == "" {
		return false
	}
	if _, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02T15:04:05", dateStr)
	return err == nil
}
