package appers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// ValidationError — структурная ошибка входных данных: пустой список событий,
// пустой документ, невалидное поле при конструировании события.
// Rule содержит конкретное нарушенное правило.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Rule, e.Message)
}

func NewValidationError(rule, format string, args ...any) *ValidationError {
	return &ValidationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// FormatError — значение не декодируется по правилам формата ICS
// (дата/время, приоритет, триггер напоминания).
// При генерации фатальна для всего вызова, при парсинге приводит
// к отбрасыванию одного VEVENT-блока.
type FormatError struct {
	Kind  string // datetime | priority | trigger
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s value: %q", e.Kind, e.Value)
}

func NewFormatError(kind, value string) *FormatError {
	return &FormatError{Kind: kind, Value: value}
}

func IsFormat(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// ErrorResp — ошибка уровня HTTP с кодом ответа
type ErrorResp struct {
	StatusCode int    `json:"statusCode,omitempty"`
	StatusDesc string `json:"statusDesc,omitempty"`
}

func (e ErrorResp) Error() string {
	return e.StatusDesc
}

var (
	ErrEventNotFound = ErrorResp{
		http.StatusNotFound,
		"событие не найдено",
	}
	ErrEventAlreadyExists = ErrorResp{
		http.StatusForbidden,
		"событие уже создано",
	}
)

func SanitizeError(c *fiber.Ctx, err error) error {
	var errResp ErrorResp

	switch {
	case errors.As(err, &errResp):
		return c.Status(errResp.StatusCode).JSON(fiber.Map{
			"message": errResp.StatusDesc,
		})
	case IsValidation(err) || IsFormat(err):
		return NewErr(c, http.StatusBadRequest, err)
	default:
		return NewErr(c, http.StatusInternalServerError, err)
	}
}

func NewErr(ctx *fiber.Ctx, status int, err error) error {
	return ctx.Status(status).JSON(fiber.Map{
		"message": err.Error(),
	})
}
