package handler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"easyics/internal/appers"
	"easyics/internal/application/common"
	"easyics/internal/application/entity"
	use_cases "easyics/internal/application/use-cases"
	"easyics/pkg/validator"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	icsContentType = "text/calendar; charset=utf-8"
	icsFilename    = "calendar.ics"
)

type Handler interface {
	DownloadICS(c *fiber.Ctx) error
	ImportICS(c *fiber.Ctx) error
	ExportICS(c *fiber.Ctx) error
	CreateEvent(c *fiber.Ctx) error
	GetEventsByPeriod(c *fiber.Ctx) error
	UpdateEvent(c *fiber.Ctx) error
	DeleteEvent(c *fiber.Ctx) error
	HealthCheck(c *fiber.Ctx) error
}
type HandlerImpl struct {
	usecase use_cases.UseCaser
	logger  *zap.SugaredLogger
}

func NewEventHandler(usecase use_cases.UseCaser, logger *zap.SugaredLogger) *HandlerImpl {
	return &HandlerImpl{
		usecase: usecase,
		logger:  logger,
	}
}

// formatValidationErrors форматирует ошибки валидации в понятный формат для клиента
func formatValidationErrors(err error) fiber.Map {
	var errors []string
	if validationErrors, ok := err.(playgroundvalidator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			tag := e.Tag()
			var message string
			switch tag {
			case "required":
				message = fmt.Sprintf("поле '%s' обязательно для заполнения", field)
			case "min":
				message = fmt.Sprintf("поле '%s' должно содержать минимум %s элементов/символов", field, e.Param())
			case "max":
				message = fmt.Sprintf("поле '%s' должно содержать максимум %s символов", field, e.Param())
			case "iso8601":
				message = fmt.Sprintf("поле '%s' должно быть в формате ISO-8601 (например, 2025-10-26T14:00:00Z)", field)
			case "oneof":
				message = fmt.Sprintf("поле '%s' должно быть одним из: %s", field, e.Param())
			default:
				message = fmt.Sprintf("поле '%s' не прошло валидацию: %s", field, tag)
			}
			errors = append(errors, message)
		}
	} else {
		errors = append(errors, err.Error())
	}
	return fiber.Map{
		"error":   "validation failed",
		"details": errors,
	}
}

// eventsFromRequest собирает записи событий из тела запроса.
// Инварианты (end > start и т.д.) проверяет конструктор записи.
func eventsFromRequest(req *entity.ICSDownloadRequest) ([]*entity.Event, error) {
	events := make([]*entity.Event, 0, len(req.Events))
	for i, data := range req.Events {
		e, err := data.ToEvent()
		if err != nil {
			return nil, fmt.Errorf("событие #%d: %w", i+1, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// HealthCheck godoc
// @Summary     Проверка состояния сервиса
// @Description Проверяет доступность базы данных PostgreSQL и Kafka. Возвращает детальную информацию о состоянии каждого компонента.
// @Accept      json
// @Produce     json
// @Success     200   {object} entity.HealthCheckResponse "Все сервисы доступны"
// @Failure     503   {object} entity.HealthCheckResponse "Один или несколько сервисов недоступны"
// @tags        Health
// @Router      /health [get]
func (h *HandlerImpl) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	dbHealthy, kafkaHealthy, _ := h.usecase.HealthCheck(ctx)

	health := fiber.Map{
		"status":  dbHealthy && kafkaHealthy,
		"message": "success",
		"version": common.Version,
		"checks": fiber.Map{
			"database": fiber.Map{
				"status": dbHealthy,
				"type":   "postgresql",
			},
			"kafka": fiber.Map{
				"status": kafkaHealthy,
				"type":   "kafka",
			},
		},
	}
	if !dbHealthy {
		health["checks"].(fiber.Map)["database"].(fiber.Map)["error"] = "Database connection failed"
		health["message"] = "Some services are unavailable"
	}
	if !kafkaHealthy {
		health["checks"].(fiber.Map)["kafka"].(fiber.Map)["error"] = "Kafka connection failed"
		health["message"] = "Some services are unavailable"
	}

	if !dbHealthy || !kafkaHealthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(health)
	}

	return c.Status(fiber.StatusOK).JSON(health)
}

// DownloadICS godoc
// @Summary     Генерация ICS-файла
// @Description Принимает непустой список событий и возвращает ICS-файл вложением
// @Accept      json
// @Produce     text/calendar
// @Param       body  body     entity.ICSDownloadRequest  true  "Список событий"
// @Success     200
// @Failure     400
// @Failure     500
// @tags        ICS
// @Router      /v1/ics/download [post]
func (h *HandlerImpl) DownloadICS(c *fiber.Ctx) error {
	var req entity.ICSDownloadRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Errorf("error parsing body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	// Валидация структуры
	if err := validator.Validate.Struct(&req); err != nil {
		h.logger.Warnf("validation error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(formatValidationErrors(err))
	}

	events, err := eventsFromRequest(&req)
	if err != nil {
		h.logger.Warnf("event validation error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	content, err := h.usecase.GenerateCalendar(c.Context(), events)
	if err != nil {
		return appers.SanitizeError(c, err)
	}

	c.Set(fiber.HeaderContentType, icsContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+icsFilename)
	return c.Status(fiber.StatusOK).SendString(content)
}

// ImportICS godoc
// @Summary     Импорт ICS-файла
// @Description Разбирает ICS-документ из тела запроса и сохраняет валидные события. Невалидные VEVENT-блоки пропускаются, их число возвращается в ответе.
// @Accept      text/calendar
// @Produce     json
// @Success     200
// @Failure     400
// @Failure     500
// @tags        ICS
// @Router      /v1/ics/import [post]
func (h *HandlerImpl) ImportICS(c *fiber.Ctx) error {
	content := string(c.Body())

	// события, которые не удалось разобрать или сохранить, учтены в skipped
	events, skipped, err := h.usecase.ImportCalendar(c.Context(), content)
	if err != nil {
		return appers.SanitizeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"imported": len(events),
		"skipped":  skipped,
		"events":   events,
	})
}

// ExportICS godoc
// @Summary     Экспорт сохранённых событий в ICS
// @Description Возвращает ICS-файл со всеми сохранёнными событиями за период
// @Produce     text/calendar
// @Param       start  query    string true "Начало периода (например, 2025-10-01T00:00:00Z)"
// @Param       end    query    string true "Конец периода (например, 2025-10-31T23:59:59Z)"
// @Success     200
// @Failure     400
// @Failure     500
// @tags        ICS
// @Router      /v1/ics/export [get]
func (h *HandlerImpl) ExportICS(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	content, err := h.usecase.ExportCalendar(c.Context(), start, end)
	if err != nil {
		return appers.SanitizeError(c, err)
	}

	c.Set(fiber.HeaderContentType, icsContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+icsFilename)
	return c.Status(fiber.StatusOK).SendString(content)
}

// CreateEvent godoc
// @Summary     Создание события
// @Description Создает новое событие и записывает его в БД
// @Accept      json
// @Produce     json
// @Param       body  body     entity.EventData  true  "Данные события"
// @Success     200
// @Failure     400
// @Failure     409
// @Failure     500
// @tags        Event
// @Router      /v1/event [post]
func (h *HandlerImpl) CreateEvent(c *fiber.Ctx) error {
	var data entity.EventData
	err := c.BodyParser(&data)
	if err != nil {
		h.logger.Errorf("error parsing body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	// Валидация структуры
	if err = validator.Validate.Struct(&data); err != nil {
		h.logger.Warnf("validation error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(formatValidationErrors(err))
	}

	// Логическая валидация — в конструкторе записи
	event, err := data.ToEvent()
	if err != nil {
		h.logger.Warnf("event validation error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err = h.usecase.CreateEvent(c.Context(), *event)
	switch {
	case errors.Is(err, appers.ErrEventAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"description": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"description": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"description": "ok", "id": event.ID})
}

// GetEventsByPeriod godoc
// @Summary     Получение событий за период
// @Description Возвращает список событий за период, заданный query-параметрами start и end
// @Produce     json
// @Param       start  query    string true "Дата/время начала периода (например, 2025-10-01T00:00:00Z)"
// @Param       end    query    string true "Дата/время конца периода (например, 2025-10-31T23:59:59Z)"
// @Success     200    {array}  entity.Event
// @Failure     400
// @Failure     500
// @tags        Event
// @Router      /v1/event [get]
func (h *HandlerImpl) GetEventsByPeriod(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	events, err := h.usecase.GetEvent(c.Context(), start, end)
	if err != nil {
		return appers.SanitizeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(events)
}

// UpdateEvent godoc
// @Summary     Обновление события
// @Description Обновляет существующее событие по данным из тела запроса
// @Accept      json
// @Produce     json
// @Param       body  body     entity.Event  true  "Данные события для обновления"
// @Success     200
// @Failure     400
// @Failure     404
// @Failure     500
// @tags        Event
// @Router      /v1/event [patch]
func (h *HandlerImpl) UpdateEvent(c *fiber.Ctx) error {
	var event entity.Event
	err := c.BodyParser(&event)
	if err != nil {
		h.logger.Errorf("error parsing body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if event.ID.IsNil() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id is required",
		})
	}

	err = h.usecase.UpdateEvent(c.Context(), event)
	switch {
	case errors.Is(err, appers.ErrEventNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"description": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"description": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"description": "ok"})
}

// DeleteEvent godoc
// @Summary     Удаление события
// @Description Удаляет событие по идентификатору
// @Accept      json
// @Produce     json
// @Param       id   path     string  true  "ID события"
// @Success     200
// @Failure     404
// @Failure     500
// @tags        Event
// @Router      /v1/event/{id} [delete]
func (h *HandlerImpl) DeleteEvent(c *fiber.Ctx) error {
	id := c.Params("id")
	err := h.usecase.DeleteEvent(c.Context(), id)
	switch {
	case errors.Is(err, appers.ErrEventNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"description": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"description": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"description": "ok"})
}

// parsePeriod читает и валидирует query-параметры start и end
func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	startStr := c.Query("start")
	endStr := c.Query("end")

	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, errors.New("start and end are required")
	}

	// Декодируем URL-encoded параметры
	var err error
	startStr, err = url.QueryUnescape(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start parameter encoding")
	}
	endStr, err = url.QueryUnescape(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end parameter encoding")
	}

	// Убираем кавычки, если они есть
	startStr = strings.Trim(startStr, `"`)
	endStr = strings.Trim(endStr, `"`)

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start format, expected RFC3339 (e.g., 2025-10-01T00:00:00Z)")
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end format, expected RFC3339 (e.g., 2025-10-31T23:59:59Z)")
	}

	return start.UTC(), end.UTC(), nil
}
