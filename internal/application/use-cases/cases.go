package use_cases

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"easyics/internal/appers"
	"easyics/internal/application/entity"
	"easyics/internal/application/service"
	"easyics/pkg/config"

	"go.uber.org/zap"
)

type UseCaser interface {
	GenerateCalendar(ctx context.Context, events []*entity.Event) (string, error)
	ImportCalendar(ctx context.Context, content string) ([]*entity.Event, int, error)
	ExportCalendar(ctx context.Context, start, end time.Time) (string, error)

	CreateEvent(ctx context.Context, event entity.Event) error
	GetEvent(ctx context.Context, start, end time.Time) ([]*entity.Event, error)
	UpdateEvent(ctx context.Context, event entity.Event) error
	DeleteEvent(ctx context.Context, id string) error
	DeleteOldEvents(ctx context.Context)
	RunRelay(ctx context.Context)
	ConsumerMessage(ctx context.Context, msg []byte, msgTime time.Time)

	HealthCheck(ctx context.Context) (dbHealthy bool, kafkaHealthy bool, err error)
}
type UseCase struct {
	service service.Service
	logger  *zap.SugaredLogger
	conf    *config.Config
}

func NewUseCase(service service.Service, logger *zap.SugaredLogger, conf *config.Config) *UseCase {
	return &UseCase{
		service: service,
		logger:  logger,
		conf:    conf,
	}
}

func (u *UseCase) HealthCheck(ctx context.Context) (dbHealthy bool, kafkaHealthy bool, err error) {
	return u.service.HealthCheck(ctx)
}

func (u *UseCase) GenerateCalendar(ctx context.Context, events []*entity.Event) (string, error) {
	u.logger.Debugf("[events: %d] GenerateCalendar started", len(events))
	return u.service.GenerateCalendar(ctx, events)
}

func (u *UseCase) ImportCalendar(ctx context.Context, content string) ([]*entity.Event, int, error) {
	u.logger.Debugf("[size: %d] ImportCalendar started", len(content))
	return u.service.ImportCalendar(ctx, content)
}

func (u *UseCase) ExportCalendar(ctx context.Context, start, end time.Time) (string, error) {
	u.logger.Debugf("[start: %s, end: %s] ExportCalendar started", start, end)
	return u.service.ExportCalendar(ctx, start, end)
}

func (u *UseCase) CreateEvent(ctx context.Context, event entity.Event) error {
	u.logger.Debugf("[event: %s] CreateEvent started", event.ID)
	return u.service.CreateEvent(ctx, &event)
}

func (u *UseCase) GetEvent(ctx context.Context, start, end time.Time) ([]*entity.Event, error) {
	u.logger.Debugf("[start: %s, end: %s] GetEvent started", start, end)
	return u.service.GetEventsByPeriod(ctx, start, end)
}

func (u *UseCase) UpdateEvent(ctx context.Context, event entity.Event) error {
	u.logger.Debugf("[event: %s] UpdateEvent started", event.ID)
	return u.service.UpdateEvent(ctx, &event)
}

func (u *UseCase) DeleteEvent(ctx context.Context, id string) error {
	u.logger.Debugf("[event: %s] DeleteEvent started", id)
	return u.service.DeleteEvent(ctx, id)
}

func (u *UseCase) DeleteOldEvents(ctx context.Context) {
	days := u.conf.Cron.DaysToDelete
	u.logger.Infof("DeleteOldEvents called with daysToDelete=%d", days)
	u.service.DeleteOldEventsByDays(ctx, &days)
}

func (u *UseCase) RunRelay(ctx context.Context) {
	u.logger.Debug("relay started")
	u.service.RelayEventRun(ctx)
}

// ConsumerMessage принимает событие из входного топика (извлечённое из
// свободного текста внешним парсером) и сохраняет его обычным путём
func (u *UseCase) ConsumerMessage(ctx context.Context, msg []byte, msgTime time.Time) {
	u.logger.Debugf("consumer message: %s, time: %v", msg, msgTime)

	var data entity.EventData
	if err := json.Unmarshal(msg, &data); err != nil {
		u.logger.Warnf("consumer: skip message, invalid JSON: %v", err)
		return
	}

	event, err := data.ToEvent()
	if err != nil {
		u.logger.Warnf("consumer: skip message, invalid event: %v", err)
		return
	}

	if err := u.service.CreateEvent(ctx, event); err != nil {
		if errors.Is(err, appers.ErrEventAlreadyExists) {
			u.logger.Infof("[event: %s] consumer: already exists", event.ID)
			return
		}
		u.logger.Errorf("[event: %s] consumer: store failed: %v", event.ID, err)
	}
}
