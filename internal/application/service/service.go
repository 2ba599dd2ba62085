package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"easyics/internal/appers"
	"easyics/internal/application/entity"
	"easyics/internal/application/ics"
	"easyics/internal/application/repo"
	"easyics/internal/transport/producer"
	"easyics/pkg/config"
	"easyics/pkg/metrics"

	"go.uber.org/zap"
)

type Service interface {
	GenerateCalendar(ctx context.Context, events []*entity.Event) (string, error)
	ImportCalendar(ctx context.Context, content string) ([]*entity.Event, int, error)
	ExportCalendar(ctx context.Context, start, end time.Time) (string, error)

	CreateEvent(ctx context.Context, event *entity.Event) error
	GetEventsByPeriod(ctx context.Context, start, end time.Time) ([]*entity.Event, error)
	UpdateEvent(ctx context.Context, event *entity.Event) error
	DeleteEvent(ctx context.Context, id string) error
	DeleteOldEventsByDays(ctx context.Context, days *int)
	RelayEventRun(ctx context.Context)

	HealthCheck(ctx context.Context) (dbHealthy bool, kafkaHealthy bool, err error)
}

type ServiceImpl struct {
	repo          repo.Repo
	transactions  repo.Transactions
	kafkaProducer producer.Producer
	logger        *zap.SugaredLogger
	cfg           *config.RelayConfig
	m             *metrics.Metrics
}

func NewService(repo repo.Repo, transactions repo.Transactions, kafkaProducer producer.Producer, logger *zap.SugaredLogger, cfg *config.RelayConfig, m *metrics.Metrics) *ServiceImpl {
	return &ServiceImpl{
		repo:          repo,
		transactions:  transactions,
		kafkaProducer: kafkaProducer,
		logger:        logger,
		cfg:           cfg,
		m:             m,
	}
}

// HealthCheck проверяет доступность БД и Kafka
func (s *ServiceImpl) HealthCheck(ctx context.Context) (dbHealthy bool, kafkaHealthy bool, err error) {
	dbErr := s.repo.HealthCheck(ctx)
	dbHealthy = dbErr == nil

	kafkaErr := s.kafkaProducer.HealthCheck(ctx)
	kafkaHealthy = kafkaErr == nil

	// Возвращаем ошибку только если обе проверки провалились
	if !dbHealthy && !kafkaHealthy {
		return dbHealthy, kafkaHealthy, fmt.Errorf("database: %v, kafka: %v", dbErr, kafkaErr)
	}

	return dbHealthy, kafkaHealthy, nil
}

// GenerateCalendar собирает ICS-документ из списка событий.
// Кодек чистый, состояния у сервиса нет — параллельные вызовы безопасны.
func (s *ServiceImpl) GenerateCalendar(ctx context.Context, events []*entity.Event) (string, error) {
	s.logger.Debugf("[events: %d] GenerateCalendar started", len(events))

	content, err := ics.Generate(events)
	if err != nil {
		s.logger.Warnf("[events: %d] generate failed: %v", len(events), err)
		return "", err
	}

	if s.m != nil {
		s.m.ICS.DocumentsGenerated.WithLabelValues("request").Inc()
		s.m.ICS.EventsSerialized.Add(float64(len(events)))
	}
	return content, nil
}

// ImportCalendar разбирает ICS-документ и сохраняет валидные события.
// Невалидные VEVENT-блоки отбрасываются, их количество возвращается вторым значением.
func (s *ServiceImpl) ImportCalendar(ctx context.Context, content string) ([]*entity.Event, int, error) {
	s.logger.Debugf("[size: %d] ImportCalendar started", len(content))

	report, err := ics.ParseWithReport(content)
	if err != nil {
		return nil, 0, err
	}

	if s.m != nil {
		s.m.ICS.EventsParsed.Add(float64(len(report.Events)))
		s.m.ICS.BlocksSkipped.Add(float64(report.Skipped))
	}
	if report.Skipped > 0 {
		s.logger.Warnf("import: %d malformed VEVENT block(s) skipped", report.Skipped)
	}

	// частичный отказ хранения не прерывает импорт: неудачные события
	// попадают в счётчик skipped, остальные сохраняются
	stored := make([]*entity.Event, 0, len(report.Events))
	skipped := report.Skipped
	for _, e := range report.Events {
		payload, err := json.Marshal(e)
		if err != nil {
			s.logger.Errorf("[event: %s] failed to marshal event to JSON: %v", e.ID, err)
			skipped++
			continue
		}
		if err := s.transactions.CreateEvent(ctx, e, entity.EventImported, payload); err != nil {
			s.logger.Errorf("[event: %s] import store failed: %v", e.ID, err)
			skipped++
			continue
		}
		stored = append(stored, e)
	}

	return stored, skipped, nil
}

// ExportCalendar генерирует ICS-документ из сохранённых событий за период
func (s *ServiceImpl) ExportCalendar(ctx context.Context, start, end time.Time) (string, error) {
	s.logger.Debugf("[start: %s, end: %s] ExportCalendar started", start, end)

	events, err := s.repo.GetEvents(ctx, start, end)
	if err != nil {
		return "", err
	}
	if len(events) == 0 {
		return "", appers.NewValidationError("events_empty", "no events in period %s - %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	content, err := ics.Generate(events)
	if err != nil {
		return "", err
	}

	if s.m != nil {
		s.m.ICS.DocumentsGenerated.WithLabelValues("export").Inc()
		s.m.ICS.EventsSerialized.Add(float64(len(events)))
	}
	return content, nil
}

func (s *ServiceImpl) CreateEvent(ctx context.Context, event *entity.Event) error {
	s.logger.Debugf("[event: %s] CreateEvent started", event.ID)

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf("[event: %s] failed to marshal event to JSON: %v", event.ID, err)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return s.transactions.CreateEvent(ctx, event, entity.EventCreated, payload)
}

func (s *ServiceImpl) GetEventsByPeriod(ctx context.Context, start, end time.Time) ([]*entity.Event, error) {
	s.logger.Debugf("[start: %s, end: %s] GetEventsByPeriod started", start, end)

	return s.repo.GetEvents(ctx, start, end)
}

func (s *ServiceImpl) UpdateEvent(ctx context.Context, event *entity.Event) error {
	s.logger.Debugf("[event: %s] UpdateEvent started", event.ID)

	return s.repo.UpdateEvent(ctx, event)
}

func (s *ServiceImpl) DeleteEvent(ctx context.Context, id string) error {
	s.logger.Debugf("[event: %s] DeleteEvent started", id)

	return s.repo.DeleteEvent(ctx, id)
}

func (s *ServiceImpl) DeleteOldEventsByDays(ctx context.Context, days *int) {
	s.logger.Debugf("[days: %d] DeleteOldEventsByDays started", days)

	_ = s.repo.DeleteOldEvents(ctx, days)
}
