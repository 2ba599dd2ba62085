package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"easyics/internal/application/entity"
	"easyics/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flakyTransactions отказывает на заданном по счёту вызове CreateEvent
type flakyTransactions struct {
	calls  int
	failOn int
	stored []*entity.Event
}

func (f *flakyTransactions) CreateEvent(ctx context.Context, in *entity.Event, eventType entity.OutboxEventType, payload []byte) error {
	f.calls++
	if f.failOn > 0 && f.calls == f.failOn {
		return errors.New("insert failed")
	}
	f.stored = append(f.stored, in)
	return nil
}

func (f *flakyTransactions) GetOperationsFromOutbox(ctx context.Context, c config.RelayConfig) ([]entity.OutboxEvent, error) {
	return nil, nil
}

func (f *flakyTransactions) MarkSentAndUpdateEvent(ctx context.Context, outboxID int) error {
	return nil
}

func importDocument() string {
	return strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"DTSTART:20251026T140000Z",
		"DTEND:20251026T150000Z",
		"SUMMARY:First event",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"DTSTART:20251027T100000Z",
		"DTEND:20251027T110000Z",
		"SUMMARY:Second event",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")
}

func TestImportCalendarStoresAllEvents(t *testing.T) {
	tx := &flakyTransactions{}
	svc := NewService(nil, tx, nil, zap.NewNop().Sugar(), nil, nil)

	stored, skipped, err := svc.ImportCalendar(context.Background(), importDocument())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Zero(t, skipped)
	assert.Len(t, tx.stored, 2)
}

func TestImportCalendarContinuesPastStoreFailure(t *testing.T) {
	// отказ хранения на первом событии не прерывает импорт остальных:
	// неудачное событие попадает в skipped
	tx := &flakyTransactions{failOn: 1}
	svc := NewService(nil, tx, nil, zap.NewNop().Sugar(), nil, nil)

	stored, skipped, err := svc.ImportCalendar(context.Background(), importDocument())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Second event", stored[0].Title)
	assert.Equal(t, 1, skipped)
}
