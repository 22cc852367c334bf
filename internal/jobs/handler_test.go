package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScanner struct {
	calls   int
	created int
	err     error
}

func (f *fakeScanner) ScanAlerts(context.Context) (int, error) {
	f.calls++
	return f.created, f.err
}

func TestNewAlertScanTask(t *testing.T) {
	at := time.Date(2024, time.August, 15, 6, 0, 0, 0, time.UTC)
	task, err := NewAlertScanTask(TriggerManual, at)
	require.NoError(t, err)
	assert.Equal(t, TypeAlertScan, task.Type())

	var payload AlertScanPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, TriggerManual, payload.TriggeredBy)
	assert.True(t, at.Equal(payload.RequestedAt))
}

func TestAlertScanHandler(t *testing.T) {
	var buf bytes.Buffer
	scanner := &fakeScanner{created: 4}
	handler := NewAlertScanHandler(scanner, zerolog.New(&buf))

	task, err := NewAlertScanTask(TriggerSchedule, time.Now())
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	assert.Equal(t, 1, scanner.calls)
	assert.Contains(t, buf.String(), `"created":4`)
}

func TestAlertScanHandler_ScanFailureIsRetried(t *testing.T) {
	scanner := &fakeScanner{err: errors.New("alerts unavailable")}
	handler := NewAlertScanHandler(scanner, zerolog.Nop())

	task, err := NewAlertScanTask(TriggerSchedule, time.Now())
	require.NoError(t, err)

	err = handler(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestAlertScanHandler_BadPayloadSkipsRetry(t *testing.T) {
	scanner := &fakeScanner{}
	handler := NewAlertScanHandler(scanner, zerolog.Nop())

	err := handler(context.Background(), asynq.NewTask(TypeAlertScan, []byte("{not json")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
	assert.Zero(t, scanner.calls)
}

func TestAsynqLogger(t *testing.T) {
	var buf bytes.Buffer
	l := asynqLogger{log: zerolog.New(&buf)}
	l.Warn("lease expired for ", "task-1")
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "lease expired for task-1")
}
