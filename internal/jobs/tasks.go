// Package jobs runs background work on asynq: the periodic alert scan that turns
// dashboard alerts into stored notifications.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TypeAlertScan is the asynq task type of an alert scan.
const TypeAlertScan = "alerts:scan"

// Task trigger sources
const (
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
)

// AlertScanPayload records who asked for a scan.
type AlertScanPayload struct {
	TriggeredBy string    `json:"triggered_by"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewAlertScanTask builds an alert scan task.
func NewAlertScanTask(triggeredBy string, requestedAt time.Time) (*asynq.Task, error) {
	payload, err := json.Marshal(AlertScanPayload{TriggeredBy: triggeredBy, RequestedAt: requestedAt})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAlertScan, payload), nil
}
