package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// AlertScanner stores notifications for the current alerts and reports how many were new.
type AlertScanner interface {
	ScanAlerts(ctx context.Context) (int, error)
}

// NewAlertScanHandler returns the asynq handler of TypeAlertScan.
func NewAlertScanHandler(scanner AlertScanner, log zerolog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload AlertScanPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			// A malformed payload will never succeed.
			return fmt.Errorf("decode alert scan payload: %v: %w", err, asynq.SkipRetry)
		}

		created, err := scanner.ScanAlerts(ctx)
		if err != nil {
			log.Error().Err(err).Str("triggeredBy", payload.TriggeredBy).Msg("Alert scan failed")
			return err
		}

		log.Info().
			Str("triggeredBy", payload.TriggeredBy).
			Int("created", created).
			Msg("Alert scan task finished")
		return nil
	}
}
