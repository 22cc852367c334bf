package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/yigit/traineehub/internal/config"
)

const (
	pingTimeout      = 5 * time.Second
	alertScanTimeout = 2 * time.Minute
	alertScanRetries = 3
)

// Runner owns the asynq client, worker server and scheduler.
type Runner struct {
	client    *asynq.Client
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	logger    zerolog.Logger
	now       func() time.Time
}

// CheckRedis verifies that Redis answers before any asynq component is started.
func CheckRedis(ctx context.Context, opt asynq.RedisClientOpt) error {
	client := redis.NewClient(&redis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis at %s is unreachable: %w", opt.Addr, err)
	}
	return nil
}

// NewRunner wires the alert scan into asynq. The scan is registered on the
// scheduler with the configured cron spec and can also be enqueued on demand.
func NewRunner(cfg *config.Config, scanner AlertScanner, log zerolog.Logger) (*Runner, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if err := CheckRedis(context.Background(), redisOpt); err != nil {
		return nil, err
	}

	concurrency := cfg.Jobs.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	mux := asynq.NewServeMux()
	mux.Handle(TypeAlertScan, NewAlertScanHandler(scanner, log))

	r := &Runner{
		client: asynq.NewClient(redisOpt),
		server: asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: concurrency,
			Logger:      asynqLogger{log: log},
		}),
		scheduler: asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
			Logger:   asynqLogger{log: log},
			Location: cfg.Location(),
		}),
		mux:    mux,
		logger: log,
		now:    time.Now,
	}

	task, err := NewAlertScanTask(TriggerSchedule, r.now())
	if err != nil {
		return nil, err
	}
	entryID, err := r.scheduler.Register(cfg.Jobs.AlertScanCron, task,
		asynq.MaxRetry(alertScanRetries), asynq.Timeout(alertScanTimeout))
	if err != nil {
		_ = r.client.Close()
		return nil, fmt.Errorf("failed to schedule alert scan %q: %w", cfg.Jobs.AlertScanCron, err)
	}

	log.Info().Str("entryID", entryID).Str("cron", cfg.Jobs.AlertScanCron).Msg("Alert scan scheduled")
	return r, nil
}

// Start runs the worker server and the scheduler in the background.
func (r *Runner) Start() error {
	if err := r.server.Start(r.mux); err != nil {
		return fmt.Errorf("failed to start job worker: %w", err)
	}
	if err := r.scheduler.Start(); err != nil {
		r.server.Shutdown()
		return fmt.Errorf("failed to start job scheduler: %w", err)
	}
	r.logger.Info().Msg("Job worker and scheduler started")
	return nil
}

// EnqueueAlertScan queues a manual alert scan and returns its task id.
func (r *Runner) EnqueueAlertScan(ctx context.Context) (string, error) {
	task, err := NewAlertScanTask(TriggerManual, r.now())
	if err != nil {
		return "", err
	}

	info, err := r.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(alertScanRetries), asynq.Timeout(alertScanTimeout))
	if err != nil {
		return "", fmt.Errorf("failed to enqueue alert scan: %w", err)
	}

	r.logger.Info().Str("taskID", info.ID).Msg("Alert scan enqueued")
	return info.ID, nil
}

// Shutdown stops the scheduler first so no task is produced for a stopped worker.
func (r *Runner) Shutdown() {
	r.scheduler.Shutdown()
	r.server.Shutdown()
	if err := r.client.Close(); err != nil {
		r.logger.Error().Err(err).Msg("Failed to close asynq client")
	}
	r.logger.Info().Msg("Job worker and scheduler stopped")
}
