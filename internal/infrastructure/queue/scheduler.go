package queue

import (
	"time"

	"tattoo-backend/internal/shared"
	"tattoo-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// Scheduler registers the periodic maintenance jobs. It runs inside the
// worker binary, next to the asynq server that consumes them.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, redisPassword string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)
	return &Scheduler{scheduler: scheduler}
}

func (s *Scheduler) RegisterJobs() error {
	if err := s.registerClearExpiredCartsJob(); err != nil {
		return err
	}
	if err := s.registerPurgeRejectedCommentsJob(); err != nil {
		return err
	}
	return nil
}

// ================================================
// JOB 1: Clear Expired Carts (Hourly)
// ================================================
func (s *Scheduler) registerClearExpiredCartsJob() error {
	task := asynq.NewTask(shared.TypeClearExpiredCarts, nil)

	_, err := s.scheduler.Register(
		"0 * * * *", // Hourly
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register ClearExpiredCarts job", err)
		return err
	}

	logger.Info("[SCHEDULER] Registered: clear expired carts (hourly)")
	return nil
}

// ================================================
// JOB 2: Purge Rejected Comments (Daily at 3 AM)
// ================================================
func (s *Scheduler) registerPurgeRejectedCommentsJob() error {
	task := asynq.NewTask(shared.TypePurgeRejectedComments, nil)

	_, err := s.scheduler.Register(
		"0 3 * * *", // Daily at 3 AM
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register PurgeRejectedComments job", err)
		return err
	}

	logger.Info("[SCHEDULER] Registered: purge rejected comments (daily)")
	return nil
}

// Run blocks until Shutdown.
func (s *Scheduler) Run() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
