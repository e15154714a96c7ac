package cron

import (
	"context"
	"log"
	"time"

	"oneq/config"
	"oneq/services/chat"

	"github.com/hibiken/asynq"
)

const TypeSessionSweep = "session:sweep"

// InitSessionSweeper runs the async worker that abandons idle quote
// sessions in the background.
func InitSessionSweeper(orchestrator chat.SessionOrchestrator) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSessionSweep, handleSessionSweep(orchestrator))

	// Start async worker with retry logic
	go func() {
		log.Println("[SessionSweeper] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SessionSweeper] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SessionSweeper] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go enqueueSweeps(redisOpts)
}

func handleSessionSweep(orchestrator chat.SessionOrchestrator) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		abandoned, err := orchestrator.AbandonIdle(ctx, config.SessionIdleTimeout())
		if err != nil {
			log.Printf("[SessionSweeper] sweep failed: %v", err)
			return err
		}
		if abandoned > 0 {
			log.Printf("[SessionSweeper] abandoned %d idle sessions", abandoned)
		}
		return nil
	}
}

// sweepInterval floors the configured cadence so an unset or zero value
// cannot panic the ticker.
func sweepInterval() time.Duration {
	sweepMin := config.AppConfig.SessionSweepMin
	if sweepMin <= 0 {
		sweepMin = 5
	}
	return time.Duration(sweepMin) * time.Minute
}

// enqueueSweeps schedules a sweep task on a fixed interval.
func enqueueSweeps(redisOpts asynq.RedisClientOpt) {
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	ticker := time.NewTicker(sweepInterval())
	defer ticker.Stop()

	for range ticker.C {
		task := asynq.NewTask(TypeSessionSweep, nil)
		if _, err := client.Enqueue(task, asynq.MaxRetry(1)); err != nil {
			log.Printf("[SessionSweeper] failed to enqueue sweep: %v", err)
		}
	}
}
