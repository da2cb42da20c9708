package asynqserver

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/vibe-gaming/geodirectory/internal/cache"
	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/internal/queue/processor"
	"github.com/vibe-gaming/geodirectory/internal/queue/task"
	"github.com/vibe-gaming/geodirectory/internal/worker"
	"github.com/vibe-gaming/geodirectory/pkg/logger"
)

func New(cfg config.Cache, queueCfg config.Queue, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)
	srv := asynq.NewServer(
		RedisOptions(cfg),
		asynq.Config{
			Concurrency:     queueCfg.Concurrency,
			LogLevel:        asynq.ErrorLevel,
			Queues:          queues,
			ShutdownTimeout: queueCfg.TaskTimeout,
			ErrorHandler:    asynq.ErrorHandlerFunc(logTaskError),
		},
	)

	return srv, mux
}

// RedisOptions builds the asynq connection from the same settings as the readiness client.
func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	if cfg.Type == cache.RedisTypeCluster {
		return asynq.RedisClusterClientOpt{Addrs: cfg.RedisCluster.Addresses, Password: cfg.RedisCluster.Password}
	}
	return asynq.RedisClientOpt{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, PoolSize: cfg.Redis.PoolSize}
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.RecomputePOICountTaskName, processor.NewRecomputePOICountProcessor(workers))
	queues := map[string]int{
		task.RecomputePOICountQueueName: 1,
	}
	return mux, queues
}

func logTaskError(ctx context.Context, t *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	logger.Warn("task failed",
		zap.String("task", t.Type()),
		zap.ByteString("payload", t.Payload()),
		zap.Int("retried", retried),
		zap.Int("max_retry", maxRetry),
		zap.Error(err),
	)
}
