package task

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	RecomputePOICountTaskName  = "recomputePOICountTask"
	RecomputePOICountQueueName = "poiCountQueue"
)

type RecomputePOICount struct {
	RegionID uuid.UUID `json:"region_id"`
}

// NewRecomputePOICountTask builds a recount task for one region. opts override the defaults.
func NewRecomputePOICountTask(regionID uuid.UUID, opts ...asynq.Option) (*asynq.Task, error) {
	data := RecomputePOICount{
		RegionID: regionID,
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		RecomputePOICountTaskName,
		payload,
		append([]asynq.Option{
			asynq.MaxRetry(3),
			asynq.Queue(RecomputePOICountQueueName),
		}, opts...)...,
	), nil
}
