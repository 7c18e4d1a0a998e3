package worker

import (
	"context"

	"github.com/hibiken/asynq"
)

const (
	TaskSendNotification = "notification:send"
	TaskStartAuction     = "auction:start"
	TaskFinalizeLot      = "lot:finalize"
)

/*
This file contains the code to create tasks and distribute them to the Redis queue.
*/

type TaskDistributor interface {
	DistributeTaskSendNotification(ctx context.Context, payload *PayloadSendNotification, opts ...asynq.Option) error
	DistributeTaskStartAuction(ctx context.Context, payload *PayloadStartAuction, opts ...asynq.Option) error
	DistributeTaskFinalizeLot(ctx context.Context, payload *PayloadFinalizeLot, opts ...asynq.Option) error
}

type RedisTaskDistributor struct {
	client *asynq.Client // client sends tasks to redis queue.
}

func NewTaskDistributor(redisOpt asynq.RedisClientOpt) TaskDistributor {
	client := asynq.NewClient(redisOpt)

	return &RedisTaskDistributor{
		client: client,
	}
}
