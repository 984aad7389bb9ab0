package client

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/workdesk/workdesk-client/internal/shardqueue"
)

// executor abstracts the background job runner used for fire-and-forget
// writes.
type executor interface {
	Submit(context.Context, string, shardqueue.Job) error
	Stop()
}

// newDefaultExecutor constructs the shardqueue executor with small defaults;
// background work here is occasional.
func newDefaultExecutor(logger zerolog.Logger) *shardqueue.Executor {
	cfg := shardqueue.Config{
		Workers:   2,
		QueueSize: 64,
		ErrorHandler: func(err error) {
			backgroundFailuresTotal.Inc()
			logger.Error().Err(err).Msg("background job failed")
		},
	}
	return shardqueue.New(cfg)
}
