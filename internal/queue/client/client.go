package client

import (
	"context"
	"sync"

	"github.com/hibiken/asynq"
)

type clientCtxKey struct{}

var (
	globalClient *asynq.Client
	globalMu     sync.RWMutex
)

// WithClient returns a context whose enqueues go through c instead of the global client.
func WithClient(ctx context.Context, c *asynq.Client) context.Context {
	return context.WithValue(ctx, clientCtxKey{}, c)
}

// GetClient prefers a client carried by ctx and falls back to the one installed by SetClient.
func GetClient(ctx context.Context) *asynq.Client {
	if c, ok := ctx.Value(clientCtxKey{}).(*asynq.Client); ok && c != nil {
		return c
	}

	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalClient
}

// SetClient installs the global client and returns a function restoring the previous one.
func SetClient(c *asynq.Client) func() {
	globalMu.Lock()
	prev := globalClient
	globalClient = c
	globalMu.Unlock()
	return func() { SetClient(prev) }
}
