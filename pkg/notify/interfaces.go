package notify

import (
	"context"
)

// ConnectionSource defines the store operations the publisher needs: listing
// active dashboard connections and pruning stale ones.
type ConnectionSource interface {
	GetAllConnections(ctx context.Context) ([]string, error)
	RemoveConnection(ctx context.Context, connectionID string) error
}

// Publisher defines the interface for pushing messages to connected
// dashboard clients.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
