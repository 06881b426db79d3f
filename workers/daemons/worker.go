package daemons

import "context"

// Worker is a long running daemon. Start blocks until ctx is done.
type Worker interface {
	Start(ctx context.Context) error
}
