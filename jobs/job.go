package jobs

import "context"

// Job is one unit of scheduled daemon work.
type Job interface {
	Name() string
	Process(ctx context.Context) error
}
