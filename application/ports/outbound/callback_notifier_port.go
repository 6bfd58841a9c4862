package outbound

import "context"

type NotifyRenderedParams struct {
	JobID       string
	UserID      string
	ArtifactKey string
	Duration    float64
	Status      string
}

type CallbackNotifierPort interface {
	Notify(ctx context.Context, params NotifyRenderedParams) error
}
