package outbound

import (
	"context"

	"github.com/annastatham03-png/shorts-renderer/domain"
)

type JobStorePort interface {
	SaveJob(ctx context.Context, job domain.Job, output domain.RenderedOutput) error
	SaveTimelineEntry(ctx context.Context, jobID string, entry domain.TimelineEntry) error
}
