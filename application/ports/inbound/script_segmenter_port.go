package inbound

import (
	"context"

	"github.com/annastatham03-png/shorts-renderer/domain"
)

type GenerateSegmentsParams struct {
	Script string
	JobID  string
}

type ScriptSegmenterPort interface {
	Generate(ctx context.Context, params GenerateSegmentsParams) (<-chan domain.Segment, <-chan error)
}
