package outbound

import (
	"context"

	"github.com/annastatham03-png/shorts-renderer/domain"
)

type VideoEncoderPort interface {
	Encode(ctx context.Context, timeline domain.Timeline, outputFile string) (*domain.RenderedOutput, error)
}
