package inbound

import (
	"context"

	"github.com/annastatham03-png/shorts-renderer/domain"
)

type SegmentAudioSynthesizerPort interface {
	Synthesize(ctx context.Context, segments <-chan domain.Segment, voice string) (<-chan domain.SegmentAudio, <-chan error)
}
