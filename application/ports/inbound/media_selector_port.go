package inbound

import (
	"context"

	"github.com/annastatham03-png/shorts-renderer/domain"
)

type SelectMediaParams struct {
	Topic    string
	Provider domain.Provider
}

type MediaSelectorPort interface {
	Select(ctx context.Context, segments <-chan domain.SegmentAudio, params SelectMediaParams) (<-chan domain.SegmentMedia, <-chan error)
}
