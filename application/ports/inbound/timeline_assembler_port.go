package inbound

import (
	"github.com/annastatham03-png/shorts-renderer/domain"
)

type TimelineAssemblerPort interface {
	Assemble(segments []domain.SegmentMedia) (*domain.Timeline, error)
}
