package outbound

import (
	"github.com/annastatham03-png/shorts-renderer/domain"
)

type ConcatenateAudioPort interface {
	Concatenate(segments []domain.SegmentAudio) (string, error)
}
