package services

import (
	"fmt"
	"sort"

	"github.com/annastatham03-png/shorts-renderer/application/ports/inbound"
	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/domain"
)

type timelineAssembler struct {
	logger outbound.LoggerPort
}

func NewTimelineAssembler(logger outbound.LoggerPort) inbound.TimelineAssemblerPort {
	return &timelineAssembler{
		logger: logger,
	}
}

// Assemble lays one clip per segment head to tail against the narration
// durations. The result covers the summed audio duration exactly, with no
// gaps and no overlaps.
func (t *timelineAssembler) Assemble(segments []domain.SegmentMedia) (*domain.Timeline, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("no segments to assemble")
	}
	sort.Sort(domain.SegmentMediaAscByOrdinal(segments))

	entries := make([]domain.TimelineEntry, 0, len(segments))
	cursor := 0.0
	for _, segment := range segments {
		if segment.Duration <= 0 {
			return nil, fmt.Errorf("segment %d has non-positive audio duration %f", segment.Ordinal, segment.Duration)
		}
		asset, loop, err := t.pickAsset(segment)
		if err != nil {
			return nil, err
		}

		entry := domain.TimelineEntry{
			Segment: segment.Segment,
			Asset:   asset,
			Start:   cursor,
			End:     cursor + segment.Duration,
			Loop:    loop,
		}
		cursor = entry.End
		entries = append(entries, entry)

		t.logger.DebugWithFields("Placed timeline entry", map[string]interface{}{
			"ord":   segment.Ordinal,
			"asset": asset.Key(),
			"start": entry.Start,
			"end":   entry.End,
			"loop":  loop,
		})
	}

	return &domain.Timeline{
		Entries:       entries,
		TotalDuration: cursor,
	}, nil
}

// pickAsset takes the first ranked candidate long enough to cover the
// narration; when none is, the shortest candidate is looped.
func (t *timelineAssembler) pickAsset(segment domain.SegmentMedia) (domain.MediaAsset, bool, error) {
	if len(segment.Candidates) == 0 {
		return domain.MediaAsset{}, false, fmt.Errorf("segment %d: %w", segment.Ordinal, ErrMediaUnavailable)
	}

	for _, candidate := range segment.Candidates {
		if candidate.Duration >= segment.Duration {
			return candidate, false, nil
		}
	}

	shortest := segment.Candidates[0]
	for _, candidate := range segment.Candidates[1:] {
		if candidate.Duration < shortest.Duration {
			shortest = candidate
		}
	}
	return shortest, true, nil
}
