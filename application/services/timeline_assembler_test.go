package services

import (
	"errors"
	"math"
	"testing"

	"github.com/annastatham03-png/shorts-renderer/domain"
	"github.com/annastatham03-png/shorts-renderer/infrastructure/adapters"
)

func narratedSegment(ordinal int, duration float64, candidates ...domain.MediaAsset) domain.SegmentMedia {
	return domain.SegmentMedia{
		SegmentAudio: domain.SegmentAudio{
			Segment:  domain.Segment{ID: "s", JobID: "job_1", Text: "text", Ordinal: ordinal},
			FileName: "/tmp/s.mp3",
			Duration: duration,
		},
		Candidates: candidates,
	}
}

func TestTimelineAssembler_Assemble(t *testing.T) {
	assembler := NewTimelineAssembler(adapters.NewZerologWrapper())

	long := testAsset(domain.PexelsProvider, "long", 30)
	short := testAsset(domain.PixabayProvider, "short", 3)

	// Deliberately out of order; Assemble must sort by ordinal.
	timeline, err := assembler.Assemble([]domain.SegmentMedia{
		narratedSegment(1, 4.5, long, short),
		narratedSegment(0, 2.25, long, short),
		narratedSegment(2, 3.25, long, short),
	})
	if err != nil {
		t.Fatal("Failed to assemble timeline:", err)
	}

	if len(timeline.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(timeline.Entries))
	}

	wantTotal := 2.25 + 4.5 + 3.25
	if math.Abs(timeline.TotalDuration-wantTotal) > 1e-9 {
		t.Errorf("Total duration %f, want %f", timeline.TotalDuration, wantTotal)
	}

	cursor := 0.0
	for i, entry := range timeline.Entries {
		if entry.Segment.Ordinal != i {
			t.Errorf("Entry %d has ordinal %d", i, entry.Segment.Ordinal)
		}
		if math.Abs(entry.Start-cursor) > 1e-9 {
			t.Errorf("Entry %d starts at %f, want %f", i, entry.Start, cursor)
		}
		if entry.End <= entry.Start {
			t.Errorf("Entry %d has non-positive duration", i)
		}
		cursor = entry.End
	}
	if math.Abs(cursor-timeline.TotalDuration) > 1e-9 {
		t.Errorf("Entries end at %f, want %f", cursor, timeline.TotalDuration)
	}
}

func TestTimelineAssembler_Assemble_PicksFirstLongEnoughCandidate(t *testing.T) {
	assembler := NewTimelineAssembler(adapters.NewZerologWrapper())

	tooShort := testAsset(domain.PexelsProvider, "short", 2)
	fits := testAsset(domain.PexelsProvider, "fits", 6)
	alsoFits := testAsset(domain.PixabayProvider, "also-fits", 60)

	timeline, err := assembler.Assemble([]domain.SegmentMedia{
		narratedSegment(0, 5, tooShort, fits, alsoFits),
	})
	if err != nil {
		t.Fatal("Failed to assemble timeline:", err)
	}

	entry := timeline.Entries[0]
	if entry.Asset.ID != "fits" {
		t.Errorf("Expected the first long enough candidate, got %s", entry.Asset.ID)
	}
	if entry.Loop {
		t.Error("A long enough clip should not loop")
	}
}

func TestTimelineAssembler_Assemble_LoopsShortestWhenNothingFits(t *testing.T) {
	assembler := NewTimelineAssembler(adapters.NewZerologWrapper())

	timeline, err := assembler.Assemble([]domain.SegmentMedia{
		narratedSegment(0, 12,
			testAsset(domain.PexelsProvider, "five", 5),
			testAsset(domain.PexelsProvider, "three", 3),
			testAsset(domain.PixabayProvider, "four", 4),
		),
	})
	if err != nil {
		t.Fatal("Failed to assemble timeline:", err)
	}

	entry := timeline.Entries[0]
	if entry.Asset.ID != "three" {
		t.Errorf("Expected the shortest candidate, got %s", entry.Asset.ID)
	}
	if !entry.Loop {
		t.Error("A too-short clip must loop")
	}
	if math.Abs(entry.Duration()-12) > 1e-9 {
		t.Errorf("Entry duration %f, want the narration duration 12", entry.Duration())
	}
}

func TestTimelineAssembler_Assemble_FailsWithoutCandidates(t *testing.T) {
	assembler := NewTimelineAssembler(adapters.NewZerologWrapper())

	_, err := assembler.Assemble([]domain.SegmentMedia{narratedSegment(0, 5)})
	if !errors.Is(err, ErrMediaUnavailable) {
		t.Fatalf("Expected ErrMediaUnavailable, got %v", err)
	}
}

func TestTimelineAssembler_Assemble_FailsOnNonPositiveDuration(t *testing.T) {
	assembler := NewTimelineAssembler(adapters.NewZerologWrapper())

	_, err := assembler.Assemble([]domain.SegmentMedia{
		narratedSegment(0, 0, testAsset(domain.PexelsProvider, "1", 10)),
	})
	if err == nil {
		t.Fatal("Expected an error for a zero duration segment")
	}
}

func TestTimelineAssembler_Assemble_FailsOnEmptyInput(t *testing.T) {
	assembler := NewTimelineAssembler(adapters.NewZerologWrapper())

	if _, err := assembler.Assemble(nil); err == nil {
		t.Fatal("Expected an error for empty input")
	}
}
