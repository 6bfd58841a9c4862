package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/annastatham03-png/shorts-renderer/application/ports/inbound"
	"github.com/annastatham03-png/shorts-renderer/domain"
	"github.com/annastatham03-png/shorts-renderer/infrastructure/adapters"
	"github.com/google/uuid"
)

func collectSegments(t *testing.T, outCh <-chan domain.Segment, errCh <-chan error) []domain.Segment {
	t.Helper()
	segments := make([]domain.Segment, 0)
	for {
		select {
		case err, ok := <-errCh:
			if ok {
				t.Fatal("Received an error:", err)
			}
			errCh = nil
		case segment, ok := <-outCh:
			if !ok {
				return segments
			}
			segments = append(segments, segment)
		}
	}
}

func TestScriptSegmenter_Generate(t *testing.T) {
	workerPool := newTestPool(t)
	logger := adapters.NewZerologWrapper()
	segmenter := NewScriptSegmenter(logger, workerPool)

	jobID := uuid.NewString()
	script := "Octopuses have three hearts.\nTwo pump blood to the gills!  Does the third stop when they swim? Yes; and that is why they crawl"

	outCh, errCh := segmenter.Generate(context.Background(), inbound.GenerateSegmentsParams{
		Script: script,
		JobID:  jobID,
	})

	segments := collectSegments(t, outCh, errCh)

	want := []string{
		"Octopuses have three hearts.",
		"Two pump blood to the gills!",
		"Does the third stop when they swim?",
		"Yes;",
		"and that is why they crawl",
	}
	if len(segments) != len(want) {
		t.Fatalf("Expected %d segments, got %d", len(want), len(segments))
	}
	for i, segment := range segments {
		if segment.Ordinal != i {
			t.Errorf("Segment %d has ordinal %d", i, segment.Ordinal)
		}
		if segment.Text != want[i] {
			t.Errorf("Segment %d text %q, want %q", i, segment.Text, want[i])
		}
		if segment.JobID != jobID {
			t.Errorf("Segment %d has job ID %q", i, segment.JobID)
		}
		if segment.ID == "" {
			t.Errorf("Segment %d has no ID", i)
		}
	}

	joined := strings.Join(strings.Fields(script), " ")
	var rebuilt []string
	for _, segment := range segments {
		rebuilt = append(rebuilt, segment.Text)
	}
	if got := strings.Join(rebuilt, " "); got != joined {
		t.Errorf("Segments do not reproduce the script:\ngot  %q\nwant %q", got, joined)
	}
}

func TestScriptSegmenter_Generate_KeepsSymbols(t *testing.T) {
	workerPool := newTestPool(t)
	logger := adapters.NewZerologWrapper()
	segmenter := NewScriptSegmenter(logger, workerPool)

	outCh, errCh := segmenter.Generate(context.Background(), inbound.GenerateSegmentsParams{
		Script: `Paths like C:\temp survive. So do under_scores.`,
		JobID:  uuid.NewString(),
	})

	segments := collectSegments(t, outCh, errCh)
	want := []string{`Paths like C:`, `\temp survive.`, `So do under_scores.`}
	if len(segments) != len(want) {
		t.Fatalf("Expected %d segments, got %d", len(want), len(segments))
	}
	for i, segment := range segments {
		if segment.Text != want[i] {
			t.Errorf("Segment %d text %q, want %q", i, segment.Text, want[i])
		}
	}
}

func TestScriptSegmenter_Generate_ClosesChannelsOnDispatcherFailure(t *testing.T) {
	logger := adapters.NewZerologWrapper()
	segmenter := NewScriptSegmenter(logger, failingDispatcher{})

	outCh, errCh := segmenter.Generate(context.Background(), inbound.GenerateSegmentsParams{
		Script: "One sentence.",
		JobID:  uuid.NewString(),
	})

	if _, ok := <-outCh; ok {
		t.Fatal("Expected no segments when the dispatcher is down")
	}
	err, ok := <-errCh
	if !ok {
		t.Fatal("Expected a dispatcher error")
	}
	if !errors.Is(err, errDispatcherDown) {
		t.Fatalf("Expected the dispatcher error, got %v", err)
	}
}

func TestScriptSegmenter_Generate_EmptyScript(t *testing.T) {
	workerPool := newTestPool(t)
	logger := adapters.NewZerologWrapper()
	segmenter := NewScriptSegmenter(logger, workerPool)

	outCh, errCh := segmenter.Generate(context.Background(), inbound.GenerateSegmentsParams{
		Script: " \n\t ",
		JobID:  uuid.NewString(),
	})

	if _, ok := <-outCh; ok {
		t.Fatal("Expected no segments for an empty script")
	}
	err, ok := <-errCh
	if !ok {
		t.Fatal("Expected an error for an empty script")
	}
	if !errors.Is(err, ErrEmptyScript) {
		t.Fatalf("Expected ErrEmptyScript, got %v", err)
	}
}
