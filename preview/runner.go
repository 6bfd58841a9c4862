package preview

import (
	"context"
	"strings"
	"time"

	"github.com/annastatham03-png/shorts-renderer/application/ports/inbound"
	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/domain"
	"github.com/google/uuid"
)

const (
	assetFileName = "preview/assets.json"
	// Narration pace used to estimate durations without calling TTS.
	wordsPerSecond = 2.5
	eventDelay     = 300 * time.Millisecond
)

// Runner plans a timeline from the real segmenter and canned assets,
// skipping synthesis and encoding entirely.
type Runner struct {
	logger      outbound.LoggerPort
	workerPool  outbound.TaskDispatcher
	segmenter   inbound.ScriptSegmenterPort
	assembler   inbound.TimelineAssemblerPort
	assetReader AssetReader
}

func NewRunner(workerPool outbound.TaskDispatcher, segmenter inbound.ScriptSegmenterPort,
	assembler inbound.TimelineAssemblerPort, assetReader AssetReader, logger outbound.LoggerPort) *Runner {
	return &Runner{
		logger:      logger,
		workerPool:  workerPool,
		segmenter:   segmenter,
		assembler:   assembler,
		assetReader: assetReader,
	}
}

func (r *Runner) Run(ctx context.Context, script string) (<-chan domain.PlannedEntryEvent, <-chan error) {
	out := make(chan domain.PlannedEntryEvent)
	errCh := make(chan error, 5)

	newCtx, cancel := context.WithCancel(ctx)

	err := r.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		jobID := uuid.NewString()

		timeline, err := r.planTimeline(newCtx, jobID, script)
		if err != nil {
			r.logger.Error(err, "failed to plan preview timeline")
			errCh <- err
			return
		}

		for _, entry := range timeline.Entries {
			time.Sleep(eventDelay)
			select {
			case <-newCtx.Done():
				return
			case out <- entry.ToEvent(jobID):
			}
		}
		r.logger.Info("Finished streaming preview entries.")
	})
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
		cancel()
	}

	return out, errCh
}

func (r *Runner) planTimeline(ctx context.Context, jobID string, script string) (*domain.Timeline, error) {
	assets, err := r.assetReader.Read(assetFileName)
	if err != nil {
		return nil, err
	}

	segmentCh, segmenterErrCh := r.segmenter.Generate(ctx, inbound.GenerateSegmentsParams{
		Script: script,
		JobID:  jobID,
	})

	segments := make([]domain.SegmentMedia, 0)
	for segment := range segmentCh {
		segments = append(segments, domain.SegmentMedia{
			SegmentAudio: domain.SegmentAudio{
				Segment:  segment,
				Duration: estimateDuration(segment.Text),
			},
			Candidates: rotateAssets(assets, segment.Ordinal),
		})
	}
	if err, ok := <-segmenterErrCh; ok {
		return nil, err
	}

	return r.assembler.Assemble(segments)
}

func estimateDuration(text string) float64 {
	words := len(strings.Fields(text))
	duration := float64(words) / wordsPerSecond
	if duration < 1 {
		duration = 1
	}
	return duration
}

func rotateAssets(assets []domain.MediaAsset, offset int) []domain.MediaAsset {
	if len(assets) == 0 {
		return nil
	}
	offset = offset % len(assets)
	rotated := make([]domain.MediaAsset, 0, len(assets))
	rotated = append(rotated, assets[offset:]...)
	rotated = append(rotated, assets[:offset]...)
	return rotated
}
