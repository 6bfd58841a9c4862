package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/annastatham03-png/shorts-renderer/application/ports/inbound"
	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/channel_utils"
	"github.com/annastatham03-png/shorts-renderer/domain"
)

type renderPipeline struct {
	segmenter   inbound.ScriptSegmenterPort
	synthesizer inbound.SegmentAudioSynthesizerPort
	selector    inbound.MediaSelectorPort
	assembler   inbound.TimelineAssemblerPort
	downloader  outbound.MediaDownloaderPort
	audioConcat outbound.ConcatenateAudioPort
	encoder     outbound.VideoEncoderPort
	jobStore    outbound.JobStorePort
	publisher   outbound.ArtifactPublisherPort
	notifier    outbound.CallbackNotifierPort
	logger      outbound.LoggerPort
	workerPool  outbound.TaskDispatcher
}

// NewRenderPipeline wires the full job pipeline. jobStore, publisher and
// notifier may be nil when the deployment does not configure them; the
// runner uses that for local-artifact-only renders.
func NewRenderPipeline(
	segmenter inbound.ScriptSegmenterPort,
	synthesizer inbound.SegmentAudioSynthesizerPort,
	selector inbound.MediaSelectorPort,
	assembler inbound.TimelineAssemblerPort,
	downloader outbound.MediaDownloaderPort,
	audioConcat outbound.ConcatenateAudioPort,
	encoder outbound.VideoEncoderPort,
	jobStore outbound.JobStorePort,
	publisher outbound.ArtifactPublisherPort,
	notifier outbound.CallbackNotifierPort,
	logger outbound.LoggerPort,
	workerPool outbound.TaskDispatcher) inbound.RenderPipelinePort {
	return &renderPipeline{
		segmenter:   segmenter,
		synthesizer: synthesizer,
		selector:    selector,
		assembler:   assembler,
		downloader:  downloader,
		audioConcat: audioConcat,
		encoder:     encoder,
		jobStore:    jobStore,
		publisher:   publisher,
		notifier:    notifier,
		logger:      logger,
		workerPool:  workerPool,
	}
}

func (p *renderPipeline) StartPipeline(ctx context.Context, params inbound.StartPipelineParams) (*inbound.RenderResult, error) {
	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	job := params.Job

	segmentsCh, segmenterErrCh := p.segmenter.Generate(newCtx, inbound.GenerateSegmentsParams{
		Script: job.Script,
		JobID:  job.ID,
	})
	audioCh, synthesizerErrCh := p.synthesizer.Synthesize(newCtx, segmentsCh, job.Voice)
	mediaCh, selectorErrCh := p.selector.Select(newCtx, audioCh, inbound.SelectMediaParams{
		Topic:    job.Topic,
		Provider: job.Provider,
	})

	mergedErrCh, err := channel_utils.MergeChannels(p.workerPool, segmenterErrCh, synthesizerErrCh, selectorErrCh)
	if err != nil {
		p.logger.Error(err, "error merging error channels")
		return nil, err
	}

	segments, err := p.collectSegments(newCtx, mediaCh, mergedErrCh)
	if err != nil {
		p.logger.Error(err, "error collecting narrated segments")
		return nil, err
	}

	timeline, err := p.assembler.Assemble(segments)
	if err != nil {
		p.logger.Error(err, "error assembling timeline")
		return nil, err
	}

	if err := p.downloadAssets(newCtx, timeline); err != nil {
		p.logger.Error(err, "error downloading timeline assets")
		return nil, err
	}

	audios := make([]domain.SegmentAudio, 0, len(segments))
	for _, s := range segments {
		audios = append(audios, s.SegmentAudio)
	}
	audioFile, err := p.audioConcat.Concatenate(audios)
	if err != nil {
		p.logger.Error(err, "error concatenating narration audio")
		return nil, err
	}
	timeline.AudioFile = audioFile

	outputFile := params.OutputFile
	if outputFile == "" {
		outputFile = filepath.Join("out", "final.mp4")
	}
	rendered, err := p.encoder.Encode(newCtx, *timeline, outputFile)
	if err != nil {
		p.logger.Error(err, "error encoding final video")
		return nil, err
	}

	p.saveMetadata(newCtx, job, timeline, rendered)

	result := &inbound.RenderResult{
		JobID:  job.ID,
		Output: *rendered,
	}

	if params.Publish && p.publisher != nil {
		res, err := p.publisher.Publish(newCtx, outbound.PublishArtifactRequest{
			JobID:         job.ID,
			VideoFileName: rendered.FileName,
			RemoveLocal:   true,
		})
		if err != nil {
			p.logger.Error(err, "error publishing artifact")
			return nil, err
		}
		result.ArtifactKey = res.ArtifactKey
		result.ArtifactRegion = res.StoreRegion
	}

	p.notify(newCtx, params, result)

	return result, nil
}

func (p *renderPipeline) collectSegments(ctx context.Context,
	mediaCh <-chan domain.SegmentMedia, errCh <-chan error) ([]domain.SegmentMedia, error) {
	segments := make([]domain.SegmentMedia, 0)
	// Keep draining errCh after mediaCh closes: an empty result may still
	// carry the stage error that caused it.
	for mediaCh != nil || errCh != nil {
		select {
		case err, ok := <-errCh:
			if ok {
				return nil, err
			}
			errCh = nil
		case <-ctx.Done():
			return nil, ctx.Err()
		case segment, ok := <-mediaCh:
			if !ok {
				mediaCh = nil
				continue
			}
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("pipeline produced no segments")
	}
	return segments, nil
}

func (p *renderPipeline) downloadAssets(ctx context.Context, timeline *domain.Timeline) error {
	destDir := os.TempDir()
	for i := range timeline.Entries {
		localFile, err := p.downloader.Download(ctx, timeline.Entries[i].Asset, destDir)
		if err != nil {
			return err
		}
		timeline.Entries[i].LocalFile = localFile
	}
	return nil
}

// Metadata persistence is best effort. The artifact is already rendered at
// this point; a storage outage should not fail the job.
func (p *renderPipeline) saveMetadata(ctx context.Context, job domain.Job, timeline *domain.Timeline, rendered *domain.RenderedOutput) {
	if p.jobStore == nil {
		return
	}
	if err := p.jobStore.SaveJob(ctx, job, *rendered); err != nil {
		p.logger.Warn("Failed to save job metadata: " + err.Error())
	}
	for _, entry := range timeline.Entries {
		if err := p.jobStore.SaveTimelineEntry(ctx, job.ID, entry); err != nil {
			p.logger.WarnWithFields("Failed to save timeline entry", map[string]interface{}{
				"job_id": job.ID,
				"ord":    entry.Segment.Ordinal,
				"error":  err.Error(),
			})
		}
	}
}

func (p *renderPipeline) notify(ctx context.Context, params inbound.StartPipelineParams, result *inbound.RenderResult) {
	if p.notifier == nil {
		return
	}
	err := p.notifier.Notify(ctx, outbound.NotifyRenderedParams{
		JobID:       result.JobID,
		UserID:      params.UserID,
		ArtifactKey: result.ArtifactKey,
		Duration:    result.Output.Duration,
		Status:      "rendered",
	})
	if err != nil {
		p.logger.Warn("Failed to notify callback: " + err.Error())
	}
}
