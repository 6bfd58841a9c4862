package services

import (
	"context"
	"sync"

	"github.com/annastatham03-png/shorts-renderer/application/ports/inbound"
	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/domain"
)

type segmentAudioSynthesizer struct {
	logger      outbound.LoggerPort
	workerPool  outbound.TaskDispatcher
	synthesizer outbound.SpeechSynthesizerPort
}

func NewSegmentAudioSynthesizer(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	synthesizer outbound.SpeechSynthesizerPort) inbound.SegmentAudioSynthesizerPort {
	return &segmentAudioSynthesizer{
		logger:      logger,
		workerPool:  workerPool,
		synthesizer: synthesizer,
	}
}

func (g *segmentAudioSynthesizer) Synthesize(ctx context.Context, segments <-chan domain.Segment, voice string) (<-chan domain.SegmentAudio, <-chan error) {
	out := make(chan domain.SegmentAudio)
	errCh := make(chan error, 5)
	newCtx, cancel := context.WithCancel(ctx)
	err := g.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()
		var wg sync.WaitGroup
		for s := range segments {
			select {
			case <-newCtx.Done():
				return
			default:
				segment := s
				wg.Add(1)
				err := g.workerPool.Submit(func() {
					defer wg.Done()
					clip, err := g.synthesizer.Synthesize(newCtx, outbound.SynthesizeSpeechRequest{
						Text:  segment.Text,
						Voice: voice,
					})
					if err != nil {
						select {
						case errCh <- err:
						case <-newCtx.Done():
						}
						return
					}
					g.logger.DebugWithFields("Synthesized segment audio", map[string]interface{}{
						"id":       segment.ID,
						"ord":      segment.Ordinal,
						"duration": clip.Duration,
					})
					select {
					case out <- domain.SegmentAudio{
						Segment:  segment,
						FileName: clip.FileName,
						Duration: clip.Duration,
					}:
					case <-newCtx.Done():
					}
				})
				if err != nil {
					wg.Done()
					select {
					case errCh <- err:
					case <-newCtx.Done():
					}
					return
				}
			}
		}
		wg.Wait()
	})
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
		cancel()
	}

	return out, errCh
}
