package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/config"
	"github.com/annastatham03-png/shorts-renderer/domain"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type ffmpegEncoder struct {
	logger       outbound.LoggerPort
	renderConfig *config.RenderConfig
}

func NewFFmpegEncoder(logger outbound.LoggerPort, renderConfig *config.RenderConfig) outbound.VideoEncoderPort {
	return &ffmpegEncoder{
		logger:       logger,
		renderConfig: renderConfig,
	}
}

// Encode renders the timeline into a vertical mp4. Each clip is bounded to
// its entry window, normalized to the target frame, and the clips are
// concatenated under the narration track. A failed or undersized output is
// removed so partial artifacts are never published.
func (e *ffmpegEncoder) Encode(ctx context.Context, timeline domain.Timeline, outputFile string) (*domain.RenderedOutput, error) {
	defer e.cleanup(timeline)

	if len(timeline.Entries) == 0 {
		return nil, fmt.Errorf("timeline has no entries")
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		e.logger.Error(err, "Failed to create output directory")
		return nil, err
	}

	frame := fmt.Sprintf("%d:%d", e.renderConfig.Width, e.renderConfig.Height)

	clips := make([]*ffmpeg.Stream, 0, len(timeline.Entries))
	for _, entry := range timeline.Entries {
		inputArgs := ffmpeg.KwArgs{"t": fmt.Sprintf("%.3f", entry.Duration())}
		if entry.Loop {
			inputArgs["stream_loop"] = -1
		}
		clip := ffmpeg.Input(entry.LocalFile, inputArgs).
			Filter("scale", ffmpeg.Args{frame}, ffmpeg.KwArgs{"force_original_aspect_ratio": "increase"}).
			Filter("crop", ffmpeg.Args{frame}).
			Filter("fps", ffmpeg.Args{fmt.Sprintf("%d", e.renderConfig.FrameRate)}).
			Filter("setpts", ffmpeg.Args{"PTS-STARTPTS"})
		clips = append(clips, clip)
	}

	video := ffmpeg.Concat(clips)
	audio := ffmpeg.Input(timeline.AudioFile)

	err := ffmpeg.Output([]*ffmpeg.Stream{video, audio}, outputFile, ffmpeg.KwArgs{
		"c:v":      "libx264",
		"pix_fmt":  "yuv420p",
		"c:a":      "aac",
		"b:a":      "192k",
		"movflags": "faststart",
		"shortest": "",
	}).OverWriteOutput().Run()
	if err != nil {
		e.discard(outputFile)
		e.logger.Error(err, "ffmpeg encode failed")
		return nil, fmt.Errorf("ffmpeg encode failed: %w", err)
	}

	info, err := os.Stat(outputFile)
	if err != nil || info.Size() < e.renderConfig.MinOutputBytes {
		e.discard(outputFile)
		return nil, fmt.Errorf("rendered output missing or too small")
	}

	duration, err := probeDuration(ctx, outputFile)
	if err != nil {
		e.discard(outputFile)
		e.logger.Error(err, "Failed to probe rendered output")
		return nil, err
	}

	e.logger.InfoWithFields("Rendered final video", map[string]interface{}{
		"file":     outputFile,
		"duration": duration,
		"entries":  len(timeline.Entries),
	})

	return &domain.RenderedOutput{
		FileName: outputFile,
		Duration: duration,
	}, nil
}

func (e *ffmpegEncoder) discard(outputFile string) {
	if err := os.Remove(outputFile); err != nil && !os.IsNotExist(err) {
		e.logger.Error(err, "Failed to discard partial output")
	}
}

func (e *ffmpegEncoder) cleanup(timeline domain.Timeline) {
	for _, entry := range timeline.Entries {
		if entry.LocalFile == "" {
			continue
		}
		if err := os.Remove(entry.LocalFile); err != nil {
			e.logger.Error(err, "Failed to remove downloaded clip")
		}
	}
	if timeline.AudioFile != "" {
		if err := os.Remove(timeline.AudioFile); err != nil {
			e.logger.Error(err, "Failed to remove narration track")
		}
	}
}
