package adapters

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/config"
	"github.com/google/uuid"
)

var ErrUnknownVoice = errors.New("unknown voice")

type edgeSpeechSynthesizer struct {
	logger outbound.LoggerPort
	cfg    *config.EdgeTTSConfig
}

// NewEdgeSpeechSynthesizer shells out to the edge-tts CLI per segment and
// probes the produced clip for its duration.
func NewEdgeSpeechSynthesizer(logger outbound.LoggerPort, cfg *config.EdgeTTSConfig) outbound.SpeechSynthesizerPort {
	return &edgeSpeechSynthesizer{
		logger: logger,
		cfg:    cfg,
	}
}

func (e *edgeSpeechSynthesizer) Synthesize(ctx context.Context, req outbound.SynthesizeSpeechRequest) (*outbound.SpeechClip, error) {
	outFile := filepath.Join(os.TempDir(), uuid.NewString()+".mp3")

	var lastErr error
	for attempt := 0; attempt < e.cfg.MaxRetries; attempt++ {
		err := e.run(ctx, req, outFile)
		if err == nil {
			lastErr = nil
			break
		}
		lastErr = err
		if errors.Is(err, ErrUnknownVoice) || ctx.Err() != nil {
			break
		}
		e.logger.WarnWithFields("Speech synthesis attempt failed, retrying", map[string]interface{}{
			"attempt": attempt + 1,
			"error":   err.Error(),
		})
	}
	if lastErr != nil {
		e.logger.Error(lastErr, "Failed to synthesize speech")
		return nil, lastErr
	}

	duration, err := probeDuration(ctx, outFile)
	if err != nil {
		e.logger.Error(err, "Failed to probe speech clip duration")
		return nil, err
	}

	return &outbound.SpeechClip{
		FileName: outFile,
		Duration: duration,
	}, nil
}

func (e *edgeSpeechSynthesizer) run(ctx context.Context, req outbound.SynthesizeSpeechRequest, outFile string) error {
	cmd := exec.CommandContext(ctx, e.cfg.Binary,
		"--voice", req.Voice,
		"--text", req.Text,
		"--write-media", outFile)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if strings.Contains(strings.ToLower(string(output)), "voice") {
			return fmt.Errorf("%w %q: %s", ErrUnknownVoice, req.Voice, strings.TrimSpace(string(output)))
		}
		return fmt.Errorf("edge-tts failed: %v: %s", err, strings.TrimSpace(string(output)))
	}

	info, err := os.Stat(outFile)
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("edge-tts produced no audio for segment")
	}

	return nil
}
