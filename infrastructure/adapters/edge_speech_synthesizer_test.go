package adapters

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/config"
)

func writeFakeTTSBinary(t *testing.T, script string) string {
	t.Helper()
	binary := filepath.Join(t.TempDir(), "edge-tts")
	if err := os.WriteFile(binary, []byte(script), 0o755); err != nil {
		t.Fatal("Failed to write fake binary:", err)
	}
	return binary
}

func countAttempts(t *testing.T, attemptsFile string) int {
	t.Helper()
	payload, err := os.ReadFile(attemptsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return 0
		}
		t.Fatal("Failed to read attempts file:", err)
	}
	return strings.Count(string(payload), "\n")
}

func TestEdgeSpeechSynthesizer_Synthesize_RetriesTransientFailures(t *testing.T) {
	attemptsFile := filepath.Join(t.TempDir(), "attempts")
	binary := writeFakeTTSBinary(t, "#!/bin/sh\n"+
		"echo attempt >> "+attemptsFile+"\n"+
		"echo 'connection reset by peer' >&2\n"+
		"exit 1\n")

	synthesizer := NewEdgeSpeechSynthesizer(NewZerologWrapper(), &config.EdgeTTSConfig{
		Binary:     binary,
		MaxRetries: 3,
	})

	_, err := synthesizer.Synthesize(context.Background(), outbound.SynthesizeSpeechRequest{
		Text:  "hello there",
		Voice: "en-US-AriaNeural",
	})
	if err == nil {
		t.Fatal("Expected an error after exhausting retries")
	}
	if errors.Is(err, ErrUnknownVoice) {
		t.Fatal("A transient failure must not be classified as an unknown voice")
	}
	if got := countAttempts(t, attemptsFile); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

func TestEdgeSpeechSynthesizer_Synthesize_UnknownVoiceIsFatal(t *testing.T) {
	attemptsFile := filepath.Join(t.TempDir(), "attempts")
	binary := writeFakeTTSBinary(t, "#!/bin/sh\n"+
		"echo attempt >> "+attemptsFile+"\n"+
		"echo 'No matching voice found'\n"+
		"exit 1\n")

	synthesizer := NewEdgeSpeechSynthesizer(NewZerologWrapper(), &config.EdgeTTSConfig{
		Binary:     binary,
		MaxRetries: 3,
	})

	_, err := synthesizer.Synthesize(context.Background(), outbound.SynthesizeSpeechRequest{
		Text:  "hello there",
		Voice: "xx-XX-Nobody",
	})
	if !errors.Is(err, ErrUnknownVoice) {
		t.Fatalf("Expected ErrUnknownVoice, got %v", err)
	}
	if got := countAttempts(t, attemptsFile); got != 1 {
		t.Errorf("An unknown voice must not be retried, got %d attempts", got)
	}
}

func TestEdgeSpeechSynthesizer_Synthesize_RecoversAfterTransientFailure(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not installed")
	}

	attemptsFile := filepath.Join(t.TempDir(), "attempts")
	binary := writeFakeTTSBinary(t, "#!/bin/sh\n"+
		"echo attempt >> "+attemptsFile+"\n"+
		"if [ \"$(wc -l < "+attemptsFile+")\" -lt 2 ]; then\n"+
		"  echo 'connection reset by peer' >&2\n"+
		"  exit 1\n"+
		"fi\n"+
		"for out; do :; done\n"+
		"exec ffmpeg -f lavfi -i anullsrc=r=24000:cl=mono -t 1 -q:a 9 -y \"$out\" 2>/dev/null\n")

	synthesizer := NewEdgeSpeechSynthesizer(NewZerologWrapper(), &config.EdgeTTSConfig{
		Binary:     binary,
		MaxRetries: 3,
	})

	clip, err := synthesizer.Synthesize(context.Background(), outbound.SynthesizeSpeechRequest{
		Text:  "hello there",
		Voice: "en-US-AriaNeural",
	})
	if err != nil {
		t.Fatal("Expected synthesis to recover, got:", err)
	}
	defer func() {
		_ = os.Remove(clip.FileName)
	}()

	if got := countAttempts(t, attemptsFile); got != 2 {
		t.Errorf("Expected recovery on the second attempt, got %d attempts", got)
	}
	if clip.Duration <= 0 {
		t.Errorf("Clip duration %f", clip.Duration)
	}
}
