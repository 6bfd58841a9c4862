package adapters

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/annastatham03-png/shorts-renderer/config"
	"github.com/annastatham03-png/shorts-renderer/domain"
)

func requireFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not installed")
	}
}

func generateTestMedia(t *testing.T, dir string) (clipFile string, audioFile string) {
	t.Helper()
	clipFile = filepath.Join(dir, "clip.mp4")
	cmd := exec.Command("ffmpeg", "-f", "lavfi", "-i", "color=c=black:s=64x64:d=1",
		"-pix_fmt", "yuv420p", "-y", clipFile)
	if err := cmd.Run(); err != nil {
		t.Skip("ffmpeg cannot generate test media:", err)
	}

	audioFile = filepath.Join(dir, "audio.mp3")
	cmd = exec.Command("ffmpeg", "-f", "lavfi", "-i", "anullsrc=r=24000:cl=mono",
		"-t", "1", "-q:a", "9", "-y", audioFile)
	if err := cmd.Run(); err != nil {
		t.Skip("ffmpeg cannot generate test audio:", err)
	}
	return clipFile, audioFile
}

func singleEntryTimeline(clipFile string, audioFile string) domain.Timeline {
	return domain.Timeline{
		Entries: []domain.TimelineEntry{
			{
				Segment:   domain.Segment{ID: "s1", JobID: "job_1", Text: "text", Ordinal: 0},
				Asset:     domain.MediaAsset{ID: "1", Provider: domain.PexelsProvider, Duration: 1},
				LocalFile: clipFile,
				Start:     0,
				End:       1,
			},
		},
		AudioFile:     audioFile,
		TotalDuration: 1,
	}
}

func TestFFmpegEncoder_Encode_DiscardsFailedOutput(t *testing.T) {
	requireFFmpeg(t)

	dir := t.TempDir()
	clipFile := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(clipFile, []byte("not a video"), 0o644); err != nil {
		t.Fatal("Failed to write corrupt clip:", err)
	}
	audioFile := filepath.Join(dir, "audio.mp3")
	if err := os.WriteFile(audioFile, []byte("not audio"), 0o644); err != nil {
		t.Fatal("Failed to write corrupt audio:", err)
	}
	outputFile := filepath.Join(dir, "out", "final.mp4")

	encoder := NewFFmpegEncoder(NewZerologWrapper(), &config.RenderConfig{
		Width:          1080,
		Height:         1920,
		FrameRate:      25,
		MinOutputBytes: 10000,
	})

	_, err := encoder.Encode(context.Background(), singleEntryTimeline(clipFile, audioFile), outputFile)
	if err == nil {
		t.Fatal("Expected encoding a corrupt clip to fail")
	}
	if _, statErr := os.Stat(outputFile); !os.IsNotExist(statErr) {
		t.Error("A failed render must not leave an output file behind")
	}
}

func TestFFmpegEncoder_Encode_DiscardsUndersizedOutput(t *testing.T) {
	requireFFmpeg(t)

	dir := t.TempDir()
	clipFile, audioFile := generateTestMedia(t, dir)
	outputFile := filepath.Join(dir, "out", "final.mp4")

	encoder := NewFFmpegEncoder(NewZerologWrapper(), &config.RenderConfig{
		Width:          1080,
		Height:         1920,
		FrameRate:      25,
		MinOutputBytes: 1 << 40,
	})

	_, err := encoder.Encode(context.Background(), singleEntryTimeline(clipFile, audioFile), outputFile)
	if err == nil {
		t.Fatal("Expected an undersized render to fail")
	}
	if _, statErr := os.Stat(outputFile); !os.IsNotExist(statErr) {
		t.Error("An undersized render must not leave an output file behind")
	}
}
