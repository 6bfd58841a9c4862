package config

import (
	"os"
	"strconv"
)

type RenderConfig struct {
	Width          int
	Height         int
	FrameRate      int
	OutputDir      string
	MinOutputBytes int64
}

func GetRenderConfig() (*RenderConfig, error) {
	outputDir := os.Getenv("OUTPUT_DIR")
	if outputDir == "" {
		outputDir = "out"
	}

	width := intFromEnv("RENDER_WIDTH", 1080)
	height := intFromEnv("RENDER_HEIGHT", 1920)
	frameRate := intFromEnv("RENDER_FPS", 25)

	return &RenderConfig{
		Width:          width,
		Height:         height,
		FrameRate:      frameRate,
		OutputDir:      outputDir,
		MinOutputBytes: 10000,
	}, nil
}

func intFromEnv(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
