package config

import (
	"os"
	"strconv"
)

type EdgeTTSConfig struct {
	Binary     string
	MaxRetries int
}

func GetEdgeTTSConfig() (*EdgeTTSConfig, error) {
	binary := os.Getenv("EDGE_TTS_BINARY")
	if binary == "" {
		binary = "edge-tts"
	}

	maxRetries := 3
	if raw := os.Getenv("EDGE_TTS_MAX_RETRIES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	return &EdgeTTSConfig{
		Binary:     binary,
		MaxRetries: maxRetries,
	}, nil
}
