package config

import (
	"fmt"
	"os"
)

type PexelsConfig struct {
	ApiUrl  string
	ApiKey  string
	PerPage int
}

func GetPexelsConfig() (*PexelsConfig, error) {
	apiKey := os.Getenv("PEXELS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("PEXELS_API_KEY must be set")
	}

	apiUrl := os.Getenv("PEXELS_API_URL")
	if apiUrl == "" {
		apiUrl = "https://api.pexels.com/videos/search"
	}

	return &PexelsConfig{
		ApiUrl:  apiUrl,
		ApiKey:  apiKey,
		PerPage: 10,
	}, nil
}
