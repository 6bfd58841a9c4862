package config

import (
	"fmt"
	"os"
)

type PixabayConfig struct {
	ApiUrl  string
	ApiKey  string
	PerPage int
}

func GetPixabayConfig() (*PixabayConfig, error) {
	apiKey := os.Getenv("PIXABAY_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("PIXABAY_API_KEY must be set")
	}

	apiUrl := os.Getenv("PIXABAY_API_URL")
	if apiUrl == "" {
		apiUrl = "https://pixabay.com/api/videos/"
	}

	return &PixabayConfig{
		ApiUrl:  apiUrl,
		ApiKey:  apiKey,
		PerPage: 10,
	}, nil
}
