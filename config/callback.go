package config

import (
	"os"
)

type CallbackConfig struct {
	Url string
}

// GetCallbackConfig returns nil without error when CALLBACK_URL is unset;
// completion callbacks are optional.
func GetCallbackConfig() (*CallbackConfig, error) {
	url := os.Getenv("CALLBACK_URL")
	if url == "" {
		return nil, nil
	}

	return &CallbackConfig{
		Url: url,
	}, nil
}
