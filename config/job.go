package config

import (
	"fmt"
	"os"
	"time"

	"github.com/annastatham03-png/shorts-renderer/domain"
)

// GetJobFromEnv builds the one-shot runner job from the workflow inputs.
func GetJobFromEnv() (domain.Job, error) {
	script := os.Getenv("SCRIPT")
	if script == "" {
		return domain.Job{}, fmt.Errorf("SCRIPT must be set")
	}

	jobID := os.Getenv("JOB_ID")
	if jobID == "" {
		jobID = fmt.Sprintf("job_%d", time.Now().Unix())
	}

	topic := os.Getenv("TOPIC")
	if topic == "" {
		topic = "trend"
	}

	provider, err := domain.ParseProvider(os.Getenv("PROVIDER"))
	if err != nil {
		return domain.Job{}, err
	}

	return domain.NewJob(jobID, topic, script, provider, os.Getenv("VOICE")), nil
}
