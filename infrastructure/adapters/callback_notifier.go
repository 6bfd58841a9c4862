package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/rs/zerolog/log"
)

type renderedCallback struct {
	JobID       string  `json:"job_id"`
	UserID      string  `json:"user_id,omitempty"`
	ArtifactKey string  `json:"artifact_key"`
	Duration    float64 `json:"duration"`
	Status      string  `json:"status"`
}

type callbackNotifier struct {
	callbackUrl string
	authorizer  Authorizer
}

// NewCallbackNotifier posts the render result to the workflow callback URL
// (the n8n-style hook that triggered the job).
func NewCallbackNotifier(callbackUrl string, authorizer Authorizer) outbound.CallbackNotifierPort {
	return &callbackNotifier{
		callbackUrl: callbackUrl,
		authorizer:  authorizer,
	}
}

func (n *callbackNotifier) Notify(ctx context.Context, params outbound.NotifyRenderedParams) error {
	token, err := n.authorizer.Authorize(ctx)
	if err != nil {
		log.Err(err).Msg("Failed to authorize callback")
		return err
	}

	payload, err := json.Marshal(renderedCallback{
		JobID:       params.JobID,
		UserID:      params.UserID,
		ArtifactKey: params.ArtifactKey,
		Duration:    params.Duration,
		Status:      params.Status,
	})
	if err != nil {
		log.Err(err).Msg("Failed to marshal callback payload")
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.callbackUrl, bytes.NewReader(payload))
	if err != nil {
		log.Err(err).Msg("Failed to create callback request")
		return err
	}

	req.Header.Add("Authorization", "Bearer "+token)
	req.Header.Add("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		log.Err(err).Msg("Failed to send callback request")
		return err
	}

	defer func(closer io.ReadCloser) {
		err := closer.Close()
		if err != nil {
			log.Err(err).Msg("Failed to close callback response body")
		}
	}(resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("callback returned unexpected status code %d", resp.StatusCode)
	}

	return nil
}
