package outbound

import "context"

type PublishArtifactRequest struct {
	JobID         string
	VideoFileName string
	RemoveLocal   bool
}

type PublishArtifactResponse struct {
	ArtifactKey string
	StoreRegion string
}

type ArtifactPublisherPort interface {
	Publish(ctx context.Context, req PublishArtifactRequest) (*PublishArtifactResponse, error)
}
