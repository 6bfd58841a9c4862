package inbound

import (
	"context"

	"github.com/annastatham03-png/shorts-renderer/domain"
)

type StartPipelineParams struct {
	Job        domain.Job
	UserID     string
	OutputFile string
	Publish    bool
}

type RenderResult struct {
	JobID          string
	Output         domain.RenderedOutput
	ArtifactKey    string
	ArtifactRegion string
}

type RenderPipelinePort interface {
	StartPipeline(ctx context.Context, params StartPipelineParams) (*RenderResult, error)
}
