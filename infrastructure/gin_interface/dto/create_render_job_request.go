package dto

type CreateRenderJobRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Script   string `json:"script" binding:"required"`
	Provider string `json:"provider"`
	Voice    string `json:"voice"`
}

type CreateRenderJobResponse struct {
	JobID          string  `json:"job_id"`
	ArtifactKey    string  `json:"artifact_key"`
	ArtifactRegion string  `json:"artifact_region"`
	Duration       float64 `json:"duration"`
}
