package controllers

import (
	"context"
	"os"
	"path/filepath"

	"github.com/annastatham03-png/shorts-renderer/application/ports/inbound"
	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/domain"
	"github.com/annastatham03-png/shorts-renderer/infrastructure/gin_interface/dto"
	"github.com/annastatham03-png/shorts-renderer/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RenderJobsController interface {
	CreateRenderJob(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type renderJobsController struct {
	logger         outbound.LoggerPort
	renderPipeline inbound.RenderPipelinePort
}

func NewRenderJobsController(
	logger outbound.LoggerPort,
	renderPipeline inbound.RenderPipelinePort,
) RenderJobsController {
	return &renderJobsController{
		logger:         logger,
		renderPipeline: renderPipeline,
	}
}

func (s *renderJobsController) CreateRenderJob(c *gin.Context) {
	var request dto.CreateRenderJobRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	if err := c.ShouldBindJSON(&request); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			s.logger.Error(err, "failed to abort with error")
		}
		return
	}

	provider, err := domain.ParseProvider(request.Provider)
	if err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			s.logger.Error(err, "failed to abort with error")
		}
		return
	}

	jobID := uuid.NewString()
	job := domain.NewJob(jobID, request.Topic, request.Script, provider, request.Voice)

	res, err := s.renderPipeline.StartPipeline(newCtx, inbound.StartPipelineParams{
		Job:        job,
		UserID:     c.GetString(middleware.ContextUserIDKey),
		OutputFile: filepath.Join(os.TempDir(), jobID+".mp4"),
		Publish:    true,
	})
	if err != nil {
		err = c.AbortWithError(500, err)
		if err != nil {
			s.logger.Error(err, "failed to abort with error")
		}
		return
	}

	c.JSON(200, dto.CreateRenderJobResponse{
		JobID:          res.JobID,
		ArtifactKey:    res.ArtifactKey,
		ArtifactRegion: res.ArtifactRegion,
		Duration:       res.Output.Duration,
	})
}

func (s *renderJobsController) RegisterRoutes(g *gin.Engine) {
	g.POST("/render", s.CreateRenderJob)
}
