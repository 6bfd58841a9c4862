package preview

import (
	"context"
	"sync"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/infrastructure/gin_interface/dto"
	"github.com/annastatham03-png/shorts-renderer/middleware"
	"github.com/gin-gonic/gin"
)

type PreviewController interface {
	PreviewRenderJob(c *gin.Context)
	RegisterRoutes(g *gin.Engine, handlers ...gin.HandlerFunc)
}

type previewController struct {
	logger outbound.LoggerPort
	runner *Runner
}

func NewPreviewController(logger outbound.LoggerPort, runner *Runner) PreviewController {
	return &previewController{
		logger: logger,
		runner: runner,
	}
}

// PreviewRenderJob is the only goroutine writing events; the runner's entry
// and error channels are drained here so SSEvent calls never race each other.
func (m *previewController) PreviewRenderJob(c *gin.Context) {
	var request dto.CreateRenderJobRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	defer c.Abort()
	if err := c.ShouldBindJSON(&request); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			m.logger.Error(err, "failed to abort with error")
		}
		return
	}

	entryEvents, errCh := m.runner.Run(newCtx, request.Script)

	var streamErr error
	for entryEvents != nil || errCh != nil {
		select {
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			m.logger.Error(err, "error in preview run")
			if streamErr == nil {
				streamErr = err
			}
			cancel()
		case event, ok := <-entryEvents:
			if !ok {
				entryEvents = nil
				continue
			}
			m.writeEvent(c, "entry", event)
		}
	}

	if streamErr != nil {
		m.writeEvent(c, "error", "internal server error")
		return
	}
	m.writeEvent(c, "preview_complete", nil)
}

// writeEvent shares the write lock with the keepalive middleware.
func (m *previewController) writeEvent(c *gin.Context, name string, message interface{}) {
	if lock, ok := c.Get(middleware.ContextSSEWriteLockKey); ok {
		if mu, ok := lock.(*sync.Mutex); ok {
			mu.Lock()
			defer mu.Unlock()
		}
	}
	c.SSEvent(name, message)
	c.Writer.Flush()
}

func (m *previewController) RegisterRoutes(g *gin.Engine, handlers ...gin.HandlerFunc) {
	g.POST("/render/preview", append(handlers, m.PreviewRenderJob)...)
}
