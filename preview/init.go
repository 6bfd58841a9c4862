package preview

import (
	"github.com/annastatham03-png/shorts-renderer/application/ports/inbound"
	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/gin-gonic/gin"
)

func Init(g *gin.Engine, workerPool outbound.TaskDispatcher, segmenter inbound.ScriptSegmenterPort,
	assembler inbound.TimelineAssemblerPort, logger outbound.LoggerPort, handlers ...gin.HandlerFunc) {
	assetReader := NewFileAssetReader(logger)
	runner := NewRunner(workerPool, segmenter, assembler, assetReader, logger)
	previewController := NewPreviewController(logger, runner)

	previewController.RegisterRoutes(g, handlers...)
}
