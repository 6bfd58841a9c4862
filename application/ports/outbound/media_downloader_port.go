package outbound

import (
	"context"

	"github.com/annastatham03-png/shorts-renderer/domain"
)

type MediaDownloaderPort interface {
	Download(ctx context.Context, asset domain.MediaAsset, destDir string) (string, error)
}
