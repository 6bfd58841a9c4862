package outbound

import (
	"context"

	"github.com/annastatham03-png/shorts-renderer/domain"
)

type StockMediaProviderPort interface {
	Name() domain.Provider
	Search(ctx context.Context, query string) ([]domain.MediaAsset, error)
}
