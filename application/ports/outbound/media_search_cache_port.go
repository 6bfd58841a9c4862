package outbound

import (
	"context"

	"github.com/annastatham03-png/shorts-renderer/domain"
)

// MediaSearchCachePort caches provider search results by query. Get returns
// a nil slice on a miss; cache failures must not fail the lookup path.
type MediaSearchCachePort interface {
	Get(ctx context.Context, provider domain.Provider, query string) ([]domain.MediaAsset, error)
	Put(ctx context.Context, provider domain.Provider, query string, assets []domain.MediaAsset) error
}
