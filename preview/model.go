package preview

import (
	"github.com/annastatham03-png/shorts-renderer/domain"
)

// PreviewAsset is the canned-clip shape read from preview/assets.json,
// used when no live provider should be queried.
type PreviewAsset struct {
	ID       string  `json:"id"`
	Provider string  `json:"provider"`
	URL      string  `json:"url"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Duration float64 `json:"duration"`
}

func (a PreviewAsset) toDomain() domain.MediaAsset {
	return domain.MediaAsset{
		ID:       a.ID,
		Provider: domain.Provider(a.Provider),
		URL:      a.URL,
		Width:    a.Width,
		Height:   a.Height,
		Duration: a.Duration,
	}
}
