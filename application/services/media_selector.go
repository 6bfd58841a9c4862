package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/annastatham03-png/shorts-renderer/application/ports/inbound"
	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/domain"
)

var ErrMediaUnavailable = errors.New("no stock media available for topic")

const maxQueryLen = 60

type mediaSelector struct {
	logger      outbound.LoggerPort
	workerPool  outbound.TaskDispatcher
	providers   map[domain.Provider]outbound.StockMediaProviderPort
	searchCache outbound.MediaSearchCachePort
	queryRegexp *regexp.Regexp
}

// NewMediaSelector wires the configured stock providers. searchCache may be
// nil, in which case every lookup goes to the live APIs.
func NewMediaSelector(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	searchCache outbound.MediaSearchCachePort, providers ...outbound.StockMediaProviderPort) inbound.MediaSelectorPort {
	byName := make(map[domain.Provider]outbound.StockMediaProviderPort, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &mediaSelector{
		logger:      logger,
		workerPool:  workerPool,
		providers:   byName,
		searchCache: searchCache,
		queryRegexp: regexp.MustCompile(`[^a-zA-Z0-9 _-]`),
	}
}

func (m *mediaSelector) Select(ctx context.Context, segments <-chan domain.SegmentAudio, params inbound.SelectMediaParams) (<-chan domain.SegmentMedia, <-chan error) {
	out := make(chan domain.SegmentMedia)
	errCh := make(chan error, 5)
	newCtx, cancel := context.WithCancel(ctx)

	err := m.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		candidates, err := m.fetchCandidates(newCtx, params)
		if err != nil {
			select {
			case errCh <- err:
			case <-newCtx.Done():
			}
			return
		}

		for segment := range segments {
			select {
			case <-newCtx.Done():
				return
			case out <- domain.SegmentMedia{
				SegmentAudio: segment,
				Candidates:   rotate(candidates, segment.Ordinal),
			}:
			}
		}
	})
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
		cancel()
	}

	return out, errCh
}

// fetchCandidates queries the selected providers once per job and merges the
// result sets. A single failing provider degrades to the other; the job only
// fails when nothing was found anywhere.
func (m *mediaSelector) fetchCandidates(ctx context.Context, params inbound.SelectMediaParams) ([]domain.MediaAsset, error) {
	merged := make([]domain.MediaAsset, 0)
	seen := make(map[string]struct{})
	query := m.sanitizeQuery(params.Topic)

	var lastErr error
	for _, provider := range m.resolveProviders(params.Provider) {
		assets, err := m.search(ctx, provider, query)
		if err != nil {
			m.logger.WarnWithFields("Stock provider failed, degrading", map[string]interface{}{
				"provider": provider.Name(),
				"query":    query,
				"error":    err.Error(),
			})
			lastErr = err
			continue
		}
		for _, asset := range assets {
			if _, ok := seen[asset.Key()]; ok {
				continue
			}
			seen[asset.Key()] = struct{}{}
			merged = append(merged, asset)
		}
	}

	if len(merged) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrMediaUnavailable, lastErr)
		}
		return nil, ErrMediaUnavailable
	}

	return merged, nil
}

func (m *mediaSelector) search(ctx context.Context, provider outbound.StockMediaProviderPort, query string) ([]domain.MediaAsset, error) {
	if m.searchCache != nil {
		cached, err := m.searchCache.Get(ctx, provider.Name(), query)
		if err != nil {
			m.logger.Warn("Media search cache lookup failed: " + err.Error())
		} else if len(cached) > 0 {
			return cached, nil
		}
	}

	assets, err := provider.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if m.searchCache != nil && len(assets) > 0 {
		if err := m.searchCache.Put(ctx, provider.Name(), query, assets); err != nil {
			m.logger.Warn("Media search cache store failed: " + err.Error())
		}
	}

	return assets, nil
}

func (m *mediaSelector) resolveProviders(selection domain.Provider) []outbound.StockMediaProviderPort {
	if selection == domain.BothProviders {
		resolved := make([]outbound.StockMediaProviderPort, 0, len(m.providers))
		for _, name := range []domain.Provider{domain.PexelsProvider, domain.PixabayProvider} {
			if p, ok := m.providers[name]; ok {
				resolved = append(resolved, p)
			}
		}
		return resolved
	}
	if p, ok := m.providers[selection]; ok {
		return []outbound.StockMediaProviderPort{p}
	}
	return nil
}

func (m *mediaSelector) sanitizeQuery(topic string) string {
	query := m.queryRegexp.ReplaceAllString(topic, "")
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > maxQueryLen {
		query = strings.TrimSpace(query[:maxQueryLen])
	}
	if query == "" {
		query = "trend"
	}
	return query
}

// rotate offsets the ranked candidates per segment so consecutive segments
// prefer different clips.
func rotate(assets []domain.MediaAsset, offset int) []domain.MediaAsset {
	if len(assets) == 0 {
		return nil
	}
	offset = offset % len(assets)
	rotated := make([]domain.MediaAsset, 0, len(assets))
	rotated = append(rotated, assets[offset:]...)
	rotated = append(rotated, assets[:offset]...)
	return rotated
}
