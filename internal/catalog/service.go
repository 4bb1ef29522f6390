package catalog

import (
	"context"
	"log"

	"libraryapi/internal/platform/googlebooks"
)

// Source labels on search responses, so clients can tell which rung of
// the degradation ladder answered.
const (
	SourceAPI      = "google-books-api"
	SourceAPINoKey = "google-books-api-no-key"
	SourceFallback = "fallback-data"
)

// SearchResult is a search answer plus its provenance.
type SearchResult struct {
	Items        []Item
	TotalResults int
	Source       string
}

// Service answers catalog queries with availability over completeness:
// a keyed API request, then a keyless one with reduced page size, then
// static fallback data. Search never fails on upstream trouble.
type Service struct {
	client *googlebooks.Client
}

func NewService(client *googlebooks.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Search(ctx context.Context, query string, maxResults int) SearchResult {
	if maxResults <= 0 || maxResults > 40 {
		maxResults = 20
	}

	res, err := s.client.SearchVolumes(ctx, query, maxResults, true)
	if err == nil {
		return SearchResult{
			Items:        normalizeAll(res.Items),
			TotalResults: res.TotalItems,
			Source:       SourceAPI,
		}
	}
	log.Printf("catalog search failed, retrying without key: query=%q error=%v", query, err)

	keylessMax := maxResults
	if keylessMax > 10 {
		keylessMax = 10
	}
	res, err = s.client.SearchVolumes(ctx, query, keylessMax, false)
	if err == nil {
		return SearchResult{
			Items:        normalizeAll(res.Items),
			TotalResults: res.TotalItems,
			Source:       SourceAPINoKey,
		}
	}
	log.Printf("keyless catalog search failed, serving fallback data: query=%q error=%v", query, err)

	items := fallbackSearch(query)
	return SearchResult{
		Items:        items,
		TotalResults: len(items),
		Source:       SourceFallback,
	}
}

// Detail fetches one volume by ID through the same ladder. Unlike
// Search it can report ErrNotFound, because a missing volume is an
// answer, not an outage.
func (s *Service) Detail(ctx context.Context, id string) (Item, string, error) {
	v, err := s.client.GetVolume(ctx, id, true)
	if err == nil {
		return Normalize(*v, false), SourceAPI, nil
	}
	log.Printf("volume lookup failed, retrying without key: id=%s error=%v", id, err)

	v, err = s.client.GetVolume(ctx, id, false)
	if err == nil {
		return Normalize(*v, false), SourceAPINoKey, nil
	}
	log.Printf("keyless volume lookup failed, checking fallback data: id=%s error=%v", id, err)

	if item, ok := fallbackByID(id); ok {
		return item, SourceFallback, nil
	}
	return Item{}, "", ErrNotFound
}

func normalizeAll(volumes []googlebooks.Volume) []Item {
	items := make([]Item, 0, len(volumes))
	for _, v := range volumes {
		items = append(items, Normalize(v, true))
	}
	return items
}
