package library

import (
	"context"
	"fmt"
	"sort"
)

// CatalogItem is the normalized shape the catalog search produces. The
// service copies it verbatim into a new Record; it never calls the
// catalog itself.
type CatalogItem struct {
	GoogleBooksID string   `json:"googleBooksId"`
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	Thumbnail     string   `json:"thumbnail"`
	PreviewLink   string   `json:"previewLink"`
	PublishedDate string   `json:"publishedDate"`
	PageCount     int      `json:"pageCount"`
	Categories    []string `json:"categories"`
	AverageRating float64  `json:"averageRating"`
	RatingsCount  int      `json:"ratingsCount"`
}

// Service enforces the library's business rules on top of a Repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save adds a catalog volume to the user's library with default
// annotations. The same volume can be saved at most once per user.
func (s *Service) Save(ctx context.Context, userID string, item CatalogItem) (Record, error) {
	if item.GoogleBooksID == "" {
		return Record{}, fmt.Errorf("%w: book ID is required", ErrValidation)
	}
	if item.Title == "" {
		return Record{}, fmt.Errorf("%w: book title is required", ErrValidation)
	}
	if item.PageCount < 0 {
		return Record{}, fmt.Errorf("%w: page count must not be negative", ErrValidation)
	}

	rec := Record{
		UserID:        userID,
		GoogleBooksID: item.GoogleBooksID,
		Title:         item.Title,
		Subtitle:      item.Subtitle,
		Authors:       item.Authors,
		Description:   item.Description,
		Thumbnail:     item.Thumbnail,
		PreviewLink:   item.PreviewLink,
		PublishedDate: item.PublishedDate,
		PageCount:     item.PageCount,
		Categories:    item.Categories,
		AverageRating: item.AverageRating,
		RatingsCount:  item.RatingsCount,
		Status:        StatusWantToRead,
		Rating:        0,
		Review:        "",
		Notes:         "",
	}
	if rec.Authors == nil {
		rec.Authors = []string{}
	}
	if rec.Categories == nil {
		rec.Categories = []string{}
	}

	if err := s.repo.Insert(ctx, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns the user's records, optionally filtered by status. Stats
// always cover the whole library so a filtered view still shows the
// other buckets' counts.
func (s *Service) List(ctx context.Context, userID, statusFilter string) ([]Record, Stats, error) {
	if statusFilter != "" && ValidateStatus(statusFilter) != nil {
		// Unrecognized filter values fall back to an unfiltered list.
		statusFilter = ""
	}
	records, err := s.repo.ListByUser(ctx, userID, statusFilter)
	if err != nil {
		return nil, Stats{}, err
	}
	stats, err := s.repo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, Stats{}, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, stats, nil
}

// Get returns one owned record.
func (s *Service) Get(ctx context.Context, userID, id string) (Record, error) {
	return s.repo.GetOne(ctx, id, userID)
}

// Update applies the whitelisted annotation fields to an owned record.
func (s *Service) Update(ctx context.Context, userID, id string, upd Update) (Record, error) {
	if upd.Status != nil {
		if err := ValidateStatus(*upd.Status); err != nil {
			return Record{}, err
		}
	}
	if upd.Rating != nil && (*upd.Rating < 0 || *upd.Rating > 5) {
		return Record{}, fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
	}
	return s.repo.UpdateFields(ctx, id, userID, upd)
}

// Remove deletes an owned record. Deleting a record that is already gone
// reports ErrNotFound rather than silently succeeding.
func (s *Service) Remove(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, id, userID)
}

// Overview computes the dashboard aggregates: totals per status, pages
// read across the library, and the five most recently saved records.
func (s *Service) Overview(ctx context.Context, userID string) (Overview, error) {
	records, err := s.repo.ListByUser(ctx, userID, "")
	if err != nil {
		return Overview{}, err
	}
	stats, err := s.repo.CountByStatus(ctx, userID)
	if err != nil {
		return Overview{}, err
	}

	totalPages := 0
	for _, rec := range records {
		totalPages += rec.PageCount
	}

	recent := make([]Record, len(records))
	copy(recent, records)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return Overview{
		TotalBooks: stats.Total,
		BooksByStatus: StatusCounts{
			WantToRead: stats.WantToRead,
			Reading:    stats.Reading,
			Completed:  stats.Completed,
		},
		TotalPages:    totalPages,
		RecentlyAdded: recent,
	}, nil
}
