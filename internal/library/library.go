package library

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Reading status values. Any status can move to any other; there is no
// terminal state.
const (
	StatusWantToRead = "Want to Read"
	StatusReading    = "Reading"
	StatusCompleted  = "Completed"
)

var (
	// ErrNotFound is returned when a record does not exist or belongs to
	// a different user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when the user already saved the same
	// catalog volume.
	ErrDuplicate = errors.New("book already saved")

	// ErrValidation wraps input problems the caller can fix.
	ErrValidation = errors.New("invalid input")
)

func ValidateStatus(status string) error {
	switch status {
	case StatusWantToRead, StatusReading, StatusCompleted:
		return nil
	default:
		return fmt.Errorf("%w: invalid status: %s", ErrValidation, status)
	}
}

// Record is one saved book in a user's library. Descriptive fields are
// copied from the catalog at save time and never refreshed afterwards.
type Record struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	GoogleBooksID string    `json:"googleBooksId"`
	Title         string    `json:"title"`
	Subtitle      string    `json:"subtitle,omitempty"`
	Authors       []string  `json:"authors"`
	Description   string    `json:"description,omitempty"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	PreviewLink   string    `json:"previewLink,omitempty"`
	PublishedDate string    `json:"publishedDate,omitempty"`
	PageCount     int       `json:"pageCount"`
	Categories    []string  `json:"categories"`
	AverageRating float64   `json:"averageRating"`
	RatingsCount  int       `json:"ratingsCount"`
	Status        string    `json:"status"`
	Rating        float64   `json:"rating"`
	Review        string    `json:"review"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Update carries the only fields a user may change on a saved record.
// Nil means "leave as is". Everything else in an update payload is
// dropped before it gets here. An all-nil update is still an update:
// it refreshes the record's updatedAt.
type Update struct {
	Status *string  `json:"status"`
	Rating *float64 `json:"rating"`
	Review *string  `json:"review"`
	Notes  *string  `json:"notes"`
}

// Stats summarizes a user's whole library. Total always equals the sum
// of the three status counts.
type Stats struct {
	Total      int `json:"total"`
	WantToRead int `json:"wantToRead"`
	Reading    int `json:"reading"`
	Completed  int `json:"completed"`
}

// Overview is the stats payload for the library dashboard.
type Overview struct {
	TotalBooks    int          `json:"totalBooks"`
	BooksByStatus StatusCounts `json:"booksByStatus"`
	TotalPages    int          `json:"totalPages"`
	RecentlyAdded []Record     `json:"recentlyAdded"`
}

type StatusCounts struct {
	WantToRead int `json:"wantToRead"`
	Reading    int `json:"reading"`
	Completed  int `json:"completed"`
}

// Repository is the storage contract for library records. Implementations
// must enforce per-user uniqueness on GoogleBooksID atomically, scope
// every lookup by both record id and user id, and never leak
// backend-specific error values past this boundary.
type Repository interface {
	Insert(ctx context.Context, rec *Record) error
	ListByUser(ctx context.Context, userID, statusFilter string) ([]Record, error)
	GetOne(ctx context.Context, id, userID string) (Record, error)
	UpdateFields(ctx context.Context, id, userID string, upd Update) (Record, error)
	Delete(ctx context.Context, id, userID string) error
	CountByStatus(ctx context.Context, userID string) (Stats, error)
}
