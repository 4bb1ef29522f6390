package catalog

import (
	"errors"
	"strings"
	"unicode/utf8"

	"libraryapi/internal/platform/googlebooks"
)

// ErrNotFound is returned when no volume matches the requested ID.
var ErrNotFound = errors.New("volume not found")

const (
	placeholderThumbnail      = "https://via.placeholder.com/128x196/3b82f6/ffffff?text=No+Cover"
	placeholderSmallThumbnail = "https://via.placeholder.com/64x96/3b82f6/ffffff?text=No+Cover"

	maxDescriptionLen = 300
)

// Item is the normalized catalog record the API returns from search.
// Saving a book posts this shape back; the library copies the fields it
// keeps.
type Item struct {
	ID             string   `json:"id"`
	GoogleBooksID  string   `json:"googleBooksId"`
	Title          string   `json:"title"`
	Subtitle       string   `json:"subtitle"`
	Authors        []string `json:"authors"`
	Description    string   `json:"description"`
	Thumbnail      string   `json:"thumbnail"`
	SmallThumbnail string   `json:"smallThumbnail"`
	PageCount      int      `json:"pageCount"`
	PublishedDate  string   `json:"publishedDate"`
	Publisher      string   `json:"publisher"`
	Categories     []string `json:"categories"`
	AverageRating  float64  `json:"averageRating"`
	RatingsCount   int      `json:"ratingsCount"`
	PreviewLink    string   `json:"previewLink"`
	InfoLink       string   `json:"infoLink"`
	Language       string   `json:"language"`
	ISBN10         string   `json:"isbn10,omitempty"`
	ISBN13         string   `json:"isbn13,omitempty"`
}

// Normalize converts a raw volume into an Item, filling the defaults the
// UI expects: https thumbnails with a placeholder fallback, an authors
// slice that is never empty, and a description capped for list views.
func Normalize(v googlebooks.Volume, truncateDescription bool) Item {
	info := v.VolumeInfo

	item := Item{
		ID:             v.ID,
		GoogleBooksID:  v.ID,
		Title:          info.Title,
		Subtitle:       info.Subtitle,
		Authors:        info.Authors,
		Description:    info.Description,
		Thumbnail:      httpsURL(info.ImageLinks.Thumbnail),
		SmallThumbnail: httpsURL(info.ImageLinks.SmallThumbnail),
		PageCount:      info.PageCount,
		PublishedDate:  info.PublishedDate,
		Publisher:      info.Publisher,
		Categories:     info.Categories,
		AverageRating:  info.AverageRating,
		RatingsCount:   info.RatingsCount,
		PreviewLink:    info.PreviewLink,
		InfoLink:       info.InfoLink,
		Language:       info.Language,
	}

	if item.Title == "" {
		item.Title = "Unknown Title"
	}
	if len(item.Authors) == 0 {
		item.Authors = []string{"Unknown Author"}
	}
	if item.Categories == nil {
		item.Categories = []string{}
	}
	if item.Description == "" {
		item.Description = "No description available"
	} else if truncateDescription && len(item.Description) > maxDescriptionLen {
		cut := maxDescriptionLen
		// Back off to a rune boundary so the cut never splits a
		// multibyte character.
		for cut > 0 && !utf8.RuneStart(item.Description[cut]) {
			cut--
		}
		item.Description = item.Description[:cut] + "..."
	}
	if item.Thumbnail == "" {
		item.Thumbnail = placeholderThumbnail
	}
	if item.SmallThumbnail == "" {
		item.SmallThumbnail = item.Thumbnail
		if item.SmallThumbnail == placeholderThumbnail {
			item.SmallThumbnail = placeholderSmallThumbnail
		}
	}
	if item.Publisher == "" {
		item.Publisher = "Unknown Publisher"
	}
	if item.Language == "" {
		item.Language = "en"
	}

	for _, ident := range info.IndustryIdentifiers {
		switch ident.Type {
		case "ISBN_10":
			item.ISBN10 = ident.Identifier
		case "ISBN_13":
			item.ISBN13 = ident.Identifier
		}
	}

	return item
}

func httpsURL(u string) string {
	return strings.Replace(u, "http://", "https://", 1)
}
