package catalog

import "strings"

// fallbackItems is the static last resort when the volumes API is
// unreachable on every path. The IDs are real Google Books IDs so a
// record saved from fallback data still points at a real volume.
var fallbackItems = []Item{
	{
		ID:             "wuTcjwEACAAJ",
		GoogleBooksID:  "wuTcjwEACAAJ",
		Title:          "Harry Potter and the Philosopher's Stone",
		Authors:        []string{"J.K. Rowling"},
		Description:    "Harry Potter has no idea how famous he is. That's because he's being raised by his miserable aunt and uncle who are terrified Harry will learn that he's really a wizard, just as his parents were.",
		Thumbnail:      "https://books.google.com/books/content?id=wuTcjwEACAAJ&printsec=frontcover&img=1&zoom=1&source=gbs_api",
		SmallThumbnail: "https://books.google.com/books/content?id=wuTcjwEACAAJ&printsec=frontcover&img=1&zoom=5&source=gbs_api",
		PageCount:      223,
		PublishedDate:  "1997-06-26",
		Publisher:      "Bloomsbury Publishing",
		Categories:     []string{"Fantasy", "Fiction", "Young Adult"},
		AverageRating:  4.5,
		RatingsCount:   12500,
		PreviewLink:    "https://books.google.com/books?id=wuTcjwEACAAJ&hl=&source=gbs_api",
		InfoLink:       "https://books.google.com/books?id=wuTcjwEACAAJ&hl=&source=gbs_api",
		Language:       "en",
	},
	{
		ID:             "yl4dILkcqmQC",
		GoogleBooksID:  "yl4dILkcqmQC",
		Title:          "Harry Potter and the Chamber of Secrets",
		Authors:        []string{"J.K. Rowling"},
		Description:    "Harry Potter's summer has included the worst birthday ever, doomy warnings from a house-elf called Dobby, and rescue from the Dursleys by his friend Ron Weasley in a magical flying car!",
		Thumbnail:      "https://books.google.com/books/content?id=yl4dILkcqmQC&printsec=frontcover&img=1&zoom=1&source=gbs_api",
		SmallThumbnail: "https://books.google.com/books/content?id=yl4dILkcqmQC&printsec=frontcover&img=1&zoom=5&source=gbs_api",
		PageCount:      251,
		PublishedDate:  "1998-07-02",
		Publisher:      "Bloomsbury Publishing",
		Categories:     []string{"Fantasy", "Fiction", "Young Adult"},
		AverageRating:  4.4,
		RatingsCount:   11500,
		PreviewLink:    "https://books.google.com/books?id=yl4dILkcqmQC&hl=&source=gbs_api",
		InfoLink:       "https://books.google.com/books?id=yl4dILkcqmQC&hl=&source=gbs_api",
		Language:       "en",
	},
	{
		ID:             "5iTebBW-w7QC",
		GoogleBooksID:  "5iTebBW-w7QC",
		Title:          "Harry Potter and the Prisoner of Azkaban",
		Authors:        []string{"J.K. Rowling"},
		Description:    "Harry Potter is lucky to reach the age of thirteen, since he has already survived the murderous attacks of the feared Dark Lord on more than one occasion.",
		Thumbnail:      "https://books.google.com/books/content?id=5iTebBW-w7QC&printsec=frontcover&img=1&zoom=1&source=gbs_api",
		SmallThumbnail: "https://books.google.com/books/content?id=5iTebBW-w7QC&printsec=frontcover&img=1&zoom=5&source=gbs_api",
		PageCount:      317,
		PublishedDate:  "1999-07-08",
		Publisher:      "Bloomsbury Publishing",
		Categories:     []string{"Fantasy", "Fiction", "Young Adult"},
		AverageRating:  4.6,
		RatingsCount:   13500,
		PreviewLink:    "https://books.google.com/books?id=5iTebBW-w7QC&hl=&source=gbs_api",
		InfoLink:       "https://books.google.com/books?id=5iTebBW-w7QC&hl=&source=gbs_api",
		Language:       "en",
	},
}

func fallbackSearch(query string) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return fallbackItems
	}

	var out []Item
	for _, item := range fallbackItems {
		if strings.Contains(strings.ToLower(item.Title), q) {
			out = append(out, item)
			continue
		}
		if containsFold(item.Authors, q) || containsFold(item.Categories, q) {
			out = append(out, item)
		}
	}
	return out
}

func fallbackByID(id string) (Item, bool) {
	for _, item := range fallbackItems {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

func containsFold(values []string, q string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
