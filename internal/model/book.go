package model // import "github.com/jebrand/jebman/internal/model"

import "time"

// UnknownTitle is used when a book file carries no usable title metadata.
const UnknownTitle = "Unknown"

type Book struct {
	ID           int64     `json:"id"`
	ISBN         string    `json:"isbn"`
	UUID         string    `json:"uuid"`
	Title        string    `json:"title"`
	SeriesID     *int64    `json:"series_id"`
	SeriesNumber float64   `json:"series_number"`
	PublisherID  *int64    `json:"publisher_id"`
	PublishDate  time.Time `json:"publish_date"`
	AddedDate    time.Time `json:"added_date"`
	ModifiedDate time.Time `json:"modified_date"`
	// Path is relative to the library root.
	Path string `json:"path"`

	// Materialized references, filled on reads when the foreign keys are
	// set. Nil when the book has no publisher or series.
	Publisher *Publisher `json:"publisher,omitempty"`
	Series    *Series    `json:"series,omitempty"`
}

// SameAs reports whether two books share the natural equality key used for
// deduplication: isbn, title and publish date. It is a comparison aid, not
// a uniqueness constraint.
func (b *Book) SameAs(other *Book) bool {
	if other == nil {
		return false
	}
	return b.ISBN == other.ISBN &&
		b.Title == other.Title &&
		b.PublishDate.Equal(other.PublishDate)
}

// FindBook carries optional filters for book queries. Nil fields are not
// applied.
type FindBook struct {
	BookID  *int64
	Title   *string
	ISBN    *string
	UUID    *string
	OrderBy *string
	Limit   *int
}
