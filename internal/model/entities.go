package model

// Author identity is its case-insensitively unique name.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Publisher identity is its case-insensitively unique name.
type Publisher struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Series struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookAuthorLink joins a book to one of its authors. Pure associative
// record, no payload beyond the two foreign keys.
type BookAuthorLink struct {
	ID       int64 `json:"id"`
	BookID   int64 `json:"book"`
	AuthorID int64 `json:"author"`
}

// BookTagLink joins a book to one of its tags.
type BookTagLink struct {
	ID     int64 `json:"id"`
	BookID int64 `json:"book"`
	TagID  int64 `json:"tag"`
}
