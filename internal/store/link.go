package store

import (
	"database/sql"

	"github.com/jebrand/jebman/internal/model"
	"github.com/pkg/errors"
)

func (s *Store) AddBookAuthorLink(link *model.BookAuthorLink) (*model.BookAuthorLink, error) {
	id, err := s.insertLink("books_authors_link", "author_id", link.BookID, link.AuthorID)
	if err != nil {
		return nil, err
	}
	return &model.BookAuthorLink{ID: id, BookID: link.BookID, AuthorID: link.AuthorID}, nil
}

func (s *Store) AddBookTagLink(link *model.BookTagLink) (*model.BookTagLink, error) {
	id, err := s.insertLink("books_tags_link", "tag_id", link.BookID, link.TagID)
	if err != nil {
		return nil, err
	}
	return &model.BookTagLink{ID: id, BookID: link.BookID, TagID: link.TagID}, nil
}

func (s *Store) insertLink(table, refColumn string, bookID, refID int64) (int64, error) {
	tx, done, err := s.begin()
	if err != nil {
		return 0, err
	}
	defer done()

	var id int64
	stmt := `INSERT INTO ` + table + ` (book_id, ` + refColumn + `) VALUES (?, ?) RETURNING id`
	err = tx.QueryRow(stmt, bookID, refID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errors.Wrapf(ErrNoRowsAffected, "inserting into %s", table)
	}
	if err != nil {
		return 0, errors.Wrapf(err, "inserting into %s", table)
	}
	return id, tx.Commit()
}

func (s *Store) ListAuthorLinksByBook(bookID int64) ([]*model.BookAuthorLink, error) {
	rows, err := s.db.Query(`SELECT id, book_id, author_id FROM books_authors_link WHERE book_id = ?`, bookID)
	if err != nil {
		return nil, errors.Wrap(err, "querying author links")
	}
	defer rows.Close()

	var list []*model.BookAuthorLink
	for rows.Next() {
		var link model.BookAuthorLink
		if err := rows.Scan(&link.ID, &link.BookID, &link.AuthorID); err != nil {
			return nil, err
		}
		list = append(list, &link)
	}
	return list, rows.Err()
}

func (s *Store) ListTagLinksByBook(bookID int64) ([]*model.BookTagLink, error) {
	rows, err := s.db.Query(`SELECT id, book_id, tag_id FROM books_tags_link WHERE book_id = ?`, bookID)
	if err != nil {
		return nil, errors.Wrap(err, "querying tag links")
	}
	defer rows.Close()

	var list []*model.BookTagLink
	for rows.Next() {
		var link model.BookTagLink
		if err := rows.Scan(&link.ID, &link.BookID, &link.TagID); err != nil {
			return nil, err
		}
		list = append(list, &link)
	}
	return list, rows.Err()
}

// HasBookTagLink reports whether the book already carries the tag.
func (s *Store) HasBookTagLink(bookID, tagID int64) (bool, error) {
	stmt := `SELECT EXISTS(SELECT 1 FROM books_tags_link WHERE book_id = ? AND tag_id = ?)`
	var exists bool
	if err := s.db.QueryRow(stmt, bookID, tagID).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "checking tag link")
	}
	return exists, nil
}

// DeleteLinksByBookID removes every link row referencing the book in both
// link tables. Zero affected rows is fine here: a book may have no tags.
func (s *Store) DeleteLinksByBookID(bookID int64) error {
	tx, done, err := s.begin()
	if err != nil {
		return err
	}
	defer done()

	for _, table := range []string{"books_authors_link", "books_tags_link"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE book_id = ?`, bookID); err != nil {
			return errors.Wrapf(err, "deleting from %s", table)
		}
	}
	return tx.Commit()
}
