package store

import (
	"github.com/pkg/errors"
)

// Per-table DDL for callers that manage tables individually; the full
// embedded schema in store/db covers the normal bootstrap path.
var tableDDL = map[string]string{
	"authors":    `CREATE TABLE IF NOT EXISTS authors (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL COLLATE NOCASE UNIQUE)`,
	"publishers": `CREATE TABLE IF NOT EXISTS publishers (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL COLLATE NOCASE UNIQUE)`,
	"series":     `CREATE TABLE IF NOT EXISTS series (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL UNIQUE)`,
	"tags":       `CREATE TABLE IF NOT EXISTS tags (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL COLLATE NOCASE UNIQUE)`,
	"books": `CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		isbn TEXT NOT NULL DEFAULT '',
		uuid TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT 'Unknown',
		series_id INTEGER,
		series_number REAL NOT NULL DEFAULT 1.0,
		publisher_id INTEGER,
		date_published TEXT NOT NULL DEFAULT '',
		date_added TEXT NOT NULL DEFAULT '',
		date_modified TEXT NOT NULL DEFAULT '',
		path TEXT NOT NULL DEFAULT '')`,
	"books_authors_link": `CREATE TABLE IF NOT EXISTS books_authors_link (id INTEGER PRIMARY KEY AUTOINCREMENT, book_id INTEGER NOT NULL, author_id INTEGER NOT NULL)`,
	"books_tags_link":    `CREATE TABLE IF NOT EXISTS books_tags_link (id INTEGER PRIMARY KEY AUTOINCREMENT, book_id INTEGER NOT NULL, tag_id INTEGER NOT NULL)`,
}

func (s *Store) TableExists(name string) (bool, error) {
	stmt := `SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`
	var exists bool
	if err := s.db.QueryRow(stmt, name).Scan(&exists); err != nil {
		return false, errors.Wrapf(err, "checking table %s", name)
	}
	return exists, nil
}

func (s *Store) CreateTable(name string) error {
	ddl, ok := tableDDL[name]
	if !ok {
		return errors.Errorf("store: unknown table %s", name)
	}

	tx, done, err := s.begin()
	if err != nil {
		return err
	}
	defer done()

	if _, err := tx.Exec(ddl); err != nil {
		return errors.Wrapf(err, "creating table %s", name)
	}
	return tx.Commit()
}

func (s *Store) DropTable(name string) error {
	if _, ok := tableDDL[name]; !ok {
		return errors.Errorf("store: unknown table %s", name)
	}

	tx, done, err := s.begin()
	if err != nil {
		return err
	}
	defer done()

	if _, err := tx.Exec(`DROP TABLE IF EXISTS ` + name); err != nil {
		return errors.Wrapf(err, "dropping table %s", name)
	}
	return tx.Commit()
}
