package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jebrand/jebman/internal/model"
	"github.com/pkg/errors"
)

// Dates are persisted as ISO-8601 text; the zero instant is stored as the
// empty string.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseDate(text string) time.Time {
	if text == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, text)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// Book reads join publishers and series so one round trip materializes the
// nested references; NULL foreign keys yield nil references.
const bookSelect = `
	SELECT
		b.id,
		b.isbn,
		b.uuid,
		b.title,
		b.series_id,
		b.series_number,
		b.publisher_id,
		b.date_published,
		b.date_added,
		b.date_modified,
		b.path,
		p.name,
		s.name
	FROM books b
	LEFT JOIN publishers p ON p.id = b.publisher_id
	LEFT JOIN series s ON s.id = b.series_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(scanner rowScanner) (*model.Book, error) {
	var (
		book          model.Book
		seriesID      sql.NullInt64
		publisherID   sql.NullInt64
		datePublished string
		dateAdded     string
		dateModified  string
		publisherName sql.NullString
		seriesName    sql.NullString
	)
	if err := scanner.Scan(
		&book.ID,
		&book.ISBN,
		&book.UUID,
		&book.Title,
		&seriesID,
		&book.SeriesNumber,
		&publisherID,
		&datePublished,
		&dateAdded,
		&dateModified,
		&book.Path,
		&publisherName,
		&seriesName,
	); err != nil {
		return nil, err
	}

	book.PublishDate = parseDate(datePublished)
	book.AddedDate = parseDate(dateAdded)
	book.ModifiedDate = parseDate(dateModified)

	if seriesID.Valid {
		id := seriesID.Int64
		book.SeriesID = &id
		if seriesName.Valid {
			book.Series = &model.Series{ID: id, Name: seriesName.String}
		}
	}
	if publisherID.Valid {
		id := publisherID.Int64
		book.PublisherID = &id
		if publisherName.Valid {
			book.Publisher = &model.Publisher{ID: id, Name: publisherName.String}
		}
	}
	return &book, nil
}

func bookArgs(book *model.Book) []any {
	var seriesID, publisherID any
	if book.SeriesID != nil {
		seriesID = *book.SeriesID
	}
	if book.PublisherID != nil {
		publisherID = *book.PublisherID
	}
	return []any{
		book.ISBN,
		book.UUID,
		book.Title,
		seriesID,
		book.SeriesNumber,
		publisherID,
		formatDate(book.PublishDate),
		formatDate(book.AddedDate),
		formatDate(book.ModifiedDate),
		book.Path,
	}
}

const bookInsert = `
	INSERT INTO books (
		isbn, uuid, title, series_id, series_number, publisher_id,
		date_published, date_added, date_modified, path
	) VALUES (?,?,?,?,?,?,?,?,?,?)
	RETURNING id`

func (s *Store) AddBook(book *model.Book) (*model.Book, error) {
	tx, done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	id, err := insertBookTx(tx, book)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	created := *book
	created.ID = id
	return &created, nil
}

func insertBookTx(tx *sql.Tx, book *model.Book) (int64, error) {
	var id int64
	err := tx.QueryRow(bookInsert, bookArgs(book)...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errors.Wrap(ErrNoRowsAffected, "inserting book")
	}
	if err != nil {
		return 0, errors.Wrap(err, "inserting book")
	}
	return id, nil
}

// AddBooks inserts all books inside one transaction guarded by a
// savepoint; any failed row aborts the whole batch.
func (s *Store) AddBooks(books []*model.Book) ([]*model.Book, error) {
	tx, done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	if _, err := tx.Exec(`SAVEPOINT batch_insert`); err != nil {
		return nil, errors.Wrap(err, "creating savepoint")
	}

	created := make([]*model.Book, 0, len(books))
	for _, book := range books {
		id, err := insertBookTx(tx, book)
		if err != nil {
			if _, rbErr := tx.Exec(`ROLLBACK TO SAVEPOINT batch_insert`); rbErr != nil {
				return nil, errors.Wrapf(rbErr, "rolling back to savepoint after: %v", err)
			}
			return nil, errors.Wrap(err, "batch insert of books aborted")
		}
		b := *book
		b.ID = id
		created = append(created, &b)
	}

	if _, err := tx.Exec(`RELEASE SAVEPOINT batch_insert`); err != nil {
		return nil, errors.Wrap(err, "releasing savepoint")
	}
	return created, tx.Commit()
}

func (s *Store) UpdateBook(id int64, book *model.Book) (*model.Book, error) {
	tx, done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	stmt := `
		UPDATE books SET
			isbn = ?, uuid = ?, title = ?, series_id = ?, series_number = ?,
			publisher_id = ?, date_published = ?, date_added = ?,
			date_modified = ?, path = ?
		WHERE id = ?`
	res, err := tx.Exec(stmt, append(bookArgs(book), id)...)
	if err != nil {
		return nil, errors.Wrapf(err, "updating book %d", id)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, errors.Wrapf(ErrNoRowsAffected, "updating book %d", id)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	updated := *book
	updated.ID = id
	return &updated, nil
}

func (s *Store) DeleteBookByID(id int64) error {
	return s.deleteByID("books", id)
}

func (s *Store) DeleteBooksByIDs(ids []int64) error {
	return s.deleteByIDs("books", ids)
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.BookID; v != nil {
		where, args = append(where, "b.id = ?"), append(args, *v)
	}
	if v := find.Title; v != nil {
		where, args = append(where, "b.title = ?"), append(args, *v)
	}
	if v := find.ISBN; v != nil {
		where, args = append(where, "b.isbn = ?"), append(args, *v)
	}
	if v := find.UUID; v != nil {
		where, args = append(where, "b.uuid = ?"), append(args, *v)
	}

	orderBy := "b.title"
	if v := find.OrderBy; v != nil {
		orderBy = *v
	}

	query := bookSelect + ` WHERE ` + strings.Join(where, " AND ") + ` ORDER BY ` + orderBy
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying books")
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning book")
		}
		list = append(list, book)
	}
	return list, rows.Err()
}

func (s *Store) GetBookByID(id int64) (*model.Book, error) {
	book, err := scanBook(s.db.QueryRow(bookSelect+` WHERE b.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "book %d", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "querying book %d", id)
	}
	return book, nil
}
