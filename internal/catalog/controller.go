// Package catalog orchestrates imports: extract metadata, resolve linked
// entities, persist the records and place the file in the library tree.
package catalog // import "github.com/jebrand/jebman/internal/catalog"

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jebrand/jebman/internal/config"
	"github.com/jebrand/jebman/internal/log"
	"github.com/jebrand/jebman/internal/model"
	"github.com/jebrand/jebman/internal/parsers"
	"github.com/jebrand/jebman/internal/storage"
	"github.com/jebrand/jebman/internal/store"
	"github.com/jebrand/jebman/internal/util/dates"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// UnknownAuthor is used when a book file carries no creator metadata.
const UnknownAuthor = "Unknown"

type Controller struct {
	opts  *config.Options
	store *store.Store

	// Name caches keyed by the lower-cased name; the store is the source
	// of truth on a miss.
	authors    map[string]*model.Author
	publishers map[string]*model.Publisher
	tags       map[string]*model.Tag
}

// NewController warms the name caches from the store.
func NewController(opts *config.Options, s *store.Store) (*Controller, error) {
	c := &Controller{
		opts:       opts,
		store:      s,
		authors:    make(map[string]*model.Author),
		publishers: make(map[string]*model.Publisher),
		tags:       make(map[string]*model.Tag),
	}

	authors, err := s.ListAuthors()
	if err != nil {
		return nil, errors.Wrap(err, "loading authors")
	}
	for _, a := range authors {
		c.authors[strings.ToLower(a.Name)] = a
	}

	publishers, err := s.ListPublishers()
	if err != nil {
		return nil, errors.Wrap(err, "loading publishers")
	}
	for _, p := range publishers {
		c.publishers[strings.ToLower(p.Name)] = p
	}

	tags, err := s.ListTags()
	if err != nil {
		return nil, errors.Wrap(err, "loading tags")
	}
	for _, t := range tags {
		c.tags[strings.ToLower(t.Name)] = t
	}

	return c, nil
}

// InsertBook imports the file at path into the catalog. The database rows
// are written first and the file is copied last; a failed copy deletes the
// rows again so no catalog record points at a missing file and no file is
// left without a record.
func (c *Controller) InsertBook(path string) (*model.Book, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !c.opts.CheckSupportedTypes(ext) {
		return nil, errors.Wrapf(parsers.ErrUnsupportedFormat, "extension %q", ext)
	}

	meta, err := parsers.Extract(path)
	if err != nil {
		return nil, err
	}

	title := meta.Get(model.MetaTitle)
	if title == "" {
		title = model.UnknownTitle
	}
	authorName := meta.Get(model.MetaCreator)
	if authorName == "" {
		authorName = UnknownAuthor
	}

	author, err := c.resolveAuthor(authorName)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	book := &model.Book{
		ISBN:         meta.Get(model.MetaISBN),
		UUID:         meta.Get(model.MetaUUID),
		Title:        title,
		SeriesNumber: 1,
		PublishDate:  dates.Parse(meta.Get(model.MetaDate)).Truncate(24 * time.Hour),
		AddedDate:    now,
		ModifiedDate: now,
		Path:         filepath.Join(author.Name, title+"."+ext),
	}
	// A book without any identifier gets a generated one so it can still
	// be referenced unambiguously.
	if book.ISBN == "" && book.UUID == "" {
		book.UUID = uuid.NewString()
	}

	if ext == "epub" {
		if name := meta.Get(model.MetaPublisher); name != "" {
			publisher, err := c.resolvePublisher(name)
			if err != nil {
				return nil, err
			}
			book.PublisherID = &publisher.ID
			book.Publisher = publisher
		}
	}

	if name := meta.Get(model.MetaSeries); name != "" {
		series, err := c.resolveSeries(name)
		if err != nil {
			return nil, err
		}
		book.SeriesID = &series.ID
		book.Series = series
		if idx, err := strconv.ParseFloat(meta.Get(model.MetaSeriesIndex), 64); err == nil {
			book.SeriesNumber = idx
		}
	}

	c.warnOnDuplicate(book)

	created, err := c.store.AddBook(book)
	if err != nil {
		return nil, err
	}
	link, err := c.store.AddBookAuthorLink(&model.BookAuthorLink{BookID: created.ID, AuthorID: author.ID})
	if err != nil {
		c.compensateInsert(created.ID)
		return nil, err
	}

	authorDir := filepath.Join(c.opts.Library, author.Name)
	if err := storage.EnsureDir(authorDir); err != nil {
		c.compensateInsert(created.ID)
		return nil, err
	}
	if err := storage.CopyFile(path, filepath.Join(c.opts.Library, created.Path)); err != nil {
		c.compensateInsert(created.ID)
		return nil, err
	}

	log.Info("Book imported",
		zap.Int64("book_id", created.ID),
		zap.String("title", created.Title),
		zap.String("author", author.Name),
		zap.Int64("link_id", link.ID))
	return created, nil
}

// compensateInsert undoes the catalog rows of a half-finished import.
func (c *Controller) compensateInsert(bookID int64) {
	if err := c.store.DeleteLinksByBookID(bookID); err != nil {
		log.Error("Failed to clean up links after aborted import",
			zap.Int64("book_id", bookID), zap.Error(err))
	}
	if err := c.store.DeleteBookByID(bookID); err != nil {
		log.Error("Failed to clean up book row after aborted import",
			zap.Int64("book_id", bookID), zap.Error(err))
	}
}

// warnOnDuplicate logs when a book with the same natural key (isbn, title,
// publish date) is already cataloged. Duplicates are allowed, only
// surfaced.
func (c *Controller) warnOnDuplicate(book *model.Book) {
	existing, err := c.store.ListBooks(&model.FindBook{Title: &book.Title})
	if err != nil {
		log.Warn("Duplicate check failed", zap.Error(err))
		return
	}
	for _, b := range existing {
		if book.SameAs(b) {
			log.Warn("Importing a book that appears to be cataloged already",
				zap.Int64("existing_book_id", b.ID),
				zap.String("title", b.Title),
				zap.String("isbn", b.ISBN))
			return
		}
	}
}

// RemoveBook deletes the catalog rows, the backing file and, when the
// author directory becomes empty, the directory itself.
func (c *Controller) RemoveBook(id int64) error {
	book, err := c.store.GetBookByID(id)
	if err != nil {
		return err
	}

	if err := c.store.DeleteLinksByBookID(id); err != nil {
		return err
	}
	if err := c.store.DeleteBookByID(id); err != nil {
		return err
	}

	filePath := filepath.Join(c.opts.Library, book.Path)
	if storage.Exists(filePath) {
		if err := storage.RemoveFile(filePath); err != nil {
			return err
		}
		if err := storage.PruneEmptyDir(filepath.Dir(filePath)); err != nil {
			return err
		}
	}

	log.Info("Book removed", zap.Int64("book_id", id), zap.String("title", book.Title))
	return nil
}

// TagBook attaches the tag to the book, creating the tag when it does not
// exist. Tagging twice with the same (case-insensitively equal) name is a
// no-op.
func (c *Controller) TagBook(bookID int64, tagName string) error {
	tagName = strings.TrimSpace(tagName)
	if tagName == "" {
		return errors.New("tag name is empty")
	}

	if _, err := c.store.GetBookByID(bookID); err != nil {
		return err
	}

	tag, err := c.resolveTag(tagName)
	if err != nil {
		return err
	}

	linked, err := c.store.HasBookTagLink(bookID, tag.ID)
	if err != nil {
		return err
	}
	if linked {
		return nil
	}

	_, err = c.store.AddBookTagLink(&model.BookTagLink{BookID: bookID, TagID: tag.ID})
	return err
}

func (c *Controller) GetBooks() ([]*model.Book, error) {
	return c.store.ListBooks(&model.FindBook{})
}

func (c *Controller) GetBook(id int64) (*model.Book, error) {
	return c.store.GetBookByID(id)
}

func (c *Controller) GetBookTags(bookID int64) ([]*model.Tag, error) {
	links, err := c.store.ListTagLinksByBook(bookID)
	if err != nil {
		return nil, err
	}
	tags := make([]*model.Tag, 0, len(links))
	for _, link := range links {
		tag, err := c.store.GetTagByID(link.TagID)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (c *Controller) GetBookAuthors(bookID int64) ([]*model.Author, error) {
	links, err := c.store.ListAuthorLinksByBook(bookID)
	if err != nil {
		return nil, err
	}
	authors := make([]*model.Author, 0, len(links))
	for _, link := range links {
		author, err := c.store.GetAuthorByID(link.AuthorID)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, nil
}

func (c *Controller) resolveAuthor(name string) (*model.Author, error) {
	key := strings.ToLower(name)
	if a, ok := c.authors[key]; ok {
		return a, nil
	}

	a, err := c.store.GetAuthorByName(name)
	if err == nil {
		c.authors[key] = a
		return a, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	a, err = c.store.AddAuthor(&model.Author{Name: name})
	if err != nil {
		return nil, err
	}
	c.authors[key] = a
	return a, nil
}

func (c *Controller) resolvePublisher(name string) (*model.Publisher, error) {
	key := strings.ToLower(name)
	if p, ok := c.publishers[key]; ok {
		return p, nil
	}

	p, err := c.store.GetPublisherByName(name)
	if err == nil {
		c.publishers[key] = p
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	p, err = c.store.AddPublisher(&model.Publisher{Name: name})
	if err != nil {
		return nil, err
	}
	c.publishers[key] = p
	return p, nil
}

func (c *Controller) resolveSeries(name string) (*model.Series, error) {
	s, err := c.store.GetSeriesByName(name)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return c.store.AddSeries(&model.Series{Name: name})
}

func (c *Controller) resolveTag(name string) (*model.Tag, error) {
	key := strings.ToLower(name)
	if t, ok := c.tags[key]; ok {
		return t, nil
	}

	t, err := c.store.GetTagByName(name)
	if err == nil {
		c.tags[key] = t
		return t, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	t, err = c.store.AddTag(&model.Tag{Name: name})
	if err != nil {
		return nil, err
	}
	c.tags[key] = t
	return t, nil
}
