package catalog

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jebrand/jebman/internal/config"
	"github.com/jebrand/jebman/internal/model"
	"github.com/jebrand/jebman/internal/parsers"
	"github.com/jebrand/jebman/internal/store"
	"github.com/jebrand/jebman/internal/store/db"
	"github.com/pkg/errors"
)

const frankensteinOPF = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:opf="http://www.idpf.org/2007/opf">
    <dc:title>Frankenstein</dc:title>
    <dc:creator opf:role="aut">Mary Wollstonecraft Shelley</dc:creator>
    <dc:publisher>Oxford University Press</dc:publisher>
    <dc:date>1818-01-01</dc:date>
    <dc:identifier opf:scheme="ISBN">urn:isbn:9780199537150</dc:identifier>
  </metadata>
</package>`

const anonymousOPF = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Beowulf</dc:title>
  </metadata>
</package>`

func writeEpubFixture(t *testing.T, dir, name, opf string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for entry, body := range map[string]string{
		"mimetype": "application/epub+zip",
		"META-INF/container.xml": `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`,
		"OEBPS/content.opf": opf,
	} {
		zf, err := w.Create(entry)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := zf.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestController(t *testing.T) (*Controller, *store.Store, string) {
	t.Helper()

	library := t.TempDir()
	opts := config.DefaultOptions()
	opts.Library = library
	opts.DSN = filepath.Join(library, "metadata.db")

	d, err := db.Open(opts.DSN)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := d.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	s := store.NewStore(d)
	t.Cleanup(func() { s.Close() })

	ctrl, err := NewController(opts, s)
	if err != nil {
		t.Fatalf("Failed to build controller: %v", err)
	}
	return ctrl, s, library
}

func TestInsertBook(t *testing.T) {
	ctrl, s, library := newTestController(t)
	src := writeEpubFixture(t, t.TempDir(), "frankenstein.epub", frankensteinOPF)

	book, err := ctrl.InsertBook(src)
	if err != nil {
		t.Fatalf("Failed to insert book: %v", err)
	}

	if book.Title != "Frankenstein" {
		t.Errorf("unexpected title %q", book.Title)
	}
	if book.ISBN != "9780199537150" {
		t.Errorf("unexpected isbn %q", book.ISBN)
	}
	want := time.Date(1818, 1, 1, 0, 0, 0, 0, time.UTC)
	if !book.PublishDate.Equal(want) {
		t.Errorf("expected publish date %v, got %v", want, book.PublishDate)
	}
	if book.Publisher == nil || book.Publisher.Name != "Oxford University Press" {
		t.Errorf("expected publisher, got %+v", book.Publisher)
	}
	if book.Path != filepath.Join("Mary Wollstonecraft Shelley", "Frankenstein.epub") {
		t.Errorf("unexpected path %q", book.Path)
	}
	if _, err := os.Stat(filepath.Join(library, book.Path)); err != nil {
		t.Errorf("book file not placed in the library: %v", err)
	}

	authors, err := ctrl.GetBookAuthors(book.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(authors) != 1 || authors[0].Name != "Mary Wollstonecraft Shelley" {
		t.Errorf("unexpected authors %+v", authors)
	}

	// The original file stays where it was.
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source file missing after import: %v", err)
	}

	stored, err := s.GetBookByID(book.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Title != "Frankenstein" {
		t.Errorf("unexpected stored title %q", stored.Title)
	}
}

func TestInsertBookDefaultsToUnknown(t *testing.T) {
	ctrl, _, library := newTestController(t)
	src := writeEpubFixture(t, t.TempDir(), "beowulf.epub", anonymousOPF)

	book, err := ctrl.InsertBook(src)
	if err != nil {
		t.Fatal(err)
	}
	if book.Path != filepath.Join(UnknownAuthor, "Beowulf.epub") {
		t.Errorf("unexpected path %q", book.Path)
	}
	// No identifier in the file, so one gets generated.
	if book.UUID == "" {
		t.Error("expected a generated uuid")
	}
	if _, err := os.Stat(filepath.Join(library, book.Path)); err != nil {
		t.Errorf("book file not placed in the library: %v", err)
	}
}

func TestInsertBookResolvesAuthorOnce(t *testing.T) {
	ctrl, s, _ := newTestController(t)
	dir := t.TempDir()

	if _, err := ctrl.InsertBook(writeEpubFixture(t, dir, "one.epub", frankensteinOPF)); err != nil {
		t.Fatal(err)
	}

	// Second book by the same author with a different casing must reuse
	// the existing author row.
	secondOPF := `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>The Last Man</dc:title>
    <dc:creator>MARY WOLLSTONECRAFT SHELLEY</dc:creator>
  </metadata>
</package>`
	if _, err := ctrl.InsertBook(writeEpubFixture(t, dir, "two.epub", secondOPF)); err != nil {
		t.Fatal(err)
	}

	authors, err := s.ListAuthors()
	if err != nil {
		t.Fatal(err)
	}
	if len(authors) != 1 {
		t.Fatalf("expected one author row, got %d", len(authors))
	}
	if authors[0].Name != "Mary Wollstonecraft Shelley" {
		t.Errorf("expected first-seen spelling, got %q", authors[0].Name)
	}
}

func TestInsertBookUnsupportedExtension(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	_, err := ctrl.InsertBook("novel.mobi")
	if !errors.Is(err, parsers.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestInsertBookCompensatesFailedCopy(t *testing.T) {
	ctrl, s, _ := newTestController(t)
	src := writeEpubFixture(t, t.TempDir(), "frankenstein.epub", frankensteinOPF)

	if _, err := ctrl.InsertBook(src); err != nil {
		t.Fatal(err)
	}

	// Importing the same file again fails at the copy stage because the
	// destination already exists; the catalog rows written before the
	// copy must be rolled back.
	if _, err := ctrl.InsertBook(src); err == nil {
		t.Fatal("expected the second import to fail")
	}

	books, err := s.ListBooks(&model.FindBook{})
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 1 {
		t.Errorf("expected the failed import to leave one book, got %d", len(books))
	}
}

func TestRemoveBook(t *testing.T) {
	ctrl, _, library := newTestController(t)
	src := writeEpubFixture(t, t.TempDir(), "frankenstein.epub", frankensteinOPF)

	book, err := ctrl.InsertBook(src)
	if err != nil {
		t.Fatal(err)
	}

	if err := ctrl.RemoveBook(book.ID); err != nil {
		t.Fatalf("Failed to remove book: %v", err)
	}

	if _, err := ctrl.GetBook(book.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after removal, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(library, book.Path)); !os.IsNotExist(err) {
		t.Errorf("book file still present after removal: %v", err)
	}
	// The author directory is empty now and gets pruned with it.
	if _, err := os.Stat(filepath.Join(library, "Mary Wollstonecraft Shelley")); !os.IsNotExist(err) {
		t.Errorf("author directory still present after removal: %v", err)
	}
}

func TestRemoveMissingBook(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	if err := ctrl.RemoveBook(42); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTagBook(t *testing.T) {
	ctrl, s, _ := newTestController(t)
	src := writeEpubFixture(t, t.TempDir(), "frankenstein.epub", frankensteinOPF)

	book, err := ctrl.InsertBook(src)
	if err != nil {
		t.Fatal(err)
	}

	if err := ctrl.TagBook(book.ID, "gothic"); err != nil {
		t.Fatalf("Failed to tag book: %v", err)
	}
	// Tagging again, even with different casing, is a no-op.
	if err := ctrl.TagBook(book.ID, "Gothic"); err != nil {
		t.Fatalf("Second tagging failed: %v", err)
	}

	links, err := s.ListTagLinksByBook(book.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 1 {
		t.Errorf("expected one tag link, got %d", len(links))
	}

	tags, err := s.ListTags()
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 1 || tags[0].Name != "gothic" {
		t.Errorf("unexpected tags %+v", tags)
	}

	if err := ctrl.TagBook(book.ID, "  "); err == nil {
		t.Error("expected tagging with a blank name to fail")
	}
}
