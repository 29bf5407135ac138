package parsers

import (
	"path/filepath"
	"testing"

	epub2 "github.com/go-shiori/go-epub"
	"github.com/jebrand/jebman/internal/model"
	"github.com/pkg/errors"
)

func TestExtractUnsupportedFormat(t *testing.T) {
	for _, path := range []string{"book.mobi", "book.txt", "book"} {
		_, err := Extract(path)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Extract(%q): expected ErrUnsupportedFormat, got %v", path, err)
		}
	}
}

func TestExtractRecordsFilenameAndType(t *testing.T) {
	e, err := epub2.NewEpub("Dispatch test")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "My Book.epub")
	if err := e.Write(path); err != nil {
		t.Fatal(err)
	}

	meta, err := Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := meta.Get(model.MetaFilename); got != "My Book" {
		t.Errorf("expected filename 'My Book', got %q", got)
	}
	if got := meta.Get(model.MetaFiletype); got != "epub" {
		t.Errorf("expected filetype 'epub', got %q", got)
	}
	if got := meta.Get(model.MetaTitle); got != "Dispatch test" {
		t.Errorf("expected title 'Dispatch test', got %q", got)
	}
}
