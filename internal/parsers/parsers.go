// Package parsers extracts bibliographic metadata from book files.
package parsers // import "github.com/jebrand/jebman/internal/parsers"

import (
	"path/filepath"
	"strings"

	"github.com/jebrand/jebman/internal/model"
	"github.com/jebrand/jebman/internal/parsers/epub"
	"github.com/jebrand/jebman/internal/parsers/pdf"
	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned for file extensions no parser handles.
var ErrUnsupportedFormat = errors.New("unsupported book format")

// Extract reads the metadata of the book at path, dispatching on the file
// extension. The returned mapping always carries the filename stem and the
// file type in addition to the parsed fields.
func Extract(path string) (model.Metadata, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	var (
		meta model.Metadata
		err  error
	)
	switch ext {
	case "epub":
		meta, err = epub.Extract(path)
	case "pdf":
		meta, err = pdf.Extract(path)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	base := filepath.Base(path)
	meta[model.MetaFilename] = strings.TrimSuffix(base, filepath.Ext(base))
	meta[model.MetaFiletype] = ext
	return meta, nil
}
