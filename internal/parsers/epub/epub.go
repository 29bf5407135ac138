// Package epub pulls Dublin-Core metadata out of EPUB package documents.
package epub // import "github.com/jebrand/jebman/internal/parsers/epub"

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/jebrand/jebman/internal/model"
	"github.com/pkg/errors"
)

const dcNamespace = "http://purl.org/dc/elements/1.1/"

// ErrNoPackageDocument is returned when the archive holds no locatable
// package document.
var ErrNoPackageDocument = errors.New("epub: package document not found")

// container mirrors META-INF/container.xml, which points at the package
// document.
type container struct {
	Rootfile struct {
		Fullpath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

// Extract opens the file as a zip archive, locates the package document
// and streams its metadata section.
func Extract(path string) (model.Metadata, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "epub: opening %s", path)
	}
	defer r.Close()

	pkg, err := findPackageDocument(&r.Reader)
	if err != nil {
		return nil, err
	}

	rc, err := pkg.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "epub: opening package document %s", pkg.Name)
	}
	defer rc.Close()

	meta, err := decodeMetadata(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "epub: parsing package document %s", pkg.Name)
	}
	return meta, nil
}

// findPackageDocument resolves the package document through the
// META-INF/container.xml indirection. Some books ship a broken or missing
// container.xml, so it falls back to scanning for an entry with the .opf
// suffix (which also covers the conventional content.opf name).
func findPackageDocument(r *zip.Reader) (*zip.File, error) {
	if f := fileByName(r, "META-INF/container.xml"); f != nil {
		if full := rootfilePath(f); full != "" {
			if pkg := fileByName(r, full); pkg != nil {
				return pkg, nil
			}
		}
	}

	for _, f := range r.File {
		if strings.HasSuffix(strings.ToLower(f.Name), ".opf") {
			return f, nil
		}
	}
	return nil, ErrNoPackageDocument
}

func fileByName(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func rootfilePath(f *zip.File) string {
	rc, err := f.Open()
	if err != nil {
		return ""
	}
	defer rc.Close()

	var c container
	if err := xml.NewDecoder(rc).Decode(&c); err != nil {
		return ""
	}
	return c.Rootfile.Fullpath
}

// decodeMetadata streams the package document, recording the first-seen
// text value of every Dublin-Core element under its local name. Decoding
// stops as soon as the metadata element is closed; the manifest and spine
// that follow are never scanned.
func decodeMetadata(r io.Reader) (model.Metadata, error) {
	meta := model.Metadata{}
	dec := xml.NewDecoder(r)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return meta, nil
		}
		if err != nil {
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Space != dcNamespace {
				// Calibre writes series membership as meta name/content
				// pairs inside the metadata element.
				if el.Name.Local == "meta" {
					recordCalibreMeta(meta, el)
					if err := dec.Skip(); err != nil {
						return nil, err
					}
				}
				continue
			}
			var value string
			if err := dec.DecodeElement(&value, &el); err != nil {
				return nil, err
			}
			recordField(meta, el.Name.Local, strings.TrimSpace(value))
		case xml.EndElement:
			if el.Name.Local == "metadata" {
				return meta, nil
			}
		}
	}
}

func recordCalibreMeta(meta model.Metadata, el xml.StartElement) {
	var name, content string
	for _, attr := range el.Attr {
		switch attr.Name.Local {
		case "name":
			name = attr.Value
		case "content":
			content = attr.Value
		}
	}
	switch name {
	case "calibre:series":
		meta.SetFirst(model.MetaSeries, strings.TrimSpace(content))
	case "calibre:series_index":
		meta.SetFirst(model.MetaSeriesIndex, strings.TrimSpace(content))
	}
}

// recordField stores a Dublin-Core value, classifying identifiers as UUID
// or ISBN. A value never lands under both keys.
func recordField(meta model.Metadata, local, value string) {
	if local != "identifier" {
		meta.SetFirst(local, value)
		return
	}

	if _, err := uuid.Parse(value); err == nil {
		meta.SetFirst(model.MetaUUID, stripPrefixFold(value, "urn:uuid:"))
		return
	}
	meta.SetFirst(model.MetaISBN, stripPrefixFold(value, "urn:isbn:"))
}

func stripPrefixFold(s, prefix string) string {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):]
	}
	return s
}
