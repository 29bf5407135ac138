// Package pdf reads bibliographic metadata from a PDF document's
// information dictionary. Content streams are never scanned.
package pdf // import "github.com/jebrand/jebman/internal/parsers/pdf"

import (
	"fmt"
	"regexp"

	"github.com/jebrand/jebman/internal/model"
	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// creationDateMatcher matches the date prefix of the PDF date format,
// D:YYYYMMDDHHmmSS with optional trailing components.
var creationDateMatcher = regexp.MustCompile(`^D:(\d{4})(\d{2})(\d{2})`)

// Extract opens the document and maps its information dictionary onto the
// shared metadata vocabulary.
func Extract(path string) (meta model.Metadata, err error) {
	// The underlying reader panics on some malformed cross-reference
	// tables; surface that as a parse error instead of crashing an import.
	defer func() {
		if r := recover(); r != nil {
			meta, err = nil, errors.Errorf("pdf: parsing %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "pdf: opening %s", path)
	}
	defer f.Close()

	meta = model.Metadata{}
	info := r.Trailer().Key("Info")
	if info.Kind() != pdf.Dict {
		return meta, nil
	}

	meta.SetFirst(model.MetaTitle, info.Key("Title").Text())
	meta.SetFirst(model.MetaCreator, info.Key("Author").Text())
	if date := creationDate(info.Key("CreationDate").Text()); date != "" {
		meta.SetFirst(model.MetaDate, date)
	}
	return meta, nil
}

// creationDate converts the D:YYYYMMDD... PDF date into the plain
// YYYY-MM-DD grammar the date parser recognizes.
func creationDate(raw string) string {
	m := creationDateMatcher.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
}
