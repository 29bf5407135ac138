package model

// Metadata keys shared by the file parsers. EPUB fields keep their
// Dublin-Core local names; the PDF parser maps its information dictionary
// onto the same keys so the controller sees one vocabulary.
const (
	MetaTitle       = "title"
	MetaCreator     = "creator"
	MetaPublisher   = "publisher"
	MetaDescription = "description"
	MetaDate        = "date"
	MetaISBN        = "isbn"
	MetaUUID        = "uuid"
	MetaSeries      = "series"
	MetaSeriesIndex = "series_index"
	MetaFilename    = "filename"
	MetaFiletype    = "filetype"
)

// Metadata is the normalized field mapping produced by a file parser.
type Metadata map[string]string

// Get returns the value for key, or the empty string.
func (m Metadata) Get(key string) string {
	return m[key]
}

// SetFirst records value under key unless the key was already seen or the
// value is blank. Duplicate metadata elements are first-value-wins.
func (m Metadata) SetFirst(key, value string) {
	if value == "" {
		return
	}
	if _, ok := m[key]; ok {
		return
	}
	m[key] = value
}
