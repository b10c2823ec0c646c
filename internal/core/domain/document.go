package domain

import (
	"fmt"
	"mime"
	"strings"
)

// MediaType is the declared type of a selected document.
type MediaType string

// Accepted media types.
const (
	MediaTypePDF  MediaType = "application/pdf"
	MediaTypePNG  MediaType = "image/png"
	MediaTypeJPEG MediaType = "image/jpeg"
)

// mediaTypeAliases maps non-canonical spellings seen in the wild.
var mediaTypeAliases = map[string]MediaType{
	"image/jpg":   MediaTypeJPEG,
	"image/pjpeg": MediaTypeJPEG,
}

// DocumentKind groups media types by extraction strategy.
type DocumentKind int

// Document kinds.
const (
	KindUnknown DocumentKind = iota
	KindPaginated
	KindImage
)

// String returns the string representation.
func (k DocumentKind) String() string {
	switch k {
	case KindPaginated:
		return "paginated"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// AcceptedMediaTypes returns the media types the pipeline accepts.
func AcceptedMediaTypes() []MediaType {
	return []MediaType{MediaTypePDF, MediaTypePNG, MediaTypeJPEG}
}

// ParseMediaType normalises a declared media type and checks it is accepted.
// Parameters such as charset are dropped and known aliases are canonicalised.
func ParseMediaType(s string) (MediaType, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if base, _, err := mime.ParseMediaType(raw); err == nil {
		raw = base
	}
	if alias, ok := mediaTypeAliases[raw]; ok {
		return alias, nil
	}
	mt := MediaType(raw)
	if !mt.IsSupported() {
		return "", &UnsupportedTypeError{MediaType: s}
	}
	return mt, nil
}

// IsSupported reports whether the media type is in the accepted set.
func (m MediaType) IsSupported() bool {
	return m.Kind() != KindUnknown
}

// Kind returns the extraction strategy group for the media type.
func (m MediaType) Kind() DocumentKind {
	switch m {
	case MediaTypePDF:
		return KindPaginated
	case MediaTypePNG, MediaTypeJPEG:
		return KindImage
	default:
		return KindUnknown
	}
}

// String returns the string representation.
func (m MediaType) String() string {
	return string(m)
}

// Document is a user-selected file awaiting summarization.
// A Document is replaced wholesale on reselection and never mutated.
type Document struct {
	// ID uniquely identifies this selection.
	ID string

	// Name is the display name, usually the file's base name.
	Name string

	// Path is the filesystem location the document was read from, if any.
	Path string

	// MediaType is the declared media type.
	MediaType MediaType

	// Size is the content length in bytes.
	Size int64

	// Content holds the raw file bytes.
	Content []byte
}

// NewDocument creates a Document after validating the media type.
func NewDocument(id, name, mediaType string, content []byte) (*Document, error) {
	mt, err := ParseMediaType(mediaType)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: document %q is empty", ErrInvalidInput, name)
	}
	return &Document{
		ID:        id,
		Name:      name,
		MediaType: mt,
		Size:      int64(len(content)),
		Content:   content,
	}, nil
}
