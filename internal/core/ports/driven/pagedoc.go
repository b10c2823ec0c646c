package driven

import "context"

// PageDocumentEngine opens paginated documents such as PDFs.
type PageDocumentEngine interface {
	// Open parses raw document bytes.
	Open(ctx context.Context, content []byte) (PageDocument, error)
}

// PageDocument is an opened paginated document.
type PageDocument interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageText returns the text content items of a 1-based page, in
	// content-stream order. It may be called from several goroutines.
	PageText(ctx context.Context, page int) ([]string, error)

	// Close releases resources held by the document.
	Close() error
}
