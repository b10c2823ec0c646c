// Package filesystem loads and watches documents on local disk.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// DefaultMaxSizeMB bounds documents when no limit is configured.
const DefaultMaxSizeMB = 20

// sniffLen is how many bytes http.DetectContentType considers.
const sniffLen = 512

// Loader reads documents from disk and declares their media type.
type Loader struct {
	maxBytes int64
}

// NewLoader creates a loader rejecting files larger than maxSizeMB.
func NewLoader(maxSizeMB int) *Loader {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}
	return &Loader{maxBytes: int64(maxSizeMB) * 1024 * 1024}
}

// Load reads path. The media type comes from the file extension, falling
// back to content sniffing when the extension is unknown. Unsupported types
// fail here, before any extraction work.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return nil, domain.ErrNoDocumentSelected
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", domain.ErrInvalidInput, path)
	}
	if info.Size() > l.maxBytes {
		return nil, fmt.Errorf("%w: %s is %s, limit is %s", domain.ErrInvalidInput,
			filepath.Base(path), humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(l.maxBytes)))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(content)) > l.maxBytes {
		return nil, fmt.Errorf("%w: %s grew past %s while reading", domain.ErrInvalidInput,
			filepath.Base(path), humanize.IBytes(uint64(l.maxBytes)))
	}

	mediaType := DetectMediaType(path, content)
	logger.Debug("loaded %s (%s, %s)", path, mediaType, humanize.IBytes(uint64(len(content))))

	doc, err := domain.NewDocument(uuid.NewString(), filepath.Base(path), mediaType, content)
	if err != nil {
		var ute *domain.UnsupportedTypeError
		if errors.As(err, &ute) && ute.MediaType == "" {
			ute.MediaType = filepath.Ext(path)
		}
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// DetectMediaType declares a media type the way a browser file picker does:
// by extension first, then by content.
func DetectMediaType(path string, content []byte) string {
	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return mt
		}
	}
	if len(content) > sniffLen {
		content = content[:sniffLen]
	}
	return http.DetectContentType(content)
}
