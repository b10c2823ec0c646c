// Package pdfengine reads page text from PDF bytes.
//
// Text comes from github.com/ledongthuc/pdf. An optional structural
// preflight runs github.com/pdfcpu/pdfcpu validation in relaxed mode first,
// so malformed files fail with a clear error instead of a parser panic.
package pdfengine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.PageDocumentEngine = (*Engine)(nil)

// ErrNotPDF indicates the bytes lack a PDF header.
var ErrNotPDF = errors.New("not a PDF document")

// Engine opens PDF documents held in memory.
type Engine struct {
	validate bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithValidation enables or disables the pdfcpu preflight.
func WithValidation(enabled bool) Option {
	return func(e *Engine) {
		e.validate = enabled
	}
}

// New creates an engine. Validation is on by default.
func New(opts ...Option) *Engine {
	e := &Engine{validate: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open parses data and returns a document positioned at no particular page.
func (e *Engine) Open(ctx context.Context, data []byte) (doc driven.PageDocument, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return nil, ErrNotPDF
	}

	if e.validate {
		if err := preflight(data); err != nil {
			return nil, err
		}
	}

	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	return &document{reader: reader}, nil
}

// preflight validates document structure with pdfcpu.
func preflight(data []byte) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		return fmt.Errorf("validate pdf: %w", err)
	}
	logger.Debug("pdf preflight passed (%d bytes)", len(data))
	return nil
}

// document is an open PDF. The reader only reads through an io.ReaderAt,
// so pages can be read concurrently.
type document struct {
	reader *pdf.Reader
}

// PageCount returns the number of pages.
func (d *document) PageCount() int {
	return d.reader.NumPage()
}

// PageText returns the page's text runs, one per visual row, top to bottom.
// A page without content yields no items.
func (d *document) PageText(ctx context.Context, page int) (items []string, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page < 1 || page > d.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", page, d.reader.NumPage())
	}

	defer func() {
		if r := recover(); r != nil {
			items, err = nil, fmt.Errorf("read page %d: %v", page, r)
		}
	}()

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, err
	}

	items = make([]string, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		for _, text := range row.Content {
			b.WriteString(text.S)
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			items = append(items, s)
		}
	}
	return items, nil
}

// Close releases the document. The reader holds only in-memory state.
func (d *document) Close() error {
	d.reader = nil
	return nil
}
