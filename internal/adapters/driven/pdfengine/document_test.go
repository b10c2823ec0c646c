package pdfengine

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdigest/internal/core/domain"
	pdfextract "github.com/custodia-labs/docdigest/internal/extractors/pdf"
)

// buildPDF writes a minimal PDF with one page per entry. Each string in a
// page is drawn on its own line, top to bottom, in Helvetica.
func buildPDF(t *testing.T, pages ...[]string) []byte {
	t.Helper()

	var objs []string
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	objs = append(objs, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, lines := range pages {
		var content bytes.Buffer
		for j, line := range lines {
			fmt.Fprintf(&content, "BT /F1 12 Tf 1 0 0 1 72 %d Tm (%s) Tj ET\n", 720-20*j, line)
		}
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestDocument_PageTextByRow(t *testing.T) {
	data := buildPDF(t,
		[]string{"Lorem ipsum dolor", "sit amet page one"},
		[]string{"second page"},
	)

	doc, err := New().Open(context.Background(), data)
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, 2, doc.PageCount())

	items, err := doc.PageText(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lorem ipsum dolor", "sit amet page one"}, items)

	items, err = doc.PageText(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"second page"}, items)

	_, err = doc.PageText(context.Background(), 3)
	assert.ErrorContains(t, err, "out of range")
}

func TestEngine_ConcurrentExtraction(t *testing.T) {
	pages := make([][]string, 9)
	want := ""
	for i := range pages {
		pages[i] = []string{fmt.Sprintf("page %d heading", i+1), fmt.Sprintf("body of page %d", i+1)}
		if i > 0 {
			want += "\n"
		}
		want += fmt.Sprintf("page %d heading body of page %d", i+1, i+1)
	}
	data := buildPDF(t, pages...)

	for _, validate := range []bool{true, false} {
		t.Run(fmt.Sprintf("validate=%v", validate), func(t *testing.T) {
			ex := pdfextract.New(New(WithValidation(validate)), pdfextract.WithConcurrency(4))

			text, err := ex.Extract(context.Background(), &domain.Document{
				Name:      "report.pdf",
				MediaType: domain.MediaTypePDF,
				Content:   data,
			})

			require.NoError(t, err)
			assert.Equal(t, want, text)
		})
	}
}
