package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// IngestPDF splits the uploaded PDF into single-page documents in page
// order, then feeds each page to the OCR recognizer. Returns the page count
// on success. A page-level recognition failure keeps the pages recognized so
// far (see recognizePages).
func (a *Adapter) IngestPDF(ctx context.Context, r io.Reader) (int, error) {
	if a.rec == nil {
		return 0, fmt.Errorf("ingest: no OCR service configured (set OCR_ENDPOINT)")
	}
	dir, err := os.MkdirTemp("", "regbench-ingest-*")
	if err != nil {
		return 0, fmt.Errorf("ingest: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	source := filepath.Join(dir, "upload.pdf")
	f, err := os.Create(source)
	if err != nil {
		return 0, fmt.Errorf("ingest: write upload: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return 0, fmt.Errorf("ingest: write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("ingest: write upload: %w", err)
	}

	pages, err := splitPages(dir, source)
	if err != nil {
		return 0, err
	}
	if err := a.recognizePages(ctx, pages); err != nil {
		return 0, err
	}
	return len(pages), nil
}

// splitPages optimizes the PDF (relaxed validation, tolerant of scanner
// output), counts its pages, and splits it into one file per page.
func splitPages(dir, source string) ([][]byte, error) {
	optimized := filepath.Join(dir, "optimized.pdf")
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	if err := api.OptimizeFile(source, optimized, cfg); err != nil {
		return nil, fmt.Errorf("ingest: optimize pdf: %w", err)
	}

	pageCount, err := api.PageCountFile(optimized)
	if err != nil {
		return nil, fmt.Errorf("ingest: page count: %w", err)
	}
	if err := api.SplitFile(optimized, dir, 1, nil); err != nil {
		return nil, fmt.Errorf("ingest: split pdf: %w", err)
	}

	base := filepath.Join(dir, "optimized")
	pages := make([][]byte, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		b, err := os.ReadFile(fmt.Sprintf("%s_%d.pdf", base, i))
		if err != nil {
			return nil, fmt.Errorf("ingest: read page %d: %w", i, err)
		}
		pages = append(pages, b)
	}
	return pages, nil
}
