// Package ingest normalizes an uploaded guidance document into the
// workspace raw text: plain text is read as-is, PDFs are split into pages
// and recognized one page at a time by an external OCR collaborator.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"regbench/internal/workspace"
)

// pageSeparator joins recognized pages in page order.
const pageSeparator = "\n\n"

// Recognizer is the external OCR collaborator. Recognize converts one
// rendered page to text, reporting coarse progress ticks (0-100) along the
// way. Implementations pick the recognition script via Language.
type Recognizer interface {
	Language() string
	Recognize(ctx context.Context, page []byte, progress func(pct int)) (string, error)
}

// StatusFunc receives the human-readable per-page status line.
type StatusFunc func(status string)

// Adapter wires ingestion into the workspace store.
type Adapter struct {
	store  *workspace.Store
	rec    Recognizer
	cache  *pageCache
	status StatusFunc
}

// NewAdapter builds an ingestion adapter. status may be nil.
func NewAdapter(store *workspace.Store, rec Recognizer, status StatusFunc) *Adapter {
	return &Adapter{store: store, rec: rec, cache: newPageCache(), status: status}
}

// IngestText replaces the document with pasted/typed text. OCR page count
// resets to zero and the char metric tracks the new length.
func (a *Adapter) IngestText(text string) {
	a.store.SetIngested(text, 0, "")
}

func (a *Adapter) report(status string) {
	if a.status != nil {
		a.status(status)
	}
}

// recognizePages runs the external recognizer over already-rendered pages in
// order. On a page failure the pages recognized so far are retained: the
// partial text and completed page count land in the workspace together with
// a recoverable error message.
func (a *Adapter) recognizePages(ctx context.Context, pages [][]byte) error {
	total := len(pages)
	var texts []string
	for i, page := range pages {
		pageNo := i + 1
		a.report(fmt.Sprintf("Rendering page %d/%d...", pageNo, total))

		if cached, ok := a.cache.get(page); ok {
			a.report(fmt.Sprintf("OCR on page %d: cached", pageNo))
			texts = append(texts, cached)
			continue
		}

		text, err := a.rec.Recognize(ctx, page, func(pct int) {
			a.report(fmt.Sprintf("OCR on page %d: %d%%", pageNo, pct))
		})
		if err != nil {
			msg := fmt.Sprintf("OCR failed on page %d/%d: %v", pageNo, total, err)
			a.store.SetIngested(strings.Join(texts, pageSeparator), i, msg)
			return fmt.Errorf("ingest: %s", msg)
		}
		a.cache.put(page, text)
		texts = append(texts, text)
	}
	a.store.SetIngested(strings.Join(texts, pageSeparator), total, "")
	return nil
}
