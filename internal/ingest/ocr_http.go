package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultOCRLanguage is the Traditional Chinese script the workbench is
// configured for.
const DefaultOCRLanguage = "cht"

// RemoteRecognizer calls an external OCR service over HTTP: one rendered
// page per request, selected language as a query parameter. No retry; a
// rejected page propagates to the caller.
type RemoteRecognizer struct {
	http     *http.Client
	endpoint string
	lang     string
}

// NewRemoteRecognizer builds a recognizer for the given service endpoint.
// An empty lang falls back to DefaultOCRLanguage.
func NewRemoteRecognizer(endpoint, lang string) *RemoteRecognizer {
	if lang == "" {
		lang = DefaultOCRLanguage
	}
	return &RemoteRecognizer{
		// OCR on a dense scanned page is slow; no timeout is imposed here,
		// matching the rest of the ingestion path.
		http:     &http.Client{Timeout: 0},
		endpoint: endpoint,
		lang:     lang,
	}
}

func (r *RemoteRecognizer) Language() string { return r.lang }

type ocrResponse struct {
	Text string `json:"text"`
}

func (r *RemoteRecognizer) Recognize(ctx context.Context, page []byte, progress func(pct int)) (string, error) {
	if progress != nil {
		progress(0)
	}
	url := fmt.Sprintf("%s?lang=%s", r.endpoint, r.lang)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(page))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/pdf")

	resp, err := r.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("ocr: unexpected status %s: %s", resp.Status, string(body))
	}
	var out ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ocr: decode response: %w", err)
	}
	if progress != nil {
		progress(100)
	}
	return out.Text, nil
}
