// page.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// PageInvoker fetches a web page, converts the HTML to markdown, and wraps
// the text in a well-formed envelope so page sources speak the same worker
// contract as everything else.
type PageInvoker struct {
	URL       string
	client    *http.Client
	converter *md.Converter
}

// NewPageInvoker creates a page invoker for the given URL with a bounded
// client timeout.
func NewPageInvoker(url string, timeout time.Duration) *PageInvoker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PageInvoker{
		URL:       url,
		client:    &http.Client{Timeout: timeout},
		converter: md.NewConverter("", true, nil),
	}
}

func (p *PageInvoker) Invoke(ctx context.Context, input string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", p.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &HTTPError{StatusCode: resp.StatusCode, URL: p.URL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	markdown, err := p.converter.ConvertString(string(body))
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}

	envelope, err := json.Marshal(map[string]any{
		"success": true,
		"url":     p.URL,
		"topics":  input,
		"content": markdown,
	})
	if err != nil {
		return "", fmt.Errorf("encoding envelope: %w", err)
	}

	return string(envelope), nil
}
