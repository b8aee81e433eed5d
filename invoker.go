// invoker.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/exec"
	"time"
)

// SourceInvoker wraps one external worker. For gather sources the input is
// the comma-joined topic string; for the analysis worker it is the
// serialized report request. Implementations convert every underlying fault
// into an ordinary error return and never retry.
type SourceInvoker interface {
	Invoke(ctx context.Context, input string) (string, error)
}

// Descriptor registers one source with the pipeline: a stable identity plus
// the capability that invokes its worker. Immutable for the pipeline's
// lifetime.
type Descriptor struct {
	ID      string
	Invoker SourceInvoker
}

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

var debugEnabled bool

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// CommandInvoker runs an external worker program with the input as its
// single argument. Stdout is the primary channel and becomes the candidate
// payload; stderr is a side channel surfaced only in debug logging.
type CommandInvoker struct {
	Program string
	Args    []string
	Timeout time.Duration
}

func (c *CommandInvoker) Invoke(ctx context.Context, input string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, c.Args...), input)
	cmd := exec.CommandContext(ctx, c.Program, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if stderr.Len() > 0 {
		debugLog("%s stderr: %s", c.Program, stderr.String())
	}
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("timeout after %s", c.Timeout)
	}
	if err != nil {
		return "", fmt.Errorf("running %s: %w", c.Program, err)
	}

	return stdout.String(), nil
}

// HTTPInvoker posts the input to a worker endpoint and returns the response
// body. Non-2xx responses are invocation faults.
type HTTPInvoker struct {
	Endpoint string
	client   *http.Client
}

// NewHTTPInvoker creates an HTTP invoker with a bounded client timeout.
func NewHTTPInvoker(endpoint string, timeout time.Duration) *HTTPInvoker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPInvoker{
		Endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (h *HTTPInvoker) Invoke(ctx context.Context, input string) (string, error) {
	body, err := json.Marshal(map[string]string{"topics": input})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling %s: %w", h.Endpoint, err)
	}
	defer resp.Body.Close()

	debugLog("worker %s responded: status=%d", h.Endpoint, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{StatusCode: resp.StatusCode, URL: h.Endpoint}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	return string(payload), nil
}
