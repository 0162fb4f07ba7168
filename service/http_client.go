package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError is returned when a collaborator answers with a non-2xx status
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s failed (%d)", e.Method, e.URL, e.Status)
	if e.Body != "" {
		msg += " " + e.Body
	}
	return msg
}

// trimBase removes one trailing slash from a base URL
func trimBase(base string) string {
	return strings.TrimSuffix(base, "/")
}

// doJSON sends body as JSON (when non-nil) and decodes the response into out (when non-nil)
func doJSON(ctx context.Context, client *http.Client, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Method: method, URL: url, Status: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}
