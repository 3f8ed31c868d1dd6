// Package catalog talks to the remote catalog store: a single JSON array of
// products kept as a file in a GitHub repository. Reads fetch the whole file;
// writes replace it wholesale (last-writer-wins, no partial updates and no
// concurrency token).
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"konigfood_server/structs"
)

type Store interface {
	Load(ctx context.Context) ([]structs.Product, error)
	Replace(ctx context.Context, products []structs.Product) error
}

// RemoteError carries the status and human-readable reason of a failed call
// to the remote store. The message is surfaced to the admin as-is.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote catalog store: %s (status %d)", e.Message, e.StatusCode)
}

// IsPayloadTooLarge reports whether the remote rejected the write for size.
func (e *RemoteError) IsPayloadTooLarge() bool {
	return e.StatusCode == http.StatusRequestEntityTooLarge
}

// readErrorMessage extracts a failure reason from a response body: the
// message or error field of a JSON payload, a trimmed plain-text body, or the
// fallback when neither yields anything.
func readErrorMessage(resp *http.Response, fallback string) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fallback
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			if payload.Message != "" {
				return payload.Message
			}
			if payload.Error != "" {
				return payload.Error
			}
		}
		return fallback
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fallback
}
