// Package errors provides the HTTP error type shared by service clients.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// minErrorStatus is the lowest status code treated as an error.
const minErrorStatus = 400

// HTTPError is a non-success response from a remote service.
type HTTPError struct {
	StatusCode int
	Body       string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Temporary reports whether retrying the same request may succeed:
// 429 and every 5xx.
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// FromResponse builds an HTTPError for an error status, or returns nil for
// statuses below 400. The message is taken from an {"error": ...},
// {"detail": ...} or {"message": ...} body when present, else the raw body.
func FromResponse(statusCode int, body []byte) error {
	if statusCode < minErrorStatus {
		return nil
	}

	raw := strings.TrimSpace(string(body))
	return &HTTPError{
		StatusCode: statusCode,
		Body:       raw,
		Message:    messageFrom(body, raw),
	}
}

func messageFrom(body []byte, raw string) string {
	var payload struct {
		Error   string `json:"error"`
		Detail  any    `json:"detail"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return raw
	}
	switch {
	case payload.Error != "":
		return payload.Error
	case payload.Message != "":
		return payload.Message
	case payload.Detail != nil:
		if s, ok := payload.Detail.(string); ok {
			return s
		}
		detail, _ := json.Marshal(payload.Detail)
		return string(detail)
	}
	return raw
}

// StatusCode extracts the status of an HTTPError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}

// IsTemporary reports whether err wraps an HTTPError worth retrying.
func IsTemporary(err error) bool {
	var httpErr *HTTPError
	return stderrors.As(err, &httpErr) && httpErr.Temporary()
}
