// Package utils provides small helpers shared by the pack host handlers and
// the pack host client: the resty client, plain-text responses and trace ids.
package utils

import (
	"fmt"
	"net/http"
)

// WriteText writes body as a text/plain response with the given status code.
// It returns the number of body bytes written.
func WriteText(w http.ResponseWriter, statusCode int, body string) (int, error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)

	n, err := w.Write([]byte(body))
	if err != nil {
		return n, fmt.Errorf("error writing response body: %w", err)
	}
	return n, nil
}

// WriteTextf formats according to format and writes the result with
// [WriteText].
func WriteTextf(w http.ResponseWriter, statusCode int, format string, args ...any) (int, error) {
	return WriteText(w, statusCode, fmt.Sprintf(format, args...))
}
