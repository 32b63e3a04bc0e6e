package transport

import (
	"net/http"
	"strconv"
	"strings"
)

// Response of a single GET. Body must be closed by whoever consumes it.
type Response struct {
	StatusCode   int
	Reason       string
	EffectiveURL string
	Header       http.Header
	Body         *Stream
}

// IsSuccessful reports a 2xx status
func (r Response) IsSuccessful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Close releases the response body
func (r Response) Close() error {
	if r.Body == nil {
		return nil
	}
	return r.Body.Close()
}

// reasonPhrase extracts "Not Found" from "404 Not Found".
func reasonPhrase(code int, status string) string {
	reason := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if reason == "" {
		reason = http.StatusText(code)
	}
	return reason
}
