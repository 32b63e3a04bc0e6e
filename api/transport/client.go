package transport

import (
	"context"
	"net/http"
	"strconv"
)

// Client is the HTTP capability a request.Request drives.
// RestyClient is the production implementation. request.Request always calls
// Get with Options.Exceptions off and inspects the status itself.
type Client interface {
	// SetBaseURL sets the host relative request URLs are resolved against.
	SetBaseURL(baseURL string)
	// SetOAuth1 signs every request sent after the call with the consumer key and secret.
	SetOAuth1(consumerKey, consumerSecret string)
	// Get issues a GET for rawURL.
	Get(ctx context.Context, rawURL string, header http.Header, opts Options) (*Response, error)
}

// Options are per request transport switches
type Options struct {
	// Debug turns on the transport's verbose request/response logging.
	Debug bool
	// Exceptions makes Get return a *StatusError for non 2xx responses.
	// When false the response is returned as is and the caller inspects the status.
	Exceptions bool
}

// StatusError is returned by Get for a non 2xx response when Options.Exceptions is set.
type StatusError struct {
	StatusCode int
	Reason     string
	URL        string
}

func (e *StatusError) Error() string {
	return "http error " + strconv.Itoa(e.StatusCode) + ":" + e.Reason + " [" + e.URL + "]"
}
