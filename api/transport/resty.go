package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dghubble/oauth1"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// RestyClient implements Client on top of resty.
type RestyClient struct {
	client *resty.Client
	// unsigned is the round tripper in place before the first SetOAuth1 call.
	unsigned http.RoundTripper
}

// NewRestyClient wraps client, a nil client gets resty defaults.
func NewRestyClient(client *resty.Client) *RestyClient {
	if client == nil {
		client = resty.New()
	}
	return &RestyClient{
		client: client,
	}
}

// Resty returns the underlying resty client for timeout/proxy/TLS tuning.
func (c *RestyClient) Resty() *resty.Client {
	return c.client
}

func (c *RestyClient) SetBaseURL(baseURL string) {
	c.client.SetBaseURL(baseURL)
}

// SetOAuth1 installs two-legged OAuth1 signing (consumer credentials, empty token).
// Calling it again replaces the previous credentials.
func (c *RestyClient) SetOAuth1(consumerKey, consumerSecret string) {
	if c.unsigned == nil {
		c.unsigned = c.client.GetClient().Transport
		if c.unsigned == nil {
			c.unsigned = http.DefaultTransport
		}
	}

	config := oauth1.NewConfig(consumerKey, consumerSecret)
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, &http.Client{Transport: c.unsigned})
	c.client.SetTransport(config.Client(ctx, oauth1.NewToken("", "")).Transport)
}

func (c *RestyClient) Get(ctx context.Context, rawURL string, header http.Header, opts Options) (*Response, error) {
	c.client.SetDebug(opts.Debug)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeaderMultiValues(header).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		if resp != nil && resp.RawBody() != nil {
			_ = resp.RawBody().Close()
		}
		return nil, errors.Wrap(err, "GET ["+rawURL+"] failed")
	}

	response := newResponse(rawURL, resp)
	if opts.Exceptions && !response.IsSuccessful() {
		_ = response.Close()
		slog.Warn("Request failed",
			slog.String("url", response.EffectiveURL),
			slog.Int("status", response.StatusCode),
		)
		return nil, &StatusError{
			StatusCode: response.StatusCode,
			Reason:     response.Reason,
			URL:        response.EffectiveURL,
		}
	}

	return response, nil
}

func newResponse(rawURL string, resp *resty.Response) *Response {
	raw := resp.RawResponse

	// follow redirects to report where the body actually came from
	effectiveURL := rawURL
	if raw.Request != nil && raw.Request.URL != nil {
		effectiveURL = raw.Request.URL.String()
	}

	return &Response{
		StatusCode:   raw.StatusCode,
		Reason:       reasonPhrase(raw.StatusCode, raw.Status),
		EffectiveURL: effectiveURL,
		Header:       raw.Header,
		Body:         NewStream(resp.RawBody(), raw.ContentLength),
	}
}
