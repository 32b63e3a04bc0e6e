package request

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/edward-yakop/go-whisperer/api/transport"
	"github.com/edward-yakop/go-whisperer/internal/misc"
	"github.com/pkg/errors"
)

const (
	// cacheBustParam is appended to every request URL to defeat HTTP/CDN caches.
	cacheBustParam = "CACHECANGOFUCKITSELF"
	chunkSize      = 1024
)

// Request issues GETs against a fixed base URL.
type Request struct {
	baseURL string
	client  transport.Client
	debug   bool
	now     func() time.Time
}

type Option func(*Request)

// WithDebug passes the debug switch down to the transport.
func WithDebug(debug bool) Option {
	return func(r *Request) {
		r.debug = debug
	}
}

// WithClock replaces time.Now for the cache busting timestamp.
func WithClock(now func() time.Time) Option {
	return func(r *Request) {
		r.now = now
	}
}

// New create a Request for baseURL, e.g. https://www.example.com.
// The client's base URL is set to baseURL.
func New(baseURL string, client transport.Client, opts ...Option) *Request {
	r := &Request{
		baseURL: baseURL,
		client:  client,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	client.SetBaseURL(baseURL)

	return r
}

func (r Request) BaseURL() string {
	return r.baseURL
}

func (r Request) Client() transport.Client {
	return r.client
}

// SetKeyAndSecret enables OAuth1 signing with the consumer key and secret.
// It must be called before any request against an OAuth protected endpoint.
func (r *Request) SetKeyAndSecret(key, secret string) {
	r.client.SetOAuth1(key, secret)
}

// URL returns the cache busted URL GetRaw requests for uri.
func (r Request) URL(uri string) string {
	u := r.baseURL + "/" + uri

	separator := "?"
	if strings.Contains(u, "?") {
		separator = "&"
	}
	return u + separator + cacheBustParam + "=" + strconv.FormatInt(r.now().Unix(), 10)
}

// GetRaw performs the GET and returns the response as is, whatever its status.
// The caller owns the response body.
func (r *Request) GetRaw(ctx context.Context, uri string) (*transport.Response, error) {
	u := r.URL(uri)
	slog.Debug("Issuing request", slog.String("url", u))

	resp, err := r.client.Get(
		ctx,
		u,
		http.Header{"Accept": {"*/*"}},
		transport.Options{Debug: r.debug, Exceptions: false},
	)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to request ["+uri+"]")
	}
	if resp == nil {
		return nil, errors.New("no response for [" + uri + "]")
	}
	if resp.Body == nil {
		resp.Body = transport.NewStream(nil, 0)
	}

	return resp, nil
}

// GetToFile saves the response body of uri into targetFile and returns the
// number of bytes written.
//
// Returns *FileError when the directory of targetFile is not writable, in
// which case no request is made. Returns *RequestError when the response is
// not successful, in which case targetFile is not touched.
//
// A body read that yields no data before the end of the stream stops the copy
// and reports 0 bytes without error; targetFile may then hold partial data.
func (r *Request) GetToFile(ctx context.Context, uri string, targetFile string) (written int64, err error) {
	dir := filepath.Dir(targetFile)
	if werr := misc.CheckDirWritable(dir); werr != nil {
		return 0, &FileError{Path: dir, Err: werr}
	}

	resp, err := r.GetRaw(ctx, uri)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Close()
	}()

	if !resp.IsSuccessful() {
		return 0, r.requestFailed(resp)
	}

	body := resp.Body
	if err = body.Rewind(); err != nil {
		return 0, errors.Wrap(err, "Failed to rewind body of ["+resp.EffectiveURL+"]")
	}

	f, err := os.OpenFile(targetFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return 0, errors.Wrap(err, "Create file ["+targetFile+"] failed")
	}
	defer func(f *os.File) {
		if cerr := f.Close(); cerr != nil && err == nil {
			written, err = 0, errors.Wrap(cerr, "Close file ["+targetFile+"] failed")
		}
	}(f)

	buf := make([]byte, chunkSize)
	for !body.EOF() {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, err = f.Write(buf[:n]); err != nil {
				return 0, errors.Wrap(err, "Write file ["+targetFile+"] failed")
			}
			written += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return 0, errors.Wrap(rerr, "Read body of ["+resp.EffectiveURL+"] failed")
		}
		if n == 0 {
			slog.Warn("Empty read before end of body, download aborted",
				slog.String("url", resp.EffectiveURL),
				slog.String("path", targetFile),
				slog.Int64("written", written),
			)
			return 0, nil
		}
	}

	return written, nil
}

// GetAsStream returns the body of a successful response for the caller to read
// and close. Returns *RequestError when the response is not successful.
func (r *Request) GetAsStream(ctx context.Context, uri string) (*transport.Stream, error) {
	resp, err := r.GetRaw(ctx, uri)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccessful() {
		_ = resp.Close()
		return nil, r.requestFailed(resp)
	}

	return resp.Body, nil
}

func (r *Request) requestFailed(resp *transport.Response) *RequestError {
	err := newRequestError(resp)
	slog.Warn("Request failed",
		slog.String("url", resp.EffectiveURL),
		slog.Int("status", err.Code),
	)
	return err
}
