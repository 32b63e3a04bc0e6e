package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edward-yakop/go-whisperer/api/request"
	"github.com/edward-yakop/go-whisperer/api/transport"
	"github.com/edward-yakop/go-whisperer/internal/misc"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

type ArgsList struct {
	Verbose bool
	Debug   bool
	BaseURL string
	URI     string
	Output  string
	Key     string
	Secret  string
	Decode  string
	Timeout time.Duration
}

// WhispererApp fetches a single resource
//
type WhispererApp struct {
	option  AppOption
	request *request.Request
	stdout  io.Writer
}

// AppOption validated command line options
//
type AppOption struct {
	BaseURL  string
	URI      string
	Output   string
	Key      string
	Secret   string
	Encoding request.Encoding
	Debug    bool
	Timeout  time.Duration
}

// ParseOption parse input command line
//
func ParseOption(args ArgsList) (*AppOption, error) {
	opt := AppOption{
		URI:     strings.TrimLeft(args.URI, "/"),
		Key:     args.Key,
		Secret:  args.Secret,
		Debug:   args.Debug,
		Timeout: args.Timeout,
	}

	base, err := url.Parse(args.BaseURL)
	if err != nil || !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("invalid base url [%s]", args.BaseURL)
	}
	opt.BaseURL = strings.TrimRight(args.BaseURL, "/")

	if opt.URI == "" {
		return nil, errors.New("missing uri parameter")
	}
	if (opt.Key == "") != (opt.Secret == "") {
		return nil, errors.New("key and secret must be given together")
	}
	if opt.Encoding, err = request.ParseEncoding(args.Decode); err != nil {
		return nil, errors.Wrap(err, "invalid decode parameter")
	}
	if opt.Timeout < 0 {
		return nil, fmt.Errorf("invalid timeout parameter %v", opt.Timeout)
	}

	if args.Output != "" {
		if opt.Output, err = filepath.Abs(args.Output); err != nil {
			return nil, fmt.Errorf("invalid output file")
		}
		if opt.Encoding != request.EncodingIdentity {
			return nil, errors.New("decode is only supported when streaming to stdout")
		}
	}

	return &opt, nil
}

// NewApp create an application instance, stream output goes to stdout
//
func NewApp(opt *AppOption, stdout io.Writer) *WhispererApp {
	client := resty.New()
	if opt.Timeout > 0 {
		client.SetTimeout(opt.Timeout)
	}

	req := request.New(opt.BaseURL, transport.NewRestyClient(client), request.WithDebug(opt.Debug))
	if opt.Key != "" {
		req.SetKeyAndSecret(opt.Key, opt.Secret)
	}

	return &WhispererApp{
		option:  *opt,
		request: req,
		stdout:  stdout,
	}
}

// Execute downloads the resource to the output file, or to stdout when no output file is set
//
func (app *WhispererApp) Execute(ctx context.Context) error {
	var (
		opt       = app.option
		startTime = time.Now()
	)

	if opt.Output != "" {
		// Create an output directory
		dir := filepath.Dir(opt.Output)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "Create folder ["+dir+"] failed")
		}
		if misc.IsFileExists(opt.Output) {
			slog.Debug("Overwriting existing file", slog.String("path", opt.Output))
		}

		written, err := app.request.GetToFile(ctx, opt.URI, opt.Output)
		if err != nil {
			return errors.Wrap(err, "Failed to download ["+opt.URI+"]")
		}
		slog.Info("Saved",
			slog.String("path", opt.Output),
			slog.Int64("bytes", written),
			slog.Duration("took", time.Since(startTime)),
		)
		return nil
	}

	body, err := app.request.GetAsDecodedStream(ctx, opt.URI, opt.Encoding)
	if err != nil {
		return errors.Wrap(err, "Failed to stream ["+opt.URI+"]")
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(body)

	written, err := io.Copy(app.stdout, body)
	if err != nil {
		return errors.Wrap(err, "Failed to copy ["+opt.URI+"] to output")
	}
	slog.Debug("Streamed",
		slog.String("uri", opt.URI),
		slog.Int64("bytes", written),
		slog.Duration("took", time.Since(startTime)),
	)
	return nil
}
