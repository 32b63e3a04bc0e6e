package request

import (
	"context"
	"io"
	"strings"

	"github.com/edward-yakop/go-whisperer/api/transport"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// Encoding of a compressed resource body
type Encoding string

const (
	EncodingIdentity Encoding = "identity"
	EncodingXZ       Encoding = "xz"
	EncodingLZMA     Encoding = "lzma"
)

// ParseEncoding accepts identity, xz or lzma, case insensitive. Empty means identity.
func ParseEncoding(s string) (Encoding, error) {
	switch enc := Encoding(strings.ToLower(strings.TrimSpace(s))); enc {
	case "", EncodingIdentity:
		return EncodingIdentity, nil
	case EncodingXZ, EncodingLZMA:
		return enc, nil
	default:
		return "", errors.New("unsupported encoding [" + s + "]")
	}
}

type decodedStream struct {
	io.Reader
	body *transport.Stream
}

func (d decodedStream) Close() error {
	return d.body.Close()
}

// GetAsDecodedStream is GetAsStream with the body decompressed according to enc.
// Closing the returned reader closes the response body.
func (r *Request) GetAsDecodedStream(ctx context.Context, uri string, enc Encoding) (io.ReadCloser, error) {
	enc, err := ParseEncoding(string(enc))
	if err != nil {
		return nil, err
	}

	body, err := r.GetAsStream(ctx, uri)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	switch enc {
	case EncodingXZ:
		reader, err = xz.NewReader(body)
	case EncodingLZMA:
		reader, err = lzma.NewReader(body)
	default:
		reader = body
	}
	if err != nil {
		_ = body.Close()
		return nil, errors.Wrap(err, "Failed to create "+string(enc)+" reader for ["+uri+"]")
	}

	return decodedStream{Reader: reader, body: body}, nil
}
