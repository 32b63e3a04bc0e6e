package transport

import (
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// ErrNotSeekable is returned by Rewind once bytes were consumed from a network body.
var ErrNotSeekable = errors.New("stream can not be rewound once read")

// Stream is a read once view over a response body that tracks its position
// and end of data.
type Stream struct {
	body io.ReadCloser
	size int64
	pos  int64
	eof  bool
}

// NewStream wraps body. size is the declared length, -1 if unknown.
func NewStream(body io.ReadCloser, size int64) *Stream {
	if body == nil {
		body = http.NoBody
	}
	if size < 0 {
		size = -1
	}
	return &Stream{
		body: body,
		size: size,
	}
}

// Read reads at most len(p) bytes
func (s *Stream) Read(p []byte) (int, error) {
	if s.eof {
		return 0, io.EOF
	}

	n, err := s.body.Read(p)
	s.pos += int64(n)
	if err == io.EOF {
		s.eof = true
	}
	return n, err
}

// EOF reports whether the end of the body was reached.
func (s *Stream) EOF() bool {
	return s.eof || (s.size >= 0 && s.pos >= s.size)
}

// Size returns the declared body length or -1.
func (s *Stream) Size() int64 {
	return s.size
}

// Tell returns the number of bytes read so far.
func (s *Stream) Tell() int64 {
	return s.pos
}

// Rewind moves back to the start, only possible before the first read.
func (s *Stream) Rewind() error {
	if s.pos != 0 {
		return ErrNotSeekable
	}
	return nil
}

// Close closes the underlying body.
func (s *Stream) Close() error {
	return s.body.Close()
}
