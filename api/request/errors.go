package request

import (
	"github.com/edward-yakop/go-whisperer/api/transport"
	"github.com/pkg/errors"
)

// RequestError is returned when the server answers with a non 2xx status.
type RequestError struct {
	// Code is the HTTP status code
	Code int
	// Message is "<reason phrase> : <effective url>"
	Message string
}

func newRequestError(resp *transport.Response) *RequestError {
	return &RequestError{
		Code:    resp.StatusCode,
		Message: resp.Reason + " : " + resp.EffectiveURL,
	}
}

func (e *RequestError) Error() string {
	return e.Message
}

// FileError is returned when the target directory can not be written to.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + " unwriteable"
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// IsRequestError unwraps err into a *RequestError
func IsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	ok := errors.As(err, &reqErr)
	return reqErr, ok
}

// IsFileError unwraps err into a *FileError
func IsFileError(err error) (*FileError, bool) {
	var fileErr *FileError
	ok := errors.As(err, &fileErr)
	return fileErr, ok
}
