// Package errors provides structured error handling for image loading and
// rendering.
//
// Failures while fetching, decoding or drawing a bitmap are reported to a
// process-global ErrorHandler and swallowed at the widget boundary. Library
// functions still return them, classified by ErrorKind.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindNetwork indicates a connection failure, timeout or non-2xx response.
	KindNetwork
	// KindDecode indicates a malformed or unsupported image stream.
	KindDecode
	// KindStream indicates a failure to rewind a stream after probing it.
	KindStream
	// KindResource indicates an unknown resource handle or a bad manifest.
	KindResource
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindDecode:
		return "decode"
	case KindStream:
		return "stream"
	case KindResource:
		return "resource"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ImageError represents a failure while loading or drawing an image.
type ImageError struct {
	// Op is the operation that failed (e.g., "fetch.Get").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// URL is the remote source, if applicable.
	URL string
	// Resource is the bundled resource handle, if applicable.
	Resource int
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New returns an ImageError wrapping err.
func New(op string, kind ErrorKind, err error) *ImageError {
	return &ImageError{Op: op, Kind: kind, Err: err}
}

func (e *ImageError) Error() string {
	switch {
	case e.URL != "":
		return fmt.Sprintf("%s [%s] url=%s: %v", e.Op, e.Kind, e.URL, e.Err)
	case e.Resource != 0:
		return fmt.Sprintf("%s [%s] resource=%d: %v", e.Op, e.Kind, e.Resource, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first ImageError in err's chain, or
// KindUnknown.
func KindOf(err error) ErrorKind {
	var ie *ImageError
	if stderrors.As(err, &ie) {
		return ie.Kind
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "fetch.worker").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives reported errors.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ImageError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
