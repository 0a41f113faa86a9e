package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an upload failure
type Kind string

// Error kinds
const (
	KindInvalidArgument       Kind = "invalid_argument"
	KindNotFound              Kind = "not_found"
	KindIsDirectory           Kind = "is_directory"
	KindNotARegularFile       Kind = "not_a_regular_file"
	KindPermissionDenied      Kind = "permission_denied"
	KindOperationNotPermitted Kind = "operation_not_permitted"
	KindResourceExhausted     Kind = "resource_exhausted"
	KindPathTooLong           Kind = "path_too_long"
	KindIOError               Kind = "io_error"
	KindTransport             Kind = "transport_error"
	KindCancelled             Kind = "cancelled"
	KindHTTP                  Kind = "http_error"
	KindMalformedResponse     Kind = "malformed_response"
	KindInvalidResponseSchema Kind = "invalid_response_schema"
	KindUploadRejected        Kind = "upload_rejected"
	KindMissingURL            Kind = "missing_url"
	KindNotConfigured         Kind = "not_configured"
)

// Sentinels for errors.Is matching on kind
var (
	ErrInvalidArgument       = &Error{Kind: KindInvalidArgument}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrIsDirectory           = &Error{Kind: KindIsDirectory}
	ErrNotARegularFile       = &Error{Kind: KindNotARegularFile}
	ErrPermissionDenied      = &Error{Kind: KindPermissionDenied}
	ErrOperationNotPermitted = &Error{Kind: KindOperationNotPermitted}
	ErrResourceExhausted     = &Error{Kind: KindResourceExhausted}
	ErrPathTooLong           = &Error{Kind: KindPathTooLong}
	ErrIOError               = &Error{Kind: KindIOError}
	ErrTransport             = &Error{Kind: KindTransport}
	ErrCancelled             = &Error{Kind: KindCancelled}
	ErrHTTP                  = &Error{Kind: KindHTTP}
	ErrMalformedResponse     = &Error{Kind: KindMalformedResponse}
	ErrInvalidResponseSchema = &Error{Kind: KindInvalidResponseSchema}
	ErrUploadRejected        = &Error{Kind: KindUploadRejected}
	ErrMissingURL            = &Error{Kind: KindMissingURL}
	ErrNotConfigured         = &Error{Kind: KindNotConfigured}
)

// maxBodyPreview bounds how much of a response body is rendered in messages
const maxBodyPreview = 1024

// Error is the classified failure returned by every stage of the pipeline.
// Only the fields relevant to the kind are set.
type Error struct {
	Kind   Kind
	Path   string // file path, for file errors
	Status int    // HTTP status code, for KindHTTP
	Body   string // raw response body, for response errors
	Detail string // human-readable detail (server error, validation result, ...)
	Err    error  // underlying cause
}

func (e *Error) Error() string {
	var b strings.Builder
	switch e.Kind {
	case KindInvalidArgument:
		b.WriteString("invalid argument")
	case KindNotFound:
		fmt.Fprintf(&b, "file not found: %s", e.Path)
	case KindIsDirectory:
		fmt.Fprintf(&b, "path is a directory, not a file: %s", e.Path)
	case KindNotARegularFile:
		fmt.Fprintf(&b, "path is not a regular file: %s", e.Path)
	case KindPermissionDenied:
		fmt.Fprintf(&b, "permission denied: %s", e.Path)
	case KindOperationNotPermitted:
		fmt.Fprintf(&b, "operation not permitted (file may be locked or restricted): %s", e.Path)
	case KindResourceExhausted:
		fmt.Fprintf(&b, "too many open files while reading: %s", e.Path)
	case KindPathTooLong:
		fmt.Fprintf(&b, "path too long: %s", e.Path)
	case KindIOError:
		fmt.Fprintf(&b, "failed to read file: %s", e.Path)
	case KindTransport:
		b.WriteString("upload request failed")
	case KindCancelled:
		b.WriteString("upload cancelled")
	case KindHTTP:
		fmt.Fprintf(&b, "upload failed with HTTP status %d", e.Status)
	case KindMalformedResponse:
		b.WriteString("invalid JSON response from server")
	case KindInvalidResponseSchema:
		b.WriteString("invalid response from server")
	case KindUploadRejected:
		b.WriteString("upload failed")
	case KindMissingURL:
		b.WriteString("upload succeeded but no URL returned")
	case KindNotConfigured:
		b.WriteString("storage service not configured or initialization failed")
	default:
		b.WriteString("upload error")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Body != "" {
		b.WriteString("\nResponse: ")
		b.WriteString(preview(e.Body))
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// InvalidArgument builds a KindInvalidArgument error
func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Detail: fmt.Sprintf(format, args...)}
}

func preview(body string) string {
	if len(body) <= maxBodyPreview {
		return body
	}
	return body[:maxBodyPreview] + "...(truncated)"
}

// TransportError classifies a failed send: KindCancelled when ctx is done,
// KindTransport otherwise
func TransportError(ctx context.Context, detail string, err error) *Error {
	if ctx.Err() != nil {
		return &Error{Kind: KindCancelled, Detail: detail, Err: err}
	}
	return &Error{Kind: KindTransport, Detail: detail, Err: err}
}
