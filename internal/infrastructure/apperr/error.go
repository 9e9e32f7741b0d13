package apperr

import (
	"errors"

	"github.com/goccy/go-json"
)

// Status codes the client raises on its own. Anything else comes straight
// from the backend's metaData.AppStatusCode.
const (
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeProtocol     = 500
	CodeUnavailable  = 503
)

const (
	UnauthorizedMsg  = "Session expired"
	ForbiddenMsg     = "Access denied"
	EmptyResponseMsg = "Empty response from server"
	UnavailableMsg   = "Service unavailable"
)

// appError is the single error shape for every failure origin: HTTP errors,
// network failures and protocol violations all surface through it, so callers
// can switch on CodeOf(err) without caring where the failure came from.
type appError struct {
	Message    string              `json:"message"` // Message for user
	StatusCode int                 `json:"AppStatusCode"`
	Fields     map[string][]string `json:"errors,omitempty"`
	Data       json.RawMessage     `json:"data,omitempty"`
	logLevel   LogLevel
	detail     string // detail for logs
}

func New(message string, statusCode int, logLevel LogLevel) *appError {
	return &appError{
		Message:    message,
		StatusCode: statusCode,
		logLevel:   logLevel,
		detail:     message,
	}
}

func ErrUnauthorized() *appError {
	return New(UnauthorizedMsg, CodeUnauthorized, LogLevelWarn)
}

func ErrForbidden() *appError {
	return New(ForbiddenMsg, CodeForbidden, LogLevelWarn)
}

// ErrEmptyResponse marks a null payload on an ostensibly successful response.
// statusCode is the server's reported code when it sent one, else the HTTP status.
func ErrEmptyResponse(statusCode int) *appError {
	return New(EmptyResponseMsg, statusCode, LogLevelError)
}

func ErrUnavailable(cause error) *appError {
	e := New(UnavailableMsg, CodeUnavailable, LogLevelError)
	if cause != nil {
		e.detail = cause.Error()
	}
	return e
}

func (e *appError) WithUserMessage(message string) *appError {
	e.Message = message
	return e
}

func (e *appError) WithDetail(detail string) *appError {
	e.detail = detail
	return e
}

func (e *appError) WithFields(fields map[string][]string) *appError {
	e.Fields = fields
	return e
}

func (e *appError) WithData(data json.RawMessage) *appError {
	e.Data = data
	return e
}

func (e *appError) Error() string {
	return e.detail
}

func (e *appError) Is(target error) bool {
	if t, ok := target.(*appError); ok {
		return e.StatusCode == t.StatusCode
	}

	return false
}

type LogLevel int

const (
	LogLevelError LogLevel = 0
	LogLevelWarn  LogLevel = 1
)

// CodeOf returns the AppStatusCode of err, or CodeProtocol when err is not an appError.
func CodeOf(err error) int {
	var ae *appError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return CodeProtocol
}

// MessageOf returns the user-facing message, falling back to a generic one.
func MessageOf(err error) string {
	var ae *appError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Something went wrong"
}

// FieldsOf returns the backend's field-level validation errors, if any.
func FieldsOf(err error) map[string][]string {
	var ae *appError
	if errors.As(err, &ae) {
		return ae.Fields
	}
	return nil
}

func DataOf(err error) json.RawMessage {
	var ae *appError
	if errors.As(err, &ae) {
		return ae.Data
	}
	return nil
}

func LogLevelOf(err error) LogLevel {
	var ae *appError
	if errors.As(err, &ae) {
		return ae.logLevel
	}
	return LogLevelError
}

// IsSessionExpired reports whether err carries the 401 code that forces a
// session clear and login redirect.
func IsSessionExpired(err error) bool {
	return CodeOf(err) == CodeUnauthorized
}
