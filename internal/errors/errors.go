// Package errors provides structured error types for nextver.
// Every error leaving a layer boundary carries a Kind so callers can
// classify it (and the CLI can map it to an exit code) without string matching.
package errors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Kind represents the category of an error.
type Kind uint8

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindConfig indicates a configuration error.
	KindConfig
	// KindGit indicates a failure reading tags or history.
	KindGit
	// KindVersion indicates a tag that is not a well-formed version.
	KindVersion
	// KindState indicates an operation called before its inputs were ready.
	KindState
	// KindIO indicates a file I/O error.
	KindIO
	// KindValidation indicates invalid user input.
	KindValidation
	// KindNotFound indicates a resource was not found.
	KindNotFound
	// KindConflict indicates a request that contradicts existing state.
	KindConflict
	// KindPolicy indicates a release gate that was not satisfied.
	KindPolicy
	// KindTimeout indicates a timeout error.
	KindTimeout
	// KindCanceled indicates the operation was canceled.
	KindCanceled
	// KindInternal indicates an internal error.
	KindInternal
)

var kindNames = map[Kind]string{
	KindConfig:     "configuration",
	KindGit:        "git",
	KindVersion:    "version",
	KindState:      "state",
	KindIO:         "io",
	KindValidation: "validation",
	KindNotFound:   "not_found",
	KindConflict:   "conflict",
	KindPolicy:     "policy",
	KindTimeout:    "timeout",
	KindCanceled:   "canceled",
	KindInternal:   "internal",
}

// String returns a human-readable string for the error kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is the standard error type for nextver.
type Error struct {
	// Kind is the category of the error.
	Kind Kind
	// Op is the operation being performed when the error occurred.
	Op string
	// Message is a human-readable error message.
	Message string
	// Err is the underlying error.
	Err error
	// Details contains additional context about the error.
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		if e.Message != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches this error.
// A target without Op matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op == "" {
		return e.Kind == t.Kind
	}
	return e.Kind == t.Kind && e.Op == t.Op
}

// WithDetail adds a single detail to the error and returns the modified error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges details into the error and returns the modified error.
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// New creates a new Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a new Error with the given kind and formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, kind Kind, op string, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, kind Kind, op string, format string, args ...any) *Error {
	return Wrap(err, kind, op, fmt.Sprintf(format, args...))
}

// E is a convenience function to create errors with various arguments.
// Arguments can be of type Kind, string (operation, then message), error,
// or map[string]any (details).
func E(args ...any) *Error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Kind:
			e.Kind = a
		case string:
			if e.Op == "" {
				e.Op = a
			} else if e.Message == "" {
				e.Message = a
			}
		case *Error:
			e.Err = a
			if e.Kind == KindUnknown {
				e.Kind = a.Kind
			}
		case error:
			e.Err = a
		case map[string]any:
			e.Details = a
		}
	}
	return e
}

// GetKind returns the Kind of the outermost *Error in err's chain.
// If there is none, it returns KindUnknown.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind checks if an error is of a specific kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// Config creates a configuration error.
func Config(op, message string) *Error { return &Error{Kind: KindConfig, Op: op, Message: message} }

// ConfigWrap wraps an error as a configuration error.
func ConfigWrap(err error, op, message string) *Error { return Wrap(err, KindConfig, op, message) }

// Git creates a git operation error.
func Git(op, message string) *Error { return &Error{Kind: KindGit, Op: op, Message: message} }

// GitWrap wraps an error as a git error. Credentials embedded in remote
// URLs are scrubbed from the underlying message.
func GitWrap(err error, op, message string) *Error {
	return Wrap(RedactError(err), KindGit, op, message)
}

// VersionWrap wraps an error as a versioning error.
func VersionWrap(err error, op, message string) *Error { return Wrap(err, KindVersion, op, message) }

// ValidationWrap wraps an error as a validation error.
func ValidationWrap(err error, op, message string) *Error {
	return Wrap(err, KindValidation, op, message)
}

// Validation creates a validation error.
func Validation(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

// NotFoundWrap wraps an error as a not found error.
func NotFoundWrap(err error, op, message string) *Error { return Wrap(err, KindNotFound, op, message) }

// IOWrap wraps an error as an I/O error.
func IOWrap(err error, op, message string) *Error { return Wrap(err, KindIO, op, message) }

// StateWrap wraps an error as a state error.
func StateWrap(err error, op, message string) *Error { return Wrap(err, KindState, op, message) }

// ConflictWrap wraps an error as a conflict error.
func ConflictWrap(err error, op, message string) *Error { return Wrap(err, KindConflict, op, message) }

// PolicyWrap wraps an error as a release policy error.
func PolicyWrap(err error, op, message string) *Error { return Wrap(err, KindPolicy, op, message) }

// Internal creates an internal error.
func Internal(op, message string) *Error { return &Error{Kind: KindInternal, Op: op, Message: message} }

// Credentials that can surface in go-git errors when a remote is configured
// with an embedded token.
var sensitivePatterns = []*regexp.Regexp{
	// GitHub tokens: ghp_..., gho_..., ghs_..., ghr_...
	regexp.MustCompile(`\bgh[posr]_[a-zA-Z0-9]{36,}\b`),
	// Basic auth with password in URL
	regexp.MustCompile(`://[^:/\s]+:[^@\s]+@`),
}

// RedactSensitive removes credentials from a message.
func RedactSensitive(s string) string {
	for _, pattern := range sensitivePatterns {
		s = pattern.ReplaceAllString(s, "[REDACTED]")
	}
	return s
}

// RedactError returns err unchanged unless its message carries credentials,
// in which case a redacted copy is returned. A nil error stays nil.
func RedactError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if redacted := RedactSensitive(msg); redacted != msg {
		return errors.New(redacted)
	}
	return err
}
