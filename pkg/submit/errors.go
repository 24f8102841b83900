package submit

import (
	"errors"
	"sort"
	"strings"
)

// GenericFailureMessage is the last resort shown when a failure carries no
// usable detail.
const GenericFailureMessage = "An unexpected error occurred"

// RemoteError is the tagged union a failed save resolves to: field-level
// messages keyed by field path, page-level messages, and the underlying
// transport error. Any subset may be populated.
type RemoteError struct {
	FieldErrors map[string][]string
	PageErrors  []string
	Err         error
}

// Error implements error using the most specific message available.
func (e *RemoteError) Error() string {
	if e == nil {
		return GenericFailureMessage
	}
	if msg, ok := e.firstFieldMessage(); ok {
		return msg
	}
	if msg, ok := e.firstPageMessage(); ok {
		return msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return GenericFailureMessage
}

// Unwrap exposes the transport error for errors.Is/As chains.
func (e *RemoteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *RemoteError) firstFieldMessage() (string, bool) {
	if len(e.FieldErrors) == 0 {
		return "", false
	}
	fields := make([]string, 0, len(e.FieldErrors))
	for field := range e.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, msg := range e.FieldErrors[field] {
			if trimmed := strings.TrimSpace(msg); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

func (e *RemoteError) firstPageMessage() (string, bool) {
	for _, msg := range e.PageErrors {
		if trimmed := strings.TrimSpace(msg); trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}

// ExtractMessage resolves the user-facing message for a submit failure with
// an explicit ordered fallback: field error, then page error, then the error
// text itself, then the generic fallback. Each branch is reachable in
// isolation, unlike the optional-chaining cascades this replaces.
func ExtractMessage(err error) string {
	if err == nil {
		return ""
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		if msg, ok := remote.firstFieldMessage(); ok {
			return msg
		}
		if msg, ok := remote.firstPageMessage(); ok {
			return msg
		}
		if remote.Err != nil {
			return remote.Err.Error()
		}
		return GenericFailureMessage
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return GenericFailureMessage
}
