package errors

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// ErrorBuilder assembles an error carrying a caller-facing hint and
// structured reportable details. It is not itself an error; Mark finishes
// the chain and returns the built error.
type ErrorBuilder struct {
	err error
}

// NewError starts a builder chain from a message
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// WithError starts a builder chain from an existing error
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithHint attaches the message shown to API callers. Internal error text
// never reaches the response; only hints do.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

// WithHintf is a helper for WithHint that allows for formatting
func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithReportableDetails attaches details that are safe to return to the
// caller, carried as one JSON object payload. The HTTP error handler
// decodes and merges them into the response.
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	payload, err := json.Marshal(details)
	if err != nil {
		return b
	}
	b.err = errors.WithSafeDetails(b.err, "%s", errors.Safe(string(payload)))
	return b
}

// Mark ties the error to one of the package sentinels so Is checks and
// HTTP status mapping work across wrap layers. Must be the last call in
// the chain.
func (b *ErrorBuilder) Mark(reference error) error {
	b.err = errors.Mark(b.err, reference)
	return b.err
}
