package citation

import (
	"context"
	"errors"
)

var (
	// ErrIdentifierEmpty is returned by Resolve for a blank identifier. The
	// panel treats it as "feature disabled", not as a failure.
	ErrIdentifierEmpty = errors.New("citation: identifier is empty")

	// ErrEngineUnavailable is reported when Service.Available is false.
	ErrEngineUnavailable = errors.New("citation: engine unavailable")

	// ErrResolutionFailed wraps any failure to retrieve or parse a record.
	ErrResolutionFailed = errors.New("citation: resolution failed")

	// ErrFormatFailed is returned when the engine rejects a style or record.
	ErrFormatFailed = errors.New("citation: format failed")
)

// Record is a resolved, style-independent bibliographic entry. Its contents
// are private to the engine that produced it.
type Record interface {
	// Identifier returns the identifier the record was resolved from.
	Identifier() string
}

// Service is a bibliography engine.
type Service interface {
	// Available reports whether the engine can be used at all.
	Available() bool

	// Resolve retrieves the record for identifier. One attempt, no retries.
	Resolve(ctx context.Context, identifier string) (Record, error)

	// Format renders record in style. It must be a pure function of its
	// inputs for records the engine itself produced.
	Format(record Record, style Style) (string, error)
}
