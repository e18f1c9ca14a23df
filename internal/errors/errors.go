package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrStationNotFound     = errors.New("station not found")
	ErrDuplicateStation    = errors.New("duplicate station id")
	ErrInvalidStation      = errors.New("invalid station")
	ErrStreamUnreachable   = errors.New("stream unreachable")
	ErrCodecMismatch       = errors.New("stream codec mismatch")
	ErrAcquireFailed       = errors.New("could not acquire audio resource")
	ErrNoRenderer          = errors.New("no renderer available")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrNetworkError        = errors.New("network error")
	ErrTimeout             = errors.New("request timeout")
	ErrConfigNotFound      = errors.New("config file not found")
	ErrInvalidConfig       = errors.New("invalid configuration")
)

// DialError wraps an error with a user-friendly suggestion.
type DialError struct {
	Err        error
	Suggestion string
}

func (e *DialError) Error() string {
	return e.Err.Error()
}

func (e *DialError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &DialError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var dialErr *DialError
	if errors.As(err, &dialErr) && dialErr.Suggestion != "" {
		return dialErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrStationNotFound) {
		return "Run 'dial stations' to list station ids"
	}

	if errors.Is(err, ErrNoRenderer) || strings.Contains(errStr, "no zone") {
		return "Run 'dial rooms' to find a speaker, then 'dial config set sonos.default_room <name>'"
	}

	if errors.Is(err, ErrCodecMismatch) {
		return "The stream format does not match the station entry; check its format field"
	}

	if errors.Is(err, ErrStreamUnreachable) {
		return "The station may be offline. Try another station or add fallback_urls"
	}

	if errors.Is(err, ErrAcquireFailed) {
		return "The speaker rejected the stream. Check that it is reachable and not grouped elsewhere"
	}

	if errors.Is(err, ErrNetworkError) || errors.Is(err, ErrTimeout) ||
		strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") {
		return "Check your network connection and try again"
	}

	if errors.Is(err, ErrInvalidConfig) {
		return "Run 'dial config show' to inspect the configuration"
	}

	if errors.Is(err, ErrConfigNotFound) || strings.Contains(errStr, "config") {
		return "Run 'dial config init' to create a configuration file"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
