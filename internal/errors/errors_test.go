package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"explicit", WithSuggestion(errors.New("x"), "do y"), "do y"},
		{"station", fmt.Errorf("play: %w", ErrStationNotFound), "Run 'dial stations' to list station ids"},
		{"unreachable", fmt.Errorf("load: %w", ErrStreamUnreachable), "The station may be offline. Try another station or add fallback_urls"},
		{"network text", errors.New("dial tcp: connection refused"), "Check your network connection and try again"},
		{"unknown", errors.New("something odd"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSuggestion(tt.err); got != tt.want {
				t.Errorf("GetSuggestion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	got := Format(fmt.Errorf("play: %w", ErrNoRenderer))
	if !strings.HasPrefix(got, "Error: play: no renderer available") {
		t.Errorf("Format() = %q", got)
	}
	if !strings.Contains(got, "Suggestion: Run 'dial rooms'") {
		t.Errorf("Format() missing suggestion: %q", got)
	}

	if got := Format(errors.New("plain")); got != "Error: plain" {
		t.Errorf("Format() = %q, want %q", got, "Error: plain")
	}
}

func TestDialErrorUnwrap(t *testing.T) {
	err := WithSuggestion(ErrCodecMismatch, "hint")
	if !errors.Is(err, ErrCodecMismatch) {
		t.Error("errors.Is(err, ErrCodecMismatch) = false, want true")
	}
}
