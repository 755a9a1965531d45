package observability

import (
	"context"
	"testing"
)

func TestNewRequestIDIsValid(t *testing.T) {
	first, second := NewRequestID(), NewRequestID()

	if !ValidRequestID(first) {
		t.Fatalf("expected %q to be a valid request id", first)
	}
	if first == second {
		t.Fatalf("expected distinct request ids, got %q twice", first)
	}
}

func TestValidRequestID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"", false},
		{"abc-123", false},
		{"1b4e28ba-2fa1-11d2-883f-0016d3cca427", true},
		{"1b4e28ba-2fa1-11d2-883f-0016d3cca427\nforged=1", false},
	}

	for _, tt := range tests {
		if got := ValidRequestID(tt.id); got != tt.want {
			t.Fatalf("ValidRequestID(%q): expected %v, got %v", tt.id, tt.want, got)
		}
	}
}

func TestRequestIDFromContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"set", ContextWithRequestID(context.Background(), "req-7"), "req-7"},
		{"missing", context.Background(), ""},
		{"wrong type", context.WithValue(context.Background(), RequestIDKey, 42), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequestIDFromContext(tt.ctx); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
