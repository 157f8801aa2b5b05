package oaserrors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Path:    "/path/to/file.yaml",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "parse error in /path/to/file.yaml at line 42, column 10: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{Message: "test"}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
		if errors.Is(err, ErrReference) {
			t.Error("ParseError should not match ErrReference")
		}
	})
}

func TestReferenceError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ReferenceError
		wantMsg  string
		sentinel error
	}{
		{
			name:     "generic",
			err:      &ReferenceError{Ref: "./a.yaml#/X"},
			wantMsg:  "reference error: ./a.yaml#/X",
			sentinel: ErrReference,
		},
		{
			name:     "circular",
			err:      &ReferenceError{Ref: "/specs/b.yaml#X", IsCircular: true},
			wantMsg:  "circular reference: /specs/b.yaml#X",
			sentinel: ErrCircularReference,
		},
		{
			name:     "missing file with target",
			err:      &ReferenceError{Ref: "./gone.yaml", Target: "/specs/gone.yaml", IsMissingFile: true},
			wantMsg:  "referenced file not found: ./gone.yaml (/specs/gone.yaml)",
			sentinel: ErrFileNotFound,
		},
		{
			name:     "pointer not found with message",
			err:      &ReferenceError{Ref: "./a.yaml#/Nope", IsPointerNotFound: true, Message: "Component Nope not found in /specs/a.yaml"},
			wantMsg:  "reference pointer not found: ./a.yaml#/Nope: Component Nope not found in /specs/a.yaml",
			sentinel: ErrPointerNotFound,
		},
		{
			name:     "unsupported scheme",
			err:      &ReferenceError{Ref: "https://example.com/a.yaml", IsUnsupportedScheme: true},
			wantMsg:  "unsupported reference scheme: https://example.com/a.yaml",
			sentinel: ErrUnsupportedScheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrReference) {
				t.Error("ReferenceError should always match ErrReference")
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("expected match with %v", tt.sentinel)
			}
		})
	}

	t.Run("flag sentinels do not cross-match", func(t *testing.T) {
		err := &ReferenceError{IsCircular: true}
		for _, other := range []error{ErrFileNotFound, ErrPointerNotFound, ErrUnsupportedScheme, ErrParse} {
			if errors.Is(err, other) {
				t.Errorf("circular ReferenceError should not match %v", other)
			}
		}
	})

	t.Run("Unwrap exposes os.ErrNotExist", func(t *testing.T) {
		err := &ReferenceError{Ref: "./gone.yaml", IsMissingFile: true, Cause: os.ErrNotExist}
		if !errors.Is(err, os.ErrNotExist) {
			t.Error("expected cause to be reachable through Unwrap")
		}
	})
}

func TestResourceLimitError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ResourceLimitError{
			ResourceType: "ref_depth",
			Limit:        100,
			Actual:       101,
			Message:      "reference chain too deep",
		}
		want := "resource limit exceeded: ref_depth (limit: 100, actual: 101): reference chain too deep"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrResourceLimit", func(t *testing.T) {
		err := &ResourceLimitError{}
		if !errors.Is(err, ErrResourceLimit) {
			t.Error("ResourceLimitError should match ErrResourceLimit")
		}
		if err.Unwrap() != nil {
			t.Error("Unwrap should return nil")
		}
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ConfigError{
			Option:  "format",
			Value:   "toml",
			Message: "must be yaml or json",
		}
		want := "configuration error for format (value: toml): must be yaml or json"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrConfig", func(t *testing.T) {
		if !errors.Is(&ConfigError{}, ErrConfig) {
			t.Error("ConfigError should match ErrConfig")
		}
	})
}

func TestErrorChaining(t *testing.T) {
	t.Run("deeply wrapped ReferenceError", func(t *testing.T) {
		refErr := &ReferenceError{Ref: "./b.yaml#/X", IsCircular: true}
		wrapped := fmt.Errorf("bundler: collecting: %w", fmt.Errorf("layer: %w", refErr))

		if !errors.Is(wrapped, ErrCircularReference) {
			t.Error("errors.Is should see through wrapping")
		}
		var extracted *ReferenceError
		if !errors.As(wrapped, &extracted) {
			t.Fatal("errors.As should extract ReferenceError")
		}
		if extracted.Ref != "./b.yaml#/X" {
			t.Errorf("unexpected Ref: %s", extracted.Ref)
		}
	})
}
