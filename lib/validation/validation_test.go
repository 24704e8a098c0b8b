package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{"valid string", "name", "test", false},
		{"empty string", "name", "", true},
		{"whitespace only", "name", "   ", true},
		{"tab only", "name", "\t", true},
		{"newline only", "name", "\n", true},
		{"valid with spaces", "name", " test ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Required(tt.field, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Required() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrRequired) {
				t.Errorf("Required() error should wrap ErrRequired")
			}
		})
	}
}

func TestMaxLength(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		max     int
		wantErr bool
	}{
		{"under max", "name", "test", 10, false},
		{"at max", "name", "test", 4, false},
		{"over max", "name", "testing", 4, true},
		{"empty string", "name", "", 10, false},
		{"unicode chars", "name", "日本語", 5, false},
		{"unicode over", "name", "日本語テスト", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MaxLength(tt.field, tt.value, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("MaxLength() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrTooLong) {
				t.Errorf("MaxLength() error should wrap ErrTooLong")
			}
		})
	}
}

func TestPositive(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"positive", 1, false},
		{"large positive", 1000, false},
		{"zero", 0, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Positive("field", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Positive() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNonNegative(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"positive", 1, false},
		{"zero", 0, false},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NonNegative("field", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("NonNegative() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantDur  time.Duration
		wantErr  bool
		errCheck func(error) bool
	}{
		{"valid hours", "24h", 24 * time.Hour, false, nil},
		{"valid minutes", "30m", 30 * time.Minute, false, nil},
		{"valid seconds", "60s", 60 * time.Second, false, nil},
		{"valid complex", "1h30m", 90 * time.Minute, false, nil},
		{"empty string", "", 0, false, nil},
		{"invalid format", "invalid", 0, true, func(e error) bool { return errors.Is(e, ErrInvalidDuration) }},
		{"negative", "-1h", 0, true, func(e error) bool { return errors.Is(e, ErrOutOfRange) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Duration("field", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Duration() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && d != tt.wantDur {
				t.Errorf("Duration() = %v, want %v", d, tt.wantDur)
			}
			if err != nil && tt.errCheck != nil && !tt.errCheck(err) {
				t.Errorf("Duration() error type mismatch: %v", err)
			}
		})
	}
}

func TestHostPort(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid localhost", "127.0.0.1:8080", false},
		{"valid hostname", "localhost:7656", false},
		{"valid ipv6", "[::1]:8080", false},
		{"empty", "", true},
		{"no port", "127.0.0.1", true},
		{"no host", ":8080", false}, // This is actually valid in Go
		{"invalid format", "not-a-hostport", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HostPort("address", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("HostPort() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		var errs Errors
		if errs.Err() != nil {
			t.Error("empty Errors.Err() should be nil")
		}
		if errs.Error() != "" {
			t.Error("empty Errors.Error() should be empty string")
		}
	})

	t.Run("add nil is ignored", func(t *testing.T) {
		var errs Errors
		errs.Add(nil)
		if len(errs) != 0 {
			t.Error("adding nil should not create error")
		}
	})

	t.Run("single error", func(t *testing.T) {
		var errs Errors
		e := errors.New("test error")
		errs.Add(e)

		if errs.Err() == nil {
			t.Fatal("Err() should be non-nil")
		}
		if !errors.Is(errs.Err(), e) {
			t.Error("Err() should match the collected error")
		}
		if errs.Error() != "test error" {
			t.Errorf("Error() = %q, want %q", errs.Error(), "test error")
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		var errs Errors
		errs.Add(errors.New("first"))
		errs.Add(errors.New("second"))

		if len(errs) != 2 {
			t.Errorf("len(errs) = %d, want 2", len(errs))
		}
		if !strings.Contains(errs.Error(), "first") || !strings.Contains(errs.Error(), "second") {
			t.Errorf("Error() should contain both errors: %s", errs.Error())
		}
	})
}

func TestResult(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		r := NewResult("name", "is required", ErrRequired)
		if r.Error() != "name: is required" {
			t.Errorf("Error() = %q, want %q", r.Error(), "name: is required")
		}
		if !errors.Is(r, ErrRequired) {
			t.Error("should wrap ErrRequired")
		}
	})

	t.Run("without field", func(t *testing.T) {
		r := NewResult("", "general error", ErrInvalidFormat)
		if r.Error() != "general error" {
			t.Errorf("Error() = %q, want %q", r.Error(), "general error")
		}
	})
}

func TestNonNegativeFloat(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"fractional", 0.5, false},
		{"negative", -0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NonNegativeFloat("rate", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("NonNegativeFloat() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAtMost(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		limit   int
		wantErr bool
	}{
		{"below limit", 2, 4, false},
		{"at limit", 4, 4, false},
		{"above limit", 5, 4, true},
		{"unbounded", 1000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AtMost("initial_count", tt.value, "max_retained", tt.limit)
			if (err != nil) != tt.wantErr {
				t.Errorf("AtMost() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrOutOfRange) {
					t.Error("AtMost() error should wrap ErrOutOfRange")
				}
				if !strings.Contains(err.Error(), "max_retained") {
					t.Errorf("AtMost() error should name the limit field: %v", err)
				}
			}
		})
	}
}

func TestOneOf(t *testing.T) {
	allowed := []string{"debug", "info", "warn", "error"}

	if err := OneOf("log.level", "info", allowed...); err != nil {
		t.Errorf("OneOf() unexpected error: %v", err)
	}
	err := OneOf("log.level", "verbose", allowed...)
	if err == nil {
		t.Fatal("OneOf() should reject unknown values")
	}
	if !errors.Is(err, ErrInvalidFormat) {
		t.Error("OneOf() error should wrap ErrInvalidFormat")
	}
}

func TestConfigKey(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"simple", "list", false},
		{"underscore", "sorted_set", false},
		{"digits", "queue2", false},
		{"empty", "", true},
		{"uppercase", "List", true},
		{"leading digit", "2queue", true},
		{"dash", "sorted-set", true},
		{"too long", strings.Repeat("a", MaxConfigKeyLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ConfigKey("kind", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ConfigKey() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestErrorsUnwrap(t *testing.T) {
	var errs Errors
	if errs.Err() != nil {
		t.Error("empty Errors.Err() should be nil")
	}

	errs.Add(NonNegative("initial_count", -1))
	errs.Add(Required("name", ""))

	err := errs.Err()
	if err == nil {
		t.Fatal("Err() should be non-nil with collected errors")
	}
	if !errors.Is(err, ErrOutOfRange) {
		t.Error("collected errors should match ErrOutOfRange")
	}
	if !errors.Is(err, ErrRequired) {
		t.Error("collected errors should match ErrRequired")
	}

	var r *Result
	if !errors.As(err, &r) || r.Field != "initial_count" {
		t.Errorf("errors.As should find the first *Result, got %+v", r)
	}
}
