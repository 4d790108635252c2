package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrClosed", ErrClosed, "resource is closed"},
		{"ErrTimeout", ErrTimeout, "operation timed out"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
		{"ErrRateLimited", ErrRateLimited, "rate limited"},
		{"ErrIndexOutOfRange", ErrIndexOutOfRange, "index out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "scheduler",
				Field:  "delay",
				Value:  -1,
				Reason: "must be positive",
			},
			want: "scheduler: invalid delay=-1 (must be positive)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "guard",
				Field:  "max_retries",
				Value:  -2,
				Reason: "cannot be negative",
				Hint:   "use 0 to disable retries",
			},
			want: "guard: invalid max_retries=-2 (cannot be negative) - use 0 to disable retries",
		},
		{
			name: "string value",
			err: &ValidationError{
				Module: "guard",
				Field:  "cron",
				Value:  "",
				Reason: "cannot be empty",
			},
			want: "guard: invalid cron= (cannot be empty)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	verr := NewValidationError("test", "field", 0, "test")

	if !errors.Is(verr, ErrInvalidConfiguration) {
		t.Error("ValidationError should wrap ErrInvalidConfiguration")
	}
	if errors.Is(verr, ErrIndexOutOfRange) {
		t.Error("ValidationError should not match ErrIndexOutOfRange")
	}
}

func TestValidationError_WithHint(t *testing.T) {
	err := NewValidationError("test", "field", 0, "invalid").
		WithHint("try using a positive value")

	if err.Hint != "try using a positive value" {
		t.Errorf("Hint = %q, want %q", err.Hint, "try using a positive value")
	}

	// Should return same instance for chaining
	if result := err.WithHint("new hint"); result != err {
		t.Error("WithHint should return the same instance")
	}
}

func TestIndexError(t *testing.T) {
	err := NewIndexError("scheduler", "AddAt", 5, 3)

	if got, want := err.Error(), "scheduler.AddAt: index 5 out of range [len=3]"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Error("IndexError should wrap ErrIndexOutOfRange")
	}
	if !IsIndexError(err) {
		t.Error("IsIndexError should report true")
	}
	if IsIndexError(errors.New("other")) {
		t.Error("IsIndexError should report false for plain errors")
	}
}

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{
			name: "without context",
			err: &OperationError{
				Module:    "distributed",
				Operation: "Allow",
				Cause:     errors.New("connection refused"),
			},
			want: "distributed.Allow failed: connection refused",
		},
		{
			name: "with context",
			err: &OperationError{
				Module:    "job",
				Operation: "Join",
				Cause:     errors.New("deadline"),
				Context:   "job still running",
			},
			want: "job.Join failed: deadline (job still running)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	cause := errors.New("test cause")
	opErr := NewOperationError("module", "operation", cause).WithContext("ctx")

	if !errors.Is(opErr, cause) {
		t.Error("OperationError should wrap the cause error")
	}
	if opErr.Context != "ctx" {
		t.Errorf("Context = %q, want %q", opErr.Context, "ctx")
	}
}

func TestPanicError(t *testing.T) {
	t.Run("non-error value", func(t *testing.T) {
		err := NewPanicError("boom", []byte("goroutine 1 [running]"))

		if got := err.Error(); got != "panic: boom" {
			t.Errorf("Error() = %q, want %q", got, "panic: boom")
		}
		if err.Unwrap() != nil {
			t.Error("Unwrap should be nil for non-error values")
		}
		if !strings.Contains(StackOf(err), "goroutine 1") {
			t.Errorf("StackOf() = %q, want captured stack", StackOf(err))
		}
	})

	t.Run("error value", func(t *testing.T) {
		err := NewPanicError(ErrClosed, nil)
		if !errors.Is(err, ErrClosed) {
			t.Error("PanicError should unwrap an error value")
		}
	})

	t.Run("no panic", func(t *testing.T) {
		if StackOf(errors.New("plain")) != "" {
			t.Error("StackOf should be empty for plain errors")
		}
	})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout error", ErrTimeout, true},
		{"rate limited error", ErrRateLimited, true},
		{"closed error", ErrClosed, false},
		{"random error", errors.New("random"), false},
		{"wrapped timeout", &OperationError{Cause: ErrTimeout}, true},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			"validation error",
			&ValidationError{Module: "test", Field: "field", Value: 0, Reason: "test"},
			true,
		},
		{
			"wrapped validation error",
			&OperationError{Cause: &ValidationError{Module: "test", Field: "field", Value: 0, Reason: "test"}},
			true,
		},
		{"operation error", &OperationError{Cause: errors.New("test")}, false},
		{"index error", NewIndexError("m", "op", 1, 0), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.want {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.want)
			}
		})
	}
}
