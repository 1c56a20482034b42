package app

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{"op only", NewOperationError("save", "", nil), "save"},
		{"with target", NewOperationError("save", "a.txt", nil), "save a.txt"},
		{"with error", NewOperationError("open", "a.txt", fs.ErrNotExist), "open a.txt: file does not exist"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	err := NewOperationError("open", "a.txt", fs.ErrNotExist)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should see the wrapped error")
	}
	var nilErr *OperationError
	if nilErr.Unwrap() != nil {
		t.Error("nil Unwrap() should be nil")
	}
}

func TestComponentError_Error(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		err      *ComponentError
		expected string
	}{
		{NewComponentError("settings", "reload", base), "settings: reload: boom"},
		{NewComponentError("settings", "reload", nil), "settings: reload"},
		{NewComponentError("watcher", "", base), "watcher: boom"},
		{NewComponentError("watcher", "", nil), "watcher"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.expected {
			t.Errorf("Error() = %q, want %q", got, tt.expected)
		}
	}
	if !errors.Is(NewComponentError("settings", "save", base), base) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestRecoveredPanicError(t *testing.T) {
	err := &RecoveredPanicError{Value: "oops", Stack: "frame"}
	if got := err.Error(); !strings.HasPrefix(got, "panic: oops\n") {
		t.Errorf("Error() = %q", got)
	}
	if got := (&RecoveredPanicError{Value: 3}).Error(); got != "panic: 3" {
		t.Errorf("Error() = %q, want panic: 3", got)
	}
}
