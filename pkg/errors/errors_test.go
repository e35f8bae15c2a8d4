package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidCount, "element count must be positive, got %d", -3)
	want := "INVALID_COUNT: element count must be positive, got -3"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStore, cause, "save snapshot %s", "baseline")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error does not match its cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() = %q, missing cause", err.Error())
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeElementNotFound, "element missing")

	if !Is(err, ErrCodeElementNotFound) {
		t.Error("Is did not match the error's own code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is matched a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Is matched a non-structured error")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeInvalidArchitecture, "unknown architecture")
	outer := fmt.Errorf("generate: %w", inner)

	if !Is(outer, ErrCodeInvalidArchitecture) {
		t.Error("Is did not unwrap to the structured error")
	}
	if GetCode(outer) != ErrCodeInvalidArchitecture {
		t.Errorf("GetCode = %s, want INVALID_ARCHITECTURE", GetCode(outer))
	}
}

func TestGetCodePlainError(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidName, "snapshot name cannot be empty")
	if got := UserMessage(err); got != "snapshot name cannot be empty" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateSnapshotName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Simple", "baseline", false},
		{"WithDashesAndDots", "run-2.final", false},
		{"Unicode", "läufe", false},
		{"Empty", "", true},
		{"TooLong", strings.Repeat("a", 129), true},
		{"MaxLength", strings.Repeat("a", 128), false},
		{"Slash", "a/b", true},
		{"Backslash", `a\b`, true},
		{"Traversal", "..", true},
		{"Dot", ".", true},
		{"ControlChar", "a\x00b", true},
		{"Newline", "a\nb", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshotName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSnapshotName(%q) = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("error code = %s, want INVALID_NAME", GetCode(err))
			}
		})
	}
}
