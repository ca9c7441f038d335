package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEmit,
				Kind:   KindIO,
				Path:   "out/execution_log.json",
				Detail: "write artifact",
				Cause:  errors.New("disk full"),
			},
			contains: []string{"[emit]", "io", "out/execution_log.json", "write artifact", "caused by", "disk full"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindDecode,
			},
			contains: []string{"[decode]", "decode"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Validation(cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := FunctionNotFound("run")

	if !err.Is(&Error{Phase: PhaseExecute, Kind: KindFunctionNotFound}) {
		t.Error("Is should match same phase and kind")
	}
	if !err.Is(&Error{Kind: KindFunctionNotFound}) {
		t.Error("Is should match kind when target phase is empty")
	}
	if err.Is(&Error{Phase: PhaseLoad, Kind: KindFunctionNotFound}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseExecute, Kind: KindSignatureMismatch}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("probe: %w", err)
	if !errors.Is(wrapped, &Error{Kind: KindFunctionNotFound}) {
		t.Error("errors.Is should match through wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEmit, KindIO).
		Path("opcode_vector.json").
		Cause(cause).
		Detail("write %s", "vector").
		Build()

	if err.Phase != PhaseEmit {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEmit)
	}
	if err.Kind != KindIO {
		t.Errorf("Kind = %v, want %v", err.Kind, KindIO)
	}
	if err.Path != "opcode_vector.json" {
		t.Errorf("Path = %v, want opcode_vector.json", err.Path)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "write vector" {
		t.Errorf("Detail = %v, want 'write vector'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err   *Error
		name  string
		kind  Kind
		phase Phase
	}{
		{name: "IO", err: IO(PhaseRead, "a.wasm", errors.New("missing")), kind: KindIO, phase: PhaseRead},
		{name: "Validation", err: Validation(errors.New("bad magic")), kind: KindValidation, phase: PhaseLoad},
		{name: "FunctionNotFound", err: FunctionNotFound("run"), kind: KindFunctionNotFound, phase: PhaseExecute},
		{name: "SignatureMismatch", err: SignatureMismatch("run", 1, 0), kind: KindSignatureMismatch, phase: PhaseExecute},
		{name: "Decode", err: Decode(errors.New("bad opcode")), kind: KindDecode, phase: PhaseDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
		})
	}

	if msg := SignatureMismatch("run", 2, 1).Error(); !strings.Contains(msg, "2 params") {
		t.Errorf("SignatureMismatch message %q should mention param count", msg)
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", Decode(errors.New("x")))

	if !IsKind(err, KindDecode) {
		t.Error("IsKind should find wrapped kind")
	}
	if IsKind(err, KindIO) {
		t.Error("IsKind should not match other kind")
	}
	if IsKind(errors.New("plain"), KindDecode) {
		t.Error("IsKind should be false for plain errors")
	}
	if _, ok := KindOf(nil); ok {
		t.Error("KindOf(nil) should report false")
	}
}
