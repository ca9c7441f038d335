package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates which pipeline stage produced the error
type Phase string

const (
	PhaseRead    Phase = "read"    // reading the module file
	PhaseLoad    Phase = "load"    // validation and compilation
	PhaseExecute Phase = "execute" // export lookup and binding
	PhaseDecode  Phase = "decode"  // disassembly and opcode scan
	PhaseEmit    Phase = "emit"    // artifact output
)

// Kind categorizes the error. Every kind is fatal to the run.
type Kind string

const (
	KindIO                Kind = "io"
	KindValidation        Kind = "validation"
	KindFunctionNotFound  Kind = "function_not_found"
	KindSignatureMismatch Kind = "signature_mismatch"
	KindDecode            Kind = "decode"
)

// Error is the structured error type used throughout the probe
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Path != "" {
		b.WriteString(" in ")
		b.WriteString(e.Path)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. An empty Phase on the
// target matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the file the error relates to
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Convenience constructors for the taxonomy

// IO creates a file read or write error
func IO(phase Phase, path string, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindIO,
		Path:  path,
		Cause: cause,
	}
}

// Validation creates a module validation error
func Validation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindValidation,
		Detail: "module failed validation",
		Cause:  cause,
	}
}

// FunctionNotFound creates an error for a missing function export
func FunctionNotFound(name string) *Error {
	return &Error{
		Phase:  PhaseExecute,
		Kind:   KindFunctionNotFound,
		Detail: fmt.Sprintf("function %q not exported", name),
	}
}

// SignatureMismatch creates an error for an export that is not () -> ()
func SignatureMismatch(name string, params, results int) *Error {
	return &Error{
		Phase:  PhaseExecute,
		Kind:   KindSignatureMismatch,
		Detail: fmt.Sprintf("function %q takes %d params and returns %d results, want none", name, params, results),
	}
}

// Decode creates an instruction or section decode error
func Decode(cause error) *Error {
	return &Error{
		Phase: PhaseDecode,
		Kind:  KindDecode,
		Cause: cause,
	}
}
