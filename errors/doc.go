// Package errors provides the structured error type for wasm-probe.
//
// Errors are categorized by Phase (the pipeline stage) and Kind (the
// taxonomy entry). Only setup failures are errors; guest traps and fuel
// exhaustion are reported as engine outcomes instead.
//
// Use the Builder for structured construction:
//
//	err := errors.New(errors.PhaseEmit, errors.KindIO).
//		Path("execution_log.json").
//		Cause(cause).
//		Build()
//
// Or the convenience constructors:
//
//	err := errors.FunctionNotFound("run")
//
// Match by kind with errors.IsKind, or with the standard library:
//
//	stderrors.Is(err, &errors.Error{Kind: errors.KindDecode})
package errors
