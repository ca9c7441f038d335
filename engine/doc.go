// Package engine runs a single export of a core WebAssembly module under a
// fuel budget.
//
// This package wraps wazero, which has no native fuel accounting. Fuel is
// provided by the meter package: every run instantiates a rewritten copy of
// the module that charges an exported i64 global per straight-line segment
// and traps once the global goes negative.
//
// # Architecture
//
//	WazeroEngine - owns the wazero runtime
//	WazeroModule - a validated, compiled module; runs exports via Execute
//
// # Execution Flow
//
//  1. WazeroEngine.LoadModule() compiles and validates the binary
//  2. WazeroModule.Execute() resolves the export and checks it is () -> ()
//  3. A metered copy is compiled and instantiated with no imports
//  4. The export is called once and timed
//  5. The result is classified into an Outcome
//
// # Outcomes
//
//	StatusSuccess   - the call returned
//	StatusExhausted - the fuel global was negative after the trap
//	StatusTrapped   - any other trap, message is the first line of the trap
//	StatusFailed    - metering, compilation or instantiation of the copy failed
//
// A start function that exhausts its fuel during instantiation is reported
// as StatusFailed, since the fuel global is unreadable without an instance.
//
// # Thread Safety
//
// WazeroEngine and WazeroModule are safe for concurrent use. Each Execute
// creates and closes its own instance.
package engine
