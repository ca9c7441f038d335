// Package wasm reads WebAssembly core module binaries as a stream of
// structural payloads.
//
// Unlike a full decoder, the parser does not build a module model. It yields
// the header, each section in file order, and each function body of the code
// section, leaving callers to decode only what they need:
//
//	p := wasm.NewParser(data)
//	for {
//	    pl, err := p.Next()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    if pl.Kind == wasm.PayloadCodeEntry {
//	        ir := pl.Instructions()
//	        // ir.Next() until io.EOF
//	    }
//	}
//
// # Instructions
//
// Instructions are identified by Opcode, a closed enumeration covering
// WebAssembly 2.0: the MVP set, sign extension, saturating truncation, bulk
// memory, reference types and fixed-width SIMD. Opcode.String returns the
// text-format mnemonic, which is stable across immediates:
//
//	wasm.OpI32Const.String() // "i32.const"
//
// Anything outside that set fails to decode with ErrUnknownOpcode.
//
// Each decoded Instruction records its byte Offset and Size within the body,
// which lets rewriting passes splice code without re-encoding.
package wasm
