package wasmtest

import (
	"github.com/wippyai/wasm-probe/wasm"
)

// Code concatenates encoded instruction fragments.
func Code(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Op encodes single-byte opcodes without immediates.
func Op(ops ...wasm.Opcode) []byte {
	out := make([]byte, len(ops))
	for i, op := range ops {
		out[i] = byte(op)
	}
	return out
}

// I32Const encodes i32.const v.
func I32Const(v int32) []byte {
	return append([]byte{byte(wasm.OpI32Const)}, s64(int64(v))...)
}

// I64Const encodes i64.const v.
func I64Const(v int64) []byte {
	return append([]byte{byte(wasm.OpI64Const)}, s64(v)...)
}

// Index encodes an opcode with a single u32 immediate (br, call, local.get...).
func Index(op wasm.Opcode, idx uint32) []byte {
	return append([]byte{byte(op)}, u32(idx)...)
}

// Block encodes block/loop/if with an empty block type.
func Block(op wasm.Opcode) []byte {
	return []byte{byte(op), 0x40}
}

// Misc encodes a 0xFC-prefixed opcode followed by raw u32 immediates.
func Misc(op wasm.Opcode, imms ...uint32) []byte {
	out := append([]byte{wasm.PrefixMisc}, u32(op.Sub())...)
	for _, imm := range imms {
		out = append(out, u32(imm)...)
	}
	return out
}

// Memory encodes a load or store with the given alignment exponent and offset.
func Memory(op wasm.Opcode, align, offset uint32) []byte {
	out := []byte{byte(op)}
	out = append(out, u32(align)...)
	return append(out, u32(offset)...)
}

// InfiniteLoop encodes `loop; br 0; end`.
func InfiniteLoop() []byte {
	return Code(Block(wasm.OpLoop), Index(wasm.OpBr, 0), Op(wasm.OpEnd))
}

// CountedLoop encodes a loop decrementing local 0 from n down to zero.
// The enclosing function must declare one i32 local.
func CountedLoop(n int32) []byte {
	return Code(
		I32Const(n), Index(wasm.OpLocalSet, 0),
		Block(wasm.OpLoop),
		Index(wasm.OpLocalGet, 0), I32Const(1), Op(wasm.OpI32Sub), Index(wasm.OpLocalTee, 0),
		Index(wasm.OpBrIf, 0),
		Op(wasm.OpEnd),
	)
}

// Nullary is the empty signature.
var Nullary []wasm.ValType
