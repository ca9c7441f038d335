package wasm

import "fmt"

// Opcode identifies an instruction kind. Single-byte opcodes use their byte
// value; prefixed opcodes (0xFC, 0xFD) carry the prefix in bits 16-23 and the
// LEB128 sub-opcode in the low bits. The set of known opcodes is closed: the
// decoder rejects anything without an entry in the label table.
type Opcode uint32

const prefixShift = 16

// Prefix bytes for multi-byte opcodes.
const (
	PrefixMisc byte = 0xFC // saturating truncation, bulk memory, table ops
	PrefixSIMD byte = 0xFD // 128-bit SIMD
)

const (
	miscBase = Opcode(PrefixMisc) << prefixShift
	simdBase = Opcode(PrefixSIMD) << prefixShift
)

// Prefixed builds the opcode for a prefix/sub-opcode pair.
func Prefixed(prefix byte, sub uint32) Opcode {
	return Opcode(prefix)<<prefixShift | Opcode(sub)
}

// Prefix returns the prefix byte, or 0 for single-byte opcodes.
func (op Opcode) Prefix() byte {
	return byte(op >> prefixShift)
}

// Sub returns the sub-opcode of a prefixed opcode.
func (op Opcode) Sub() uint32 {
	return uint32(op & (1<<prefixShift - 1))
}

// Known reports whether op belongs to the decodable instruction set.
func (op Opcode) Known() bool {
	_, ok := opcodeLabels[op]
	return ok
}

// String returns the text-format mnemonic used as the instruction's label.
// Labels never include immediates.
func (op Opcode) String() string {
	if label, ok := opcodeLabels[op]; ok {
		return label
	}
	if p := op.Prefix(); p != 0 {
		return fmt.Sprintf("unknown(0x%02x 0x%x)", p, op.Sub())
	}
	return fmt.Sprintf("unknown(0x%02x)", uint32(op))
}

// Single-byte opcodes.
const (
	OpUnreachable       Opcode = 0x00
	OpNop               Opcode = 0x01
	OpBlock             Opcode = 0x02
	OpLoop              Opcode = 0x03
	OpIf                Opcode = 0x04
	OpElse              Opcode = 0x05
	OpEnd               Opcode = 0x0B
	OpBr                Opcode = 0x0C
	OpBrIf              Opcode = 0x0D
	OpBrTable           Opcode = 0x0E
	OpReturn            Opcode = 0x0F
	OpCall              Opcode = 0x10
	OpCallIndirect      Opcode = 0x11
	OpDrop              Opcode = 0x1A
	OpSelect            Opcode = 0x1B
	OpSelectType        Opcode = 0x1C
	OpLocalGet          Opcode = 0x20
	OpLocalSet          Opcode = 0x21
	OpLocalTee          Opcode = 0x22
	OpGlobalGet         Opcode = 0x23
	OpGlobalSet         Opcode = 0x24
	OpTableGet          Opcode = 0x25
	OpTableSet          Opcode = 0x26
	OpI32Load           Opcode = 0x28
	OpI64Load           Opcode = 0x29
	OpF32Load           Opcode = 0x2A
	OpF64Load           Opcode = 0x2B
	OpI32Load8S         Opcode = 0x2C
	OpI32Load8U         Opcode = 0x2D
	OpI32Load16S        Opcode = 0x2E
	OpI32Load16U        Opcode = 0x2F
	OpI64Load8S         Opcode = 0x30
	OpI64Load8U         Opcode = 0x31
	OpI64Load16S        Opcode = 0x32
	OpI64Load16U        Opcode = 0x33
	OpI64Load32S        Opcode = 0x34
	OpI64Load32U        Opcode = 0x35
	OpI32Store          Opcode = 0x36
	OpI64Store          Opcode = 0x37
	OpF32Store          Opcode = 0x38
	OpF64Store          Opcode = 0x39
	OpI32Store8         Opcode = 0x3A
	OpI32Store16        Opcode = 0x3B
	OpI64Store8         Opcode = 0x3C
	OpI64Store16        Opcode = 0x3D
	OpI64Store32        Opcode = 0x3E
	OpMemorySize        Opcode = 0x3F
	OpMemoryGrow        Opcode = 0x40
	OpI32Const          Opcode = 0x41
	OpI64Const          Opcode = 0x42
	OpF32Const          Opcode = 0x43
	OpF64Const          Opcode = 0x44
	OpI32Eqz            Opcode = 0x45
	OpI32Eq             Opcode = 0x46
	OpI32Ne             Opcode = 0x47
	OpI32LtS            Opcode = 0x48
	OpI32LtU            Opcode = 0x49
	OpI32GtS            Opcode = 0x4A
	OpI32GtU            Opcode = 0x4B
	OpI32LeS            Opcode = 0x4C
	OpI32LeU            Opcode = 0x4D
	OpI32GeS            Opcode = 0x4E
	OpI32GeU            Opcode = 0x4F
	OpI64Eqz            Opcode = 0x50
	OpI64Eq             Opcode = 0x51
	OpI64Ne             Opcode = 0x52
	OpI64LtS            Opcode = 0x53
	OpI64LtU            Opcode = 0x54
	OpI64GtS            Opcode = 0x55
	OpI64GtU            Opcode = 0x56
	OpI64LeS            Opcode = 0x57
	OpI64LeU            Opcode = 0x58
	OpI64GeS            Opcode = 0x59
	OpI64GeU            Opcode = 0x5A
	OpF32Eq             Opcode = 0x5B
	OpF32Ne             Opcode = 0x5C
	OpF32Lt             Opcode = 0x5D
	OpF32Gt             Opcode = 0x5E
	OpF32Le             Opcode = 0x5F
	OpF32Ge             Opcode = 0x60
	OpF64Eq             Opcode = 0x61
	OpF64Ne             Opcode = 0x62
	OpF64Lt             Opcode = 0x63
	OpF64Gt             Opcode = 0x64
	OpF64Le             Opcode = 0x65
	OpF64Ge             Opcode = 0x66
	OpI32Clz            Opcode = 0x67
	OpI32Ctz            Opcode = 0x68
	OpI32Popcnt         Opcode = 0x69
	OpI32Add            Opcode = 0x6A
	OpI32Sub            Opcode = 0x6B
	OpI32Mul            Opcode = 0x6C
	OpI32DivS           Opcode = 0x6D
	OpI32DivU           Opcode = 0x6E
	OpI32RemS           Opcode = 0x6F
	OpI32RemU           Opcode = 0x70
	OpI32And            Opcode = 0x71
	OpI32Or             Opcode = 0x72
	OpI32Xor            Opcode = 0x73
	OpI32Shl            Opcode = 0x74
	OpI32ShrS           Opcode = 0x75
	OpI32ShrU           Opcode = 0x76
	OpI32Rotl           Opcode = 0x77
	OpI32Rotr           Opcode = 0x78
	OpI64Clz            Opcode = 0x79
	OpI64Ctz            Opcode = 0x7A
	OpI64Popcnt         Opcode = 0x7B
	OpI64Add            Opcode = 0x7C
	OpI64Sub            Opcode = 0x7D
	OpI64Mul            Opcode = 0x7E
	OpI64DivS           Opcode = 0x7F
	OpI64DivU           Opcode = 0x80
	OpI64RemS           Opcode = 0x81
	OpI64RemU           Opcode = 0x82
	OpI64And            Opcode = 0x83
	OpI64Or             Opcode = 0x84
	OpI64Xor            Opcode = 0x85
	OpI64Shl            Opcode = 0x86
	OpI64ShrS           Opcode = 0x87
	OpI64ShrU           Opcode = 0x88
	OpI64Rotl           Opcode = 0x89
	OpI64Rotr           Opcode = 0x8A
	OpF32Abs            Opcode = 0x8B
	OpF32Neg            Opcode = 0x8C
	OpF32Ceil           Opcode = 0x8D
	OpF32Floor          Opcode = 0x8E
	OpF32Trunc          Opcode = 0x8F
	OpF32Nearest        Opcode = 0x90
	OpF32Sqrt           Opcode = 0x91
	OpF32Add            Opcode = 0x92
	OpF32Sub            Opcode = 0x93
	OpF32Mul            Opcode = 0x94
	OpF32Div            Opcode = 0x95
	OpF32Min            Opcode = 0x96
	OpF32Max            Opcode = 0x97
	OpF32Copysign       Opcode = 0x98
	OpF64Abs            Opcode = 0x99
	OpF64Neg            Opcode = 0x9A
	OpF64Ceil           Opcode = 0x9B
	OpF64Floor          Opcode = 0x9C
	OpF64Trunc          Opcode = 0x9D
	OpF64Nearest        Opcode = 0x9E
	OpF64Sqrt           Opcode = 0x9F
	OpF64Add            Opcode = 0xA0
	OpF64Sub            Opcode = 0xA1
	OpF64Mul            Opcode = 0xA2
	OpF64Div            Opcode = 0xA3
	OpF64Min            Opcode = 0xA4
	OpF64Max            Opcode = 0xA5
	OpF64Copysign       Opcode = 0xA6
	OpI32WrapI64        Opcode = 0xA7
	OpI32TruncF32S      Opcode = 0xA8
	OpI32TruncF32U      Opcode = 0xA9
	OpI32TruncF64S      Opcode = 0xAA
	OpI32TruncF64U      Opcode = 0xAB
	OpI64ExtendI32S     Opcode = 0xAC
	OpI64ExtendI32U     Opcode = 0xAD
	OpI64TruncF32S      Opcode = 0xAE
	OpI64TruncF32U      Opcode = 0xAF
	OpI64TruncF64S      Opcode = 0xB0
	OpI64TruncF64U      Opcode = 0xB1
	OpF32ConvertI32S    Opcode = 0xB2
	OpF32ConvertI32U    Opcode = 0xB3
	OpF32ConvertI64S    Opcode = 0xB4
	OpF32ConvertI64U    Opcode = 0xB5
	OpF32DemoteF64      Opcode = 0xB6
	OpF64ConvertI32S    Opcode = 0xB7
	OpF64ConvertI32U    Opcode = 0xB8
	OpF64ConvertI64S    Opcode = 0xB9
	OpF64ConvertI64U    Opcode = 0xBA
	OpF64PromoteF32     Opcode = 0xBB
	OpI32ReinterpretF32 Opcode = 0xBC
	OpI64ReinterpretF64 Opcode = 0xBD
	OpF32ReinterpretI32 Opcode = 0xBE
	OpF64ReinterpretI64 Opcode = 0xBF
	OpI32Extend8S       Opcode = 0xC0
	OpI32Extend16S      Opcode = 0xC1
	OpI64Extend8S       Opcode = 0xC2
	OpI64Extend16S      Opcode = 0xC3
	OpI64Extend32S      Opcode = 0xC4
	OpRefNull           Opcode = 0xD0
	OpRefIsNull         Opcode = 0xD1
	OpRefFunc           Opcode = 0xD2
)

// 0xFC-prefixed opcodes.
const (
	OpI32TruncSatF32S = miscBase | 0x00
	OpI32TruncSatF32U = miscBase | 0x01
	OpI32TruncSatF64S = miscBase | 0x02
	OpI32TruncSatF64U = miscBase | 0x03
	OpI64TruncSatF32S = miscBase | 0x04
	OpI64TruncSatF32U = miscBase | 0x05
	OpI64TruncSatF64S = miscBase | 0x06
	OpI64TruncSatF64U = miscBase | 0x07
	OpMemoryInit      = miscBase | 0x08
	OpDataDrop        = miscBase | 0x09
	OpMemoryCopy      = miscBase | 0x0A
	OpMemoryFill      = miscBase | 0x0B
	OpTableInit       = miscBase | 0x0C
	OpElemDrop        = miscBase | 0x0D
	OpTableCopy       = miscBase | 0x0E
	OpTableGrow       = miscBase | 0x0F
	OpTableSize       = miscBase | 0x10
	OpTableFill       = miscBase | 0x11
)

// SIMD sub-opcodes that carry immediates.
const (
	simdLoadLast     = 0x0A // v128.load .. v128.load64_splat
	simdStore        = 0x0B
	simdConst        = 0x0C
	simdShuffle      = 0x0D
	simdExtractFirst = 0x15
	simdReplaceLast  = 0x22
	simdLaneMemFirst = 0x54
	simdLaneMemLast  = 0x5B
	simdLoad32Zero   = 0x5C
	simdLoad64Zero   = 0x5D
)

var opcodeLabels = map[Opcode]string{
	OpUnreachable:       "unreachable",
	OpNop:               "nop",
	OpBlock:             "block",
	OpLoop:              "loop",
	OpIf:                "if",
	OpElse:              "else",
	OpEnd:               "end",
	OpBr:                "br",
	OpBrIf:              "br_if",
	OpBrTable:           "br_table",
	OpReturn:            "return",
	OpCall:              "call",
	OpCallIndirect:      "call_indirect",
	OpDrop:              "drop",
	OpSelect:            "select",
	OpSelectType:        "select_t",
	OpLocalGet:          "local.get",
	OpLocalSet:          "local.set",
	OpLocalTee:          "local.tee",
	OpGlobalGet:         "global.get",
	OpGlobalSet:         "global.set",
	OpTableGet:          "table.get",
	OpTableSet:          "table.set",
	OpI32Load:           "i32.load",
	OpI64Load:           "i64.load",
	OpF32Load:           "f32.load",
	OpF64Load:           "f64.load",
	OpI32Load8S:         "i32.load8_s",
	OpI32Load8U:         "i32.load8_u",
	OpI32Load16S:        "i32.load16_s",
	OpI32Load16U:        "i32.load16_u",
	OpI64Load8S:         "i64.load8_s",
	OpI64Load8U:         "i64.load8_u",
	OpI64Load16S:        "i64.load16_s",
	OpI64Load16U:        "i64.load16_u",
	OpI64Load32S:        "i64.load32_s",
	OpI64Load32U:        "i64.load32_u",
	OpI32Store:          "i32.store",
	OpI64Store:          "i64.store",
	OpF32Store:          "f32.store",
	OpF64Store:          "f64.store",
	OpI32Store8:         "i32.store8",
	OpI32Store16:        "i32.store16",
	OpI64Store8:         "i64.store8",
	OpI64Store16:        "i64.store16",
	OpI64Store32:        "i64.store32",
	OpMemorySize:        "memory.size",
	OpMemoryGrow:        "memory.grow",
	OpI32Const:          "i32.const",
	OpI64Const:          "i64.const",
	OpF32Const:          "f32.const",
	OpF64Const:          "f64.const",
	OpI32Eqz:            "i32.eqz",
	OpI32Eq:             "i32.eq",
	OpI32Ne:             "i32.ne",
	OpI32LtS:            "i32.lt_s",
	OpI32LtU:            "i32.lt_u",
	OpI32GtS:            "i32.gt_s",
	OpI32GtU:            "i32.gt_u",
	OpI32LeS:            "i32.le_s",
	OpI32LeU:            "i32.le_u",
	OpI32GeS:            "i32.ge_s",
	OpI32GeU:            "i32.ge_u",
	OpI64Eqz:            "i64.eqz",
	OpI64Eq:             "i64.eq",
	OpI64Ne:             "i64.ne",
	OpI64LtS:            "i64.lt_s",
	OpI64LtU:            "i64.lt_u",
	OpI64GtS:            "i64.gt_s",
	OpI64GtU:            "i64.gt_u",
	OpI64LeS:            "i64.le_s",
	OpI64LeU:            "i64.le_u",
	OpI64GeS:            "i64.ge_s",
	OpI64GeU:            "i64.ge_u",
	OpF32Eq:             "f32.eq",
	OpF32Ne:             "f32.ne",
	OpF32Lt:             "f32.lt",
	OpF32Gt:             "f32.gt",
	OpF32Le:             "f32.le",
	OpF32Ge:             "f32.ge",
	OpF64Eq:             "f64.eq",
	OpF64Ne:             "f64.ne",
	OpF64Lt:             "f64.lt",
	OpF64Gt:             "f64.gt",
	OpF64Le:             "f64.le",
	OpF64Ge:             "f64.ge",
	OpI32Clz:            "i32.clz",
	OpI32Ctz:            "i32.ctz",
	OpI32Popcnt:         "i32.popcnt",
	OpI32Add:            "i32.add",
	OpI32Sub:            "i32.sub",
	OpI32Mul:            "i32.mul",
	OpI32DivS:           "i32.div_s",
	OpI32DivU:           "i32.div_u",
	OpI32RemS:           "i32.rem_s",
	OpI32RemU:           "i32.rem_u",
	OpI32And:            "i32.and",
	OpI32Or:             "i32.or",
	OpI32Xor:            "i32.xor",
	OpI32Shl:            "i32.shl",
	OpI32ShrS:           "i32.shr_s",
	OpI32ShrU:           "i32.shr_u",
	OpI32Rotl:           "i32.rotl",
	OpI32Rotr:           "i32.rotr",
	OpI64Clz:            "i64.clz",
	OpI64Ctz:            "i64.ctz",
	OpI64Popcnt:         "i64.popcnt",
	OpI64Add:            "i64.add",
	OpI64Sub:            "i64.sub",
	OpI64Mul:            "i64.mul",
	OpI64DivS:           "i64.div_s",
	OpI64DivU:           "i64.div_u",
	OpI64RemS:           "i64.rem_s",
	OpI64RemU:           "i64.rem_u",
	OpI64And:            "i64.and",
	OpI64Or:             "i64.or",
	OpI64Xor:            "i64.xor",
	OpI64Shl:            "i64.shl",
	OpI64ShrS:           "i64.shr_s",
	OpI64ShrU:           "i64.shr_u",
	OpI64Rotl:           "i64.rotl",
	OpI64Rotr:           "i64.rotr",
	OpF32Abs:            "f32.abs",
	OpF32Neg:            "f32.neg",
	OpF32Ceil:           "f32.ceil",
	OpF32Floor:          "f32.floor",
	OpF32Trunc:          "f32.trunc",
	OpF32Nearest:        "f32.nearest",
	OpF32Sqrt:           "f32.sqrt",
	OpF32Add:            "f32.add",
	OpF32Sub:            "f32.sub",
	OpF32Mul:            "f32.mul",
	OpF32Div:            "f32.div",
	OpF32Min:            "f32.min",
	OpF32Max:            "f32.max",
	OpF32Copysign:       "f32.copysign",
	OpF64Abs:            "f64.abs",
	OpF64Neg:            "f64.neg",
	OpF64Ceil:           "f64.ceil",
	OpF64Floor:          "f64.floor",
	OpF64Trunc:          "f64.trunc",
	OpF64Nearest:        "f64.nearest",
	OpF64Sqrt:           "f64.sqrt",
	OpF64Add:            "f64.add",
	OpF64Sub:            "f64.sub",
	OpF64Mul:            "f64.mul",
	OpF64Div:            "f64.div",
	OpF64Min:            "f64.min",
	OpF64Max:            "f64.max",
	OpF64Copysign:       "f64.copysign",
	OpI32WrapI64:        "i32.wrap_i64",
	OpI32TruncF32S:      "i32.trunc_f32_s",
	OpI32TruncF32U:      "i32.trunc_f32_u",
	OpI32TruncF64S:      "i32.trunc_f64_s",
	OpI32TruncF64U:      "i32.trunc_f64_u",
	OpI64ExtendI32S:     "i64.extend_i32_s",
	OpI64ExtendI32U:     "i64.extend_i32_u",
	OpI64TruncF32S:      "i64.trunc_f32_s",
	OpI64TruncF32U:      "i64.trunc_f32_u",
	OpI64TruncF64S:      "i64.trunc_f64_s",
	OpI64TruncF64U:      "i64.trunc_f64_u",
	OpF32ConvertI32S:    "f32.convert_i32_s",
	OpF32ConvertI32U:    "f32.convert_i32_u",
	OpF32ConvertI64S:    "f32.convert_i64_s",
	OpF32ConvertI64U:    "f32.convert_i64_u",
	OpF32DemoteF64:      "f32.demote_f64",
	OpF64ConvertI32S:    "f64.convert_i32_s",
	OpF64ConvertI32U:    "f64.convert_i32_u",
	OpF64ConvertI64S:    "f64.convert_i64_s",
	OpF64ConvertI64U:    "f64.convert_i64_u",
	OpF64PromoteF32:     "f64.promote_f32",
	OpI32ReinterpretF32: "i32.reinterpret_f32",
	OpI64ReinterpretF64: "i64.reinterpret_f64",
	OpF32ReinterpretI32: "f32.reinterpret_i32",
	OpF64ReinterpretI64: "f64.reinterpret_i64",
	OpI32Extend8S:       "i32.extend8_s",
	OpI32Extend16S:      "i32.extend16_s",
	OpI64Extend8S:       "i64.extend8_s",
	OpI64Extend16S:      "i64.extend16_s",
	OpI64Extend32S:      "i64.extend32_s",
	OpRefNull:           "ref.null",
	OpRefIsNull:         "ref.is_null",
	OpRefFunc:           "ref.func",

	OpI32TruncSatF32S: "i32.trunc_sat_f32_s",
	OpI32TruncSatF32U: "i32.trunc_sat_f32_u",
	OpI32TruncSatF64S: "i32.trunc_sat_f64_s",
	OpI32TruncSatF64U: "i32.trunc_sat_f64_u",
	OpI64TruncSatF32S: "i64.trunc_sat_f32_s",
	OpI64TruncSatF32U: "i64.trunc_sat_f32_u",
	OpI64TruncSatF64S: "i64.trunc_sat_f64_s",
	OpI64TruncSatF64U: "i64.trunc_sat_f64_u",
	OpMemoryInit:      "memory.init",
	OpDataDrop:        "data.drop",
	OpMemoryCopy:      "memory.copy",
	OpMemoryFill:      "memory.fill",
	OpTableInit:       "table.init",
	OpElemDrop:        "elem.drop",
	OpTableCopy:       "table.copy",
	OpTableGrow:       "table.grow",
	OpTableSize:       "table.size",
	OpTableFill:       "table.fill",

	simdBase | 0x00: "v128.load",
	simdBase | 0x01: "v128.load8x8_s",
	simdBase | 0x02: "v128.load8x8_u",
	simdBase | 0x03: "v128.load16x4_s",
	simdBase | 0x04: "v128.load16x4_u",
	simdBase | 0x05: "v128.load32x2_s",
	simdBase | 0x06: "v128.load32x2_u",
	simdBase | 0x07: "v128.load8_splat",
	simdBase | 0x08: "v128.load16_splat",
	simdBase | 0x09: "v128.load32_splat",
	simdBase | 0x0A: "v128.load64_splat",
	simdBase | 0x0B: "v128.store",
	simdBase | 0x0C: "v128.const",
	simdBase | 0x0D: "i8x16.shuffle",
	simdBase | 0x0E: "i8x16.swizzle",
	simdBase | 0x0F: "i8x16.splat",
	simdBase | 0x10: "i16x8.splat",
	simdBase | 0x11: "i32x4.splat",
	simdBase | 0x12: "i64x2.splat",
	simdBase | 0x13: "f32x4.splat",
	simdBase | 0x14: "f64x2.splat",
	simdBase | 0x15: "i8x16.extract_lane_s",
	simdBase | 0x16: "i8x16.extract_lane_u",
	simdBase | 0x17: "i8x16.replace_lane",
	simdBase | 0x18: "i16x8.extract_lane_s",
	simdBase | 0x19: "i16x8.extract_lane_u",
	simdBase | 0x1A: "i16x8.replace_lane",
	simdBase | 0x1B: "i32x4.extract_lane",
	simdBase | 0x1C: "i32x4.replace_lane",
	simdBase | 0x1D: "i64x2.extract_lane",
	simdBase | 0x1E: "i64x2.replace_lane",
	simdBase | 0x1F: "f32x4.extract_lane",
	simdBase | 0x20: "f32x4.replace_lane",
	simdBase | 0x21: "f64x2.extract_lane",
	simdBase | 0x22: "f64x2.replace_lane",
	simdBase | 0x23: "i8x16.eq",
	simdBase | 0x24: "i8x16.ne",
	simdBase | 0x25: "i8x16.lt_s",
	simdBase | 0x26: "i8x16.lt_u",
	simdBase | 0x27: "i8x16.gt_s",
	simdBase | 0x28: "i8x16.gt_u",
	simdBase | 0x29: "i8x16.le_s",
	simdBase | 0x2A: "i8x16.le_u",
	simdBase | 0x2B: "i8x16.ge_s",
	simdBase | 0x2C: "i8x16.ge_u",
	simdBase | 0x2D: "i16x8.eq",
	simdBase | 0x2E: "i16x8.ne",
	simdBase | 0x2F: "i16x8.lt_s",
	simdBase | 0x30: "i16x8.lt_u",
	simdBase | 0x31: "i16x8.gt_s",
	simdBase | 0x32: "i16x8.gt_u",
	simdBase | 0x33: "i16x8.le_s",
	simdBase | 0x34: "i16x8.le_u",
	simdBase | 0x35: "i16x8.ge_s",
	simdBase | 0x36: "i16x8.ge_u",
	simdBase | 0x37: "i32x4.eq",
	simdBase | 0x38: "i32x4.ne",
	simdBase | 0x39: "i32x4.lt_s",
	simdBase | 0x3A: "i32x4.lt_u",
	simdBase | 0x3B: "i32x4.gt_s",
	simdBase | 0x3C: "i32x4.gt_u",
	simdBase | 0x3D: "i32x4.le_s",
	simdBase | 0x3E: "i32x4.le_u",
	simdBase | 0x3F: "i32x4.ge_s",
	simdBase | 0x40: "i32x4.ge_u",
	simdBase | 0x41: "f32x4.eq",
	simdBase | 0x42: "f32x4.ne",
	simdBase | 0x43: "f32x4.lt",
	simdBase | 0x44: "f32x4.gt",
	simdBase | 0x45: "f32x4.le",
	simdBase | 0x46: "f32x4.ge",
	simdBase | 0x47: "f64x2.eq",
	simdBase | 0x48: "f64x2.ne",
	simdBase | 0x49: "f64x2.lt",
	simdBase | 0x4A: "f64x2.gt",
	simdBase | 0x4B: "f64x2.le",
	simdBase | 0x4C: "f64x2.ge",
	simdBase | 0x4D: "v128.not",
	simdBase | 0x4E: "v128.and",
	simdBase | 0x4F: "v128.andnot",
	simdBase | 0x50: "v128.or",
	simdBase | 0x51: "v128.xor",
	simdBase | 0x52: "v128.bitselect",
	simdBase | 0x53: "v128.any_true",
	simdBase | 0x54: "v128.load8_lane",
	simdBase | 0x55: "v128.load16_lane",
	simdBase | 0x56: "v128.load32_lane",
	simdBase | 0x57: "v128.load64_lane",
	simdBase | 0x58: "v128.store8_lane",
	simdBase | 0x59: "v128.store16_lane",
	simdBase | 0x5A: "v128.store32_lane",
	simdBase | 0x5B: "v128.store64_lane",
	simdBase | 0x5C: "v128.load32_zero",
	simdBase | 0x5D: "v128.load64_zero",
	simdBase | 0x5E: "f32x4.demote_f64x2_zero",
	simdBase | 0x5F: "f64x2.promote_low_f32x4",
	simdBase | 0x60: "i8x16.abs",
	simdBase | 0x61: "i8x16.neg",
	simdBase | 0x62: "i8x16.popcnt",
	simdBase | 0x63: "i8x16.all_true",
	simdBase | 0x64: "i8x16.bitmask",
	simdBase | 0x65: "i8x16.narrow_i16x8_s",
	simdBase | 0x66: "i8x16.narrow_i16x8_u",
	simdBase | 0x67: "f32x4.ceil",
	simdBase | 0x68: "f32x4.floor",
	simdBase | 0x69: "f32x4.trunc",
	simdBase | 0x6A: "f32x4.nearest",
	simdBase | 0x6B: "i8x16.shl",
	simdBase | 0x6C: "i8x16.shr_s",
	simdBase | 0x6D: "i8x16.shr_u",
	simdBase | 0x6E: "i8x16.add",
	simdBase | 0x6F: "i8x16.add_sat_s",
	simdBase | 0x70: "i8x16.add_sat_u",
	simdBase | 0x71: "i8x16.sub",
	simdBase | 0x72: "i8x16.sub_sat_s",
	simdBase | 0x73: "i8x16.sub_sat_u",
	simdBase | 0x74: "f64x2.ceil",
	simdBase | 0x75: "f64x2.floor",
	simdBase | 0x76: "i8x16.min_s",
	simdBase | 0x77: "i8x16.min_u",
	simdBase | 0x78: "i8x16.max_s",
	simdBase | 0x79: "i8x16.max_u",
	simdBase | 0x7A: "f64x2.trunc",
	simdBase | 0x7B: "i8x16.avgr_u",
	simdBase | 0x7C: "i16x8.extadd_pairwise_i8x16_s",
	simdBase | 0x7D: "i16x8.extadd_pairwise_i8x16_u",
	simdBase | 0x7E: "i32x4.extadd_pairwise_i16x8_s",
	simdBase | 0x7F: "i32x4.extadd_pairwise_i16x8_u",
	simdBase | 0x80: "i16x8.abs",
	simdBase | 0x81: "i16x8.neg",
	simdBase | 0x82: "i16x8.q15mulr_sat_s",
	simdBase | 0x83: "i16x8.all_true",
	simdBase | 0x84: "i16x8.bitmask",
	simdBase | 0x85: "i16x8.narrow_i32x4_s",
	simdBase | 0x86: "i16x8.narrow_i32x4_u",
	simdBase | 0x87: "i16x8.extend_low_i8x16_s",
	simdBase | 0x88: "i16x8.extend_high_i8x16_s",
	simdBase | 0x89: "i16x8.extend_low_i8x16_u",
	simdBase | 0x8A: "i16x8.extend_high_i8x16_u",
	simdBase | 0x8B: "i16x8.shl",
	simdBase | 0x8C: "i16x8.shr_s",
	simdBase | 0x8D: "i16x8.shr_u",
	simdBase | 0x8E: "i16x8.add",
	simdBase | 0x8F: "i16x8.add_sat_s",
	simdBase | 0x90: "i16x8.add_sat_u",
	simdBase | 0x91: "i16x8.sub",
	simdBase | 0x92: "i16x8.sub_sat_s",
	simdBase | 0x93: "i16x8.sub_sat_u",
	simdBase | 0x94: "f64x2.nearest",
	simdBase | 0x95: "i16x8.mul",
	simdBase | 0x96: "i16x8.min_s",
	simdBase | 0x97: "i16x8.min_u",
	simdBase | 0x98: "i16x8.max_s",
	simdBase | 0x99: "i16x8.max_u",
	simdBase | 0x9B: "i16x8.avgr_u",
	simdBase | 0x9C: "i16x8.extmul_low_i8x16_s",
	simdBase | 0x9D: "i16x8.extmul_high_i8x16_s",
	simdBase | 0x9E: "i16x8.extmul_low_i8x16_u",
	simdBase | 0x9F: "i16x8.extmul_high_i8x16_u",
	simdBase | 0xA0: "i32x4.abs",
	simdBase | 0xA1: "i32x4.neg",
	simdBase | 0xA3: "i32x4.all_true",
	simdBase | 0xA4: "i32x4.bitmask",
	simdBase | 0xA7: "i32x4.extend_low_i16x8_s",
	simdBase | 0xA8: "i32x4.extend_high_i16x8_s",
	simdBase | 0xA9: "i32x4.extend_low_i16x8_u",
	simdBase | 0xAA: "i32x4.extend_high_i16x8_u",
	simdBase | 0xAB: "i32x4.shl",
	simdBase | 0xAC: "i32x4.shr_s",
	simdBase | 0xAD: "i32x4.shr_u",
	simdBase | 0xAE: "i32x4.add",
	simdBase | 0xB1: "i32x4.sub",
	simdBase | 0xB5: "i32x4.mul",
	simdBase | 0xB6: "i32x4.min_s",
	simdBase | 0xB7: "i32x4.min_u",
	simdBase | 0xB8: "i32x4.max_s",
	simdBase | 0xB9: "i32x4.max_u",
	simdBase | 0xBA: "i32x4.dot_i16x8_s",
	simdBase | 0xBC: "i32x4.extmul_low_i16x8_s",
	simdBase | 0xBD: "i32x4.extmul_high_i16x8_s",
	simdBase | 0xBE: "i32x4.extmul_low_i16x8_u",
	simdBase | 0xBF: "i32x4.extmul_high_i16x8_u",
	simdBase | 0xC0: "i64x2.abs",
	simdBase | 0xC1: "i64x2.neg",
	simdBase | 0xC3: "i64x2.all_true",
	simdBase | 0xC4: "i64x2.bitmask",
	simdBase | 0xC7: "i64x2.extend_low_i32x4_s",
	simdBase | 0xC8: "i64x2.extend_high_i32x4_s",
	simdBase | 0xC9: "i64x2.extend_low_i32x4_u",
	simdBase | 0xCA: "i64x2.extend_high_i32x4_u",
	simdBase | 0xCB: "i64x2.shl",
	simdBase | 0xCC: "i64x2.shr_s",
	simdBase | 0xCD: "i64x2.shr_u",
	simdBase | 0xCE: "i64x2.add",
	simdBase | 0xD1: "i64x2.sub",
	simdBase | 0xD5: "i64x2.mul",
	simdBase | 0xD6: "i64x2.eq",
	simdBase | 0xD7: "i64x2.ne",
	simdBase | 0xD8: "i64x2.lt_s",
	simdBase | 0xD9: "i64x2.gt_s",
	simdBase | 0xDA: "i64x2.le_s",
	simdBase | 0xDB: "i64x2.ge_s",
	simdBase | 0xDC: "i64x2.extmul_low_i32x4_s",
	simdBase | 0xDD: "i64x2.extmul_high_i32x4_s",
	simdBase | 0xDE: "i64x2.extmul_low_i32x4_u",
	simdBase | 0xDF: "i64x2.extmul_high_i32x4_u",
	simdBase | 0xE0: "f32x4.abs",
	simdBase | 0xE1: "f32x4.neg",
	simdBase | 0xE3: "f32x4.sqrt",
	simdBase | 0xE4: "f32x4.add",
	simdBase | 0xE5: "f32x4.sub",
	simdBase | 0xE6: "f32x4.mul",
	simdBase | 0xE7: "f32x4.div",
	simdBase | 0xE8: "f32x4.min",
	simdBase | 0xE9: "f32x4.max",
	simdBase | 0xEA: "f32x4.pmin",
	simdBase | 0xEB: "f32x4.pmax",
	simdBase | 0xEC: "f64x2.abs",
	simdBase | 0xED: "f64x2.neg",
	simdBase | 0xEF: "f64x2.sqrt",
	simdBase | 0xF0: "f64x2.add",
	simdBase | 0xF1: "f64x2.sub",
	simdBase | 0xF2: "f64x2.mul",
	simdBase | 0xF3: "f64x2.div",
	simdBase | 0xF4: "f64x2.min",
	simdBase | 0xF5: "f64x2.max",
	simdBase | 0xF6: "f64x2.pmin",
	simdBase | 0xF7: "f64x2.pmax",
	simdBase | 0xF8: "i32x4.trunc_sat_f32x4_s",
	simdBase | 0xF9: "i32x4.trunc_sat_f32x4_u",
	simdBase | 0xFA: "f32x4.convert_i32x4_s",
	simdBase | 0xFB: "f32x4.convert_i32x4_u",
	simdBase | 0xFC: "i32x4.trunc_sat_f64x2_s_zero",
	simdBase | 0xFD: "i32x4.trunc_sat_f64x2_u_zero",
	simdBase | 0xFE: "f64x2.convert_low_i32x4_s",
	simdBase | 0xFF: "f64x2.convert_low_i32x4_u",
}
