package wasm

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/wasm-probe/internal/binary"
)

// Instruction represents a decoded WebAssembly instruction.
// Offset and Size locate its encoding within the function body's code bytes.
type Instruction struct {
	Imm    any
	Op     Opcode
	Offset int
	Size   int
}

// BlockImm holds the block type for block, loop and if.
type BlockImm struct {
	Type int64 // -64=void, negative=value type, >=0=type index
}

// IndexImm holds a single index immediate (label, function, local, global,
// table, memory, data or element index depending on the opcode).
type IndexImm struct {
	Index uint32
}

// PairImm holds two index immediates (memory.init, memory.copy, table.init,
// table.copy).
type PairImm struct {
	First  uint32
	Second uint32
}

// BrTableImm holds the label table for br_table.
type BrTableImm struct {
	Labels  []uint32
	Default uint32
}

// CallIndirectImm holds type and table indices for call_indirect.
type CallIndirectImm struct {
	TypeIdx  uint32
	TableIdx uint32
}

// MemArg holds memory access parameters for load and store instructions.
type MemArg struct {
	Offset uint64
	Align  uint32 // log2 of the alignment
	MemIdx uint32
}

// I32Imm holds the constant for i32.const.
type I32Imm struct {
	Value int32
}

// I64Imm holds the constant for i64.const.
type I64Imm struct {
	Value int64
}

// F32Imm holds the raw bits for f32.const.
type F32Imm struct {
	Bits uint32
}

// F64Imm holds the raw bits for f64.const.
type F64Imm struct {
	Bits uint64
}

// SelectTypeImm holds the result types for typed select.
type SelectTypeImm struct {
	Types []ValType
}

// RefNullImm holds the heap type for ref.null.
type RefNullImm struct {
	HeapType int64
}

// V128Imm holds 16 raw bytes (v128.const value or i8x16.shuffle lanes).
type V128Imm struct {
	Bytes [16]byte
}

// LaneImm holds a lane index for extract/replace lane.
type LaneImm struct {
	Lane byte
}

// MemLaneImm holds a memory argument plus lane index for lane loads/stores.
type MemLaneImm struct {
	MemArg MemArg
	Lane   byte
}

// ErrUnknownOpcode is returned for opcodes outside the supported set.
var ErrUnknownOpcode = errors.New("unknown opcode")

// InstructionReader lazily decodes a function body's instruction stream.
// The stream is complete once the `end` closing the function is returned;
// Next then reports io.EOF.
type InstructionReader struct {
	r     *binary.Reader
	base  int
	depth int
	done  bool
}

// NewInstructionReader reads instructions from code. base is the absolute
// offset of code within the module and is used for error positions only.
func NewInstructionReader(code []byte, base int) *InstructionReader {
	return &InstructionReader{r: binary.NewReader(code), base: base}
}

// Next decodes the next instruction.
func (ir *InstructionReader) Next() (Instruction, error) {
	if ir.done {
		if !ir.r.EOF() {
			return Instruction{}, ir.r.WrapError("code", ir.base, errors.New("trailing bytes after function end"))
		}
		return Instruction{}, io.EOF
	}
	if ir.r.EOF() {
		return Instruction{}, ir.r.WrapError("code", ir.base, errors.New("function body missing end"))
	}

	start := ir.r.Position()
	instr, err := ir.decode()
	if err != nil {
		return Instruction{}, ir.r.WrapError("code", ir.base, err)
	}
	instr.Offset = start
	instr.Size = ir.r.Position() - start

	switch instr.Op {
	case OpBlock, OpLoop, OpIf:
		ir.depth++
	case OpEnd:
		if ir.depth == 0 {
			ir.done = true
		} else {
			ir.depth--
		}
	}
	return instr, nil
}

// DecodeInstructions decodes a complete function body expression.
func DecodeInstructions(code []byte) ([]Instruction, error) {
	ir := NewInstructionReader(code, 0)
	instrs := make([]Instruction, 0, len(code)/2)
	for {
		instr, err := ir.Next()
		if errors.Is(err, io.EOF) {
			return instrs, nil
		}
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, instr)
	}
}

func (ir *InstructionReader) decode() (Instruction, error) {
	r := ir.r
	b, err := r.ReadByte()
	if err != nil {
		return Instruction{}, err
	}

	op := Opcode(b)
	if b == PrefixMisc || b == PrefixSIMD {
		sub, err := r.ReadU32()
		if err != nil {
			return Instruction{}, err
		}
		op = Prefixed(b, sub)
	}
	if !op.Known() {
		if op.Prefix() != 0 {
			return Instruction{}, fmt.Errorf("%w: 0x%02x 0x%x", ErrUnknownOpcode, op.Prefix(), op.Sub())
		}
		return Instruction{}, fmt.Errorf("%w: 0x%02x", ErrUnknownOpcode, b)
	}

	instr := Instruction{Op: op}
	switch op.Prefix() {
	case PrefixMisc:
		instr.Imm, err = readMiscImmediate(r, op)
	case PrefixSIMD:
		instr.Imm, err = readSIMDImmediate(r, op.Sub())
	default:
		instr.Imm, err = readImmediate(r, op)
	}
	if err != nil {
		return Instruction{}, err
	}
	return instr, nil
}

func readIndex(r *binary.Reader) (any, error) {
	idx, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return IndexImm{Index: idx}, nil
}

func readPair(r *binary.Reader) (any, error) {
	first, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	second, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return PairImm{First: first, Second: second}, nil
}

func readImmediate(r *binary.Reader, op Opcode) (any, error) {
	switch op {
	case OpBlock, OpLoop, OpIf:
		bt, err := r.ReadS33()
		if err != nil {
			return nil, err
		}
		return BlockImm{Type: bt}, nil

	case OpBr, OpBrIf, OpCall, OpLocalGet, OpLocalSet, OpLocalTee,
		OpGlobalGet, OpGlobalSet, OpTableGet, OpTableSet, OpRefFunc,
		OpMemorySize, OpMemoryGrow:
		return readIndex(r)

	case OpBrTable:
		count, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		if int(count) > r.Len() {
			return nil, fmt.Errorf("br_table label count %d exceeds body", count)
		}
		labels := make([]uint32, count)
		for i := range labels {
			labels[i], err = r.ReadU32()
			if err != nil {
				return nil, err
			}
		}
		def, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		return BrTableImm{Labels: labels, Default: def}, nil

	case OpCallIndirect:
		typeIdx, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		tableIdx, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		return CallIndirectImm{TypeIdx: typeIdx, TableIdx: tableIdx}, nil

	case OpSelectType:
		count, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		if int(count) > r.Len() {
			return nil, fmt.Errorf("select type count %d exceeds body", count)
		}
		types := make([]ValType, count)
		for i := range types {
			t, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			if ValType(t) == ValRef || ValType(t) == ValRefNull {
				if _, err := r.ReadS33(); err != nil {
					return nil, err
				}
			}
			types[i] = ValType(t)
		}
		return SelectTypeImm{Types: types}, nil

	case OpI32Const:
		v, err := r.ReadS32()
		if err != nil {
			return nil, err
		}
		return I32Imm{Value: v}, nil

	case OpI64Const:
		v, err := r.ReadS64()
		if err != nil {
			return nil, err
		}
		return I64Imm{Value: v}, nil

	case OpF32Const:
		v, err := r.ReadU32LE()
		if err != nil {
			return nil, err
		}
		return F32Imm{Bits: v}, nil

	case OpF64Const:
		v, err := r.ReadU64LE()
		if err != nil {
			return nil, err
		}
		return F64Imm{Bits: v}, nil

	case OpRefNull:
		ht, err := r.ReadS33()
		if err != nil {
			return nil, err
		}
		return RefNullImm{HeapType: ht}, nil
	}

	if op >= OpI32Load && op <= OpI64Store32 {
		return readMemArg(r)
	}
	// Everything else in the table carries no immediates.
	return nil, nil
}

func readMiscImmediate(r *binary.Reader, op Opcode) (any, error) {
	switch op {
	case OpMemoryInit, OpMemoryCopy, OpTableInit, OpTableCopy:
		return readPair(r)
	case OpDataDrop, OpMemoryFill, OpElemDrop, OpTableGrow, OpTableSize, OpTableFill:
		return readIndex(r)
	default:
		// Saturating truncations
		return nil, nil
	}
}

func readSIMDImmediate(r *binary.Reader, sub uint32) (any, error) {
	switch {
	case sub <= simdLoadLast || sub == simdStore || sub == simdLoad32Zero || sub == simdLoad64Zero:
		return readMemArg(r)

	case sub == simdConst || sub == simdShuffle:
		raw, err := r.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		var imm V128Imm
		copy(imm.Bytes[:], raw)
		return imm, nil

	case sub >= simdExtractFirst && sub <= simdReplaceLast:
		lane, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return LaneImm{Lane: lane}, nil

	case sub >= simdLaneMemFirst && sub <= simdLaneMemLast:
		m, err := readMemArg(r)
		if err != nil {
			return nil, err
		}
		lane, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return MemLaneImm{MemArg: m.(MemArg), Lane: lane}, nil

	default:
		return nil, nil
	}
}

// readMemArg reads align and offset. Bit 6 of the align field signals an
// explicit memory index (multi-memory).
func readMemArg(r *binary.Reader) (any, error) {
	align, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	var memIdx uint32
	if align&0x40 != 0 {
		align &^= 0x40
		memIdx, err = r.ReadU32()
		if err != nil {
			return nil, err
		}
	}
	offset, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	return MemArg{Align: align, Offset: offset, MemIdx: memIdx}, nil
}

// String renders the instruction in a text-format-like form: the opcode
// label followed by its immediates.
func (i Instruction) String() string {
	var b strings.Builder
	b.WriteString(i.Op.String())

	switch imm := i.Imm.(type) {
	case nil:
	case BlockImm:
		b.WriteString(blockTypeString(imm.Type))
	case IndexImm:
		b.WriteByte(' ')
		b.WriteString(strconv.FormatUint(uint64(imm.Index), 10))
	case PairImm:
		fmt.Fprintf(&b, " %d %d", imm.First, imm.Second)
	case BrTableImm:
		for _, l := range imm.Labels {
			fmt.Fprintf(&b, " %d", l)
		}
		fmt.Fprintf(&b, " %d", imm.Default)
	case CallIndirectImm:
		fmt.Fprintf(&b, " %d (type %d)", imm.TableIdx, imm.TypeIdx)
	case MemArg:
		b.WriteString(memArgString(imm))
	case I32Imm:
		fmt.Fprintf(&b, " %d", imm.Value)
	case I64Imm:
		fmt.Fprintf(&b, " %d", imm.Value)
	case F32Imm:
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(float64(math.Float32frombits(imm.Bits)), 'g', -1, 32))
	case F64Imm:
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(math.Float64frombits(imm.Bits), 'g', -1, 64))
	case SelectTypeImm:
		b.WriteString(" (result")
		for _, t := range imm.Types {
			b.WriteByte(' ')
			b.WriteString(t.String())
		}
		b.WriteByte(')')
	case RefNullImm:
		b.WriteByte(' ')
		b.WriteString(heapTypeString(imm.HeapType))
	case V128Imm:
		if i.Op == simdBase|simdConst {
			b.WriteString(" i8x16")
		}
		for _, v := range imm.Bytes {
			fmt.Fprintf(&b, " %d", v)
		}
	case LaneImm:
		fmt.Fprintf(&b, " %d", imm.Lane)
	case MemLaneImm:
		b.WriteString(memArgString(imm.MemArg))
		fmt.Fprintf(&b, " %d", imm.Lane)
	}
	return b.String()
}

func memArgString(m MemArg) string {
	var b strings.Builder
	if m.MemIdx != 0 {
		fmt.Fprintf(&b, " %d", m.MemIdx)
	}
	if m.Offset != 0 {
		fmt.Fprintf(&b, " offset=%d", m.Offset)
	}
	fmt.Fprintf(&b, " align=%d", uint64(1)<<(m.Align&63))
	return b.String()
}

func blockTypeString(bt int64) string {
	switch bt {
	case BlockTypeVoid:
		return ""
	case BlockTypeI32:
		return " (result i32)"
	case BlockTypeI64:
		return " (result i64)"
	case BlockTypeF32:
		return " (result f32)"
	case BlockTypeF64:
		return " (result f64)"
	case BlockTypeV128:
		return " (result v128)"
	case BlockTypeFuncRef:
		return " (result funcref)"
	case BlockTypeExternRef:
		return " (result externref)"
	}
	if bt >= 0 {
		return fmt.Sprintf(" (type %d)", bt)
	}
	return fmt.Sprintf(" (blocktype %d)", bt)
}

func heapTypeString(ht int64) string {
	switch ht {
	case BlockTypeFuncRef:
		return "func"
	case BlockTypeExternRef:
		return "extern"
	}
	return strconv.FormatInt(ht, 10)
}
