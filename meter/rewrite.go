package meter

import (
	"fmt"

	"github.com/wippyai/wasm-probe/internal/binary"
	"github.com/wippyai/wasm-probe/wasm"
)

// endsSegment reports whether control may leave straight-line execution
// after op.
func endsSegment(op wasm.Opcode) bool {
	switch op {
	case wasm.OpBlock, wasm.OpLoop, wasm.OpIf, wasm.OpElse, wasm.OpEnd,
		wasm.OpBr, wasm.OpBrIf, wasm.OpBrTable, wasm.OpReturn,
		wasm.OpCall, wasm.OpCallIndirect, wasm.OpUnreachable:
		return true
	}
	return false
}

// Segment is a run of instructions charged as one unit.
type Segment struct {
	Start int // index of the first instruction
	End   int // index one past the last instruction
}

// Cost is the fuel charged on entry to the segment.
func (s Segment) Cost() int64 {
	return int64(s.End - s.Start)
}

// Segments splits a decoded body into charge segments. Every instruction
// belongs to exactly one segment, so segment costs sum to the body's
// instruction count.
func Segments(instrs []wasm.Instruction) []Segment {
	var segs []Segment
	start := 0
	for i, in := range instrs {
		if endsSegment(in.Op) {
			segs = append(segs, Segment{Start: start, End: i + 1})
			start = i + 1
		}
	}
	if start < len(instrs) {
		segs = append(segs, Segment{Start: start, End: len(instrs)})
	}
	return segs
}

func rewriteCode(bodies []wasm.Payload, fuelGlobal uint32) ([]byte, int, error) {
	w := binary.NewWriter()
	w.WriteU32(uint32(len(bodies)))
	points := 0
	for _, b := range bodies {
		body, n, err := rewriteBody(b, fuelGlobal)
		if err != nil {
			return nil, 0, fmt.Errorf("function body %d: %w", b.Index, err)
		}
		w.WriteU32(uint32(len(body)))
		w.WriteBytes(body)
		points += n
	}
	return w.Bytes(), points, nil
}

func rewriteBody(p wasm.Payload, fuelGlobal uint32) ([]byte, int, error) {
	instrs, err := wasm.DecodeInstructions(p.Data)
	if err != nil {
		return nil, 0, err
	}
	if len(instrs) == 0 {
		return nil, 0, errEmptyBody
	}

	w := binary.NewWriter()
	w.WriteBytes(p.Locals)
	segs := Segments(instrs)
	for _, s := range segs {
		writeCharge(w, fuelGlobal, s.Cost())
		first, last := instrs[s.Start], instrs[s.End-1]
		w.WriteBytes(p.Data[first.Offset : last.Offset+last.Size])
	}
	return w.Bytes(), len(segs), nil
}

// writeCharge emits a stack-neutral fuel check:
//
//	global.get $fuel
//	i64.const cost
//	i64.sub
//	global.set $fuel
//	global.get $fuel
//	i64.const 0
//	i64.lt_s
//	if
//	  unreachable
//	end
func writeCharge(w *binary.Writer, fuelGlobal uint32, cost int64) {
	w.Byte(byte(wasm.OpGlobalGet))
	w.WriteU32(fuelGlobal)
	w.Byte(byte(wasm.OpI64Const))
	w.WriteS64(cost)
	w.Byte(byte(wasm.OpI64Sub))
	w.Byte(byte(wasm.OpGlobalSet))
	w.WriteU32(fuelGlobal)
	w.Byte(byte(wasm.OpGlobalGet))
	w.WriteU32(fuelGlobal)
	w.Byte(byte(wasm.OpI64Const))
	w.WriteS64(0)
	w.Byte(byte(wasm.OpI64LtS))
	w.Byte(byte(wasm.OpIf))
	w.Byte(0x40)
	w.Byte(byte(wasm.OpUnreachable))
	w.Byte(byte(wasm.OpEnd))
}
