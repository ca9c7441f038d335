package meter

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/wippyai/wasm-probe/internal/binary"
	"github.com/wippyai/wasm-probe/wasm"
)

// ExportName is the reserved export under which the fuel global is exposed.
// A numeric suffix is appended when the module already uses the name.
const ExportName = "__wasmprobe_fuel"

// Info describes an instrumented module.
type Info struct {
	// ExportName is the export under which the fuel global is reachable.
	ExportName string
	// GlobalIndex is the fuel global's index in the global index space.
	GlobalIndex uint32
	// Functions is the number of rewritten function bodies.
	Functions int
	// ChargePoints is the number of injected fuel checks.
	ChargePoints int
	// Fuel is the initial fuel value.
	Fuel int64
}

type section struct {
	data []byte
	id   byte
}

type module struct {
	sections       []section
	exportNames    map[string]bool
	bodies         []wasm.Payload
	importedGlobal uint32
	definedGlobal  uint32
}

// Instrument rewrites a module so that execution consumes fuel.
//
// A mutable i64 global initialised to fuel is appended and exported. Every
// function body is split into straight-line segments ending at a control
// instruction; each segment is preceded by a check that subtracts its
// instruction count from the global and executes `unreachable` once the
// global drops below zero. Callers detect exhaustion by reading the exported
// global after a trap: only the injected check can make it negative.
//
// Sections other than global, export and code are copied unchanged and no
// existing index shifts, so the output is valid whenever the input is.
func Instrument(data []byte, fuel int64) ([]byte, Info, error) {
	if fuel < 0 {
		return nil, Info{}, fmt.Errorf("meter: negative fuel %d", fuel)
	}

	m, err := scan(data)
	if err != nil {
		return nil, Info{}, fmt.Errorf("meter: %w", err)
	}

	info := Info{
		ExportName:  uniqueName(m.exportNames),
		GlobalIndex: m.importedGlobal + m.definedGlobal,
		Functions:   len(m.bodies),
		Fuel:        fuel,
	}

	code, points, err := rewriteCode(m.bodies, info.GlobalIndex)
	if err != nil {
		return nil, Info{}, fmt.Errorf("meter: %w", err)
	}
	info.ChargePoints = points

	out := binary.NewWriter()
	out.WriteBytes(data[:8])

	globalDone, exportDone := false, false
	emitGlobal := func(entries []byte, count uint32) {
		w := binary.NewWriter()
		w.WriteU32(count + 1)
		w.WriteBytes(entries)
		writeFuelGlobal(w, fuel)
		out.WriteSection(wasm.SectionGlobal, w.Bytes())
		globalDone = true
	}
	emitExport := func(entries []byte, count uint32) {
		w := binary.NewWriter()
		w.WriteU32(count + 1)
		w.WriteBytes(entries)
		w.WriteName(info.ExportName)
		w.Byte(wasm.KindGlobal)
		w.WriteU32(info.GlobalIndex)
		out.WriteSection(wasm.SectionExport, w.Bytes())
		exportDone = true
	}
	// Missing sections are created right before the first section that must
	// follow them.
	fill := func(order int) {
		if !globalDone && order > wasm.SectionOrder(wasm.SectionGlobal) {
			emitGlobal(nil, 0)
		}
		if !exportDone && order > wasm.SectionOrder(wasm.SectionExport) {
			emitExport(nil, 0)
		}
	}

	for _, s := range m.sections {
		if s.id != wasm.SectionCustom {
			fill(wasm.SectionOrder(s.id))
		}
		switch s.id {
		case wasm.SectionGlobal, wasm.SectionExport:
			count, entries, err := splitVector(s.data)
			if err != nil {
				return nil, Info{}, fmt.Errorf("meter: %s section: %w", wasm.SectionName(s.id), err)
			}
			if s.id == wasm.SectionGlobal {
				emitGlobal(entries, count)
			} else {
				emitExport(entries, count)
			}
		case wasm.SectionCode:
			out.WriteSection(wasm.SectionCode, code)
		default:
			out.WriteSection(s.id, s.data)
		}
	}
	fill(math.MaxInt)

	return out.Bytes(), info, nil
}

func scan(data []byte) (*module, error) {
	m := &module{exportNames: make(map[string]bool)}
	err := wasm.Walk(data, func(p wasm.Payload) error {
		switch p.Kind {
		case wasm.PayloadCodeEntry:
			m.bodies = append(m.bodies, p)
			return nil
		case wasm.PayloadVersion:
			return nil
		}

		m.sections = append(m.sections, section{id: p.ID, data: p.Data})
		switch p.ID {
		case wasm.SectionImport:
			imports, err := p.Imports()
			if err != nil {
				return err
			}
			for _, imp := range imports {
				if imp.Kind == wasm.KindGlobal {
					m.importedGlobal++
				}
			}
		case wasm.SectionGlobal:
			m.definedGlobal = p.Count
		case wasm.SectionExport:
			exports, err := p.Exports()
			if err != nil {
				return err
			}
			for _, e := range exports {
				m.exportNames[e.Name] = true
			}
		}
		return nil
	})
	return m, err
}

func uniqueName(taken map[string]bool) string {
	name := ExportName
	for i := 1; taken[name]; i++ {
		name = ExportName + "_" + strconv.Itoa(i)
	}
	return name
}

func splitVector(data []byte) (uint32, []byte, error) {
	r := binary.NewReader(data)
	count, err := r.ReadU32()
	if err != nil {
		return 0, nil, err
	}
	return count, data[r.Position():], nil
}

func writeFuelGlobal(w *binary.Writer, fuel int64) {
	w.Byte(byte(wasm.ValI64))
	w.Byte(0x01) // mutable
	w.Byte(byte(wasm.OpI64Const))
	w.WriteS64(fuel)
	w.Byte(byte(wasm.OpEnd))
}

var errEmptyBody = errors.New("empty function body")
