// Package disasm prints a human-readable trace of a module's structure and
// instructions.
package disasm

import (
	"errors"
	"fmt"
	"io"

	probeerrors "github.com/wippyai/wasm-probe/errors"
	"github.com/wippyai/wasm-probe/wasm"
)

// Printer writes disassembly to W.
type Printer struct {
	W io.Writer
}

// Print walks data in on-disk order and writes the version, the sizes of
// the type, import, function, export and code sections, and every
// instruction of every function body. Output already written stays
// written when a decode error aborts the walk.
func (p Printer) Print(path string, data []byte) error {
	w := &errWriter{w: p.W}
	w.printf("Disassembling %s...\n", path)

	err := wasm.Walk(data, func(pl wasm.Payload) error {
		switch pl.Kind {
		case wasm.PayloadVersion:
			w.printf("WASM Version: %d\n", pl.Version)
		case wasm.PayloadSection:
			p.section(w, pl)
		case wasm.PayloadCodeEntry:
			w.printf("  Function:\n")
			ir := pl.Instructions()
			for {
				in, err := ir.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return err
				}
				w.printf("    ▸ %s\n", in)
			}
		}
		return w.err
	})
	if err != nil {
		if err == w.err {
			return probeerrors.New(probeerrors.PhaseEmit, probeerrors.KindIO).
				Detail("write disassembly").
				Cause(err).
				Build()
		}
		return probeerrors.Decode(err)
	}
	return w.err
}

func (p Printer) section(w *errWriter, pl wasm.Payload) {
	switch pl.ID {
	case wasm.SectionType:
		w.printf("Type Section: %d types\n", pl.Count)
	case wasm.SectionImport:
		w.printf("Imports: %d entries\n", pl.Count)
	case wasm.SectionFunction:
		w.printf("Function Section: %d functions\n", pl.Count)
	case wasm.SectionExport:
		w.printf("Exports: %d entries\n", pl.Count)
	case wasm.SectionCode:
		w.printf("Code Section: %d functions\n", pl.Count)
	}
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
