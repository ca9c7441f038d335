// Package opcodes builds static opcode-frequency profiles of core modules.
package opcodes

import (
	"cmp"
	"errors"
	"io"
	"slices"

	probeerrors "github.com/wippyai/wasm-probe/errors"
	"github.com/wippyai/wasm-probe/wasm"
)

// Vector maps an instruction label to its number of occurrences across
// every function body of a module.
type Vector map[string]uint64

// Entry is one label and its count.
type Entry struct {
	Label string
	Count uint64
}

// Total returns the number of instructions counted.
func (v Vector) Total() uint64 {
	var n uint64
	for _, c := range v {
		n += c
	}
	return n
}

// Sorted returns the entries by descending count, ties by label.
func (v Vector) Sorted() []Entry {
	out := make([]Entry, 0, len(v))
	for l, c := range v {
		out = append(out, Entry{Label: l, Count: c})
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

// Scan decodes every function body in on-disk order and counts each
// instruction under its mnemonic. Immediates never affect the label.
// Any decode failure aborts the scan and no vector is returned.
func Scan(data []byte) (Vector, error) {
	v := make(Vector)
	err := wasm.Walk(data, func(p wasm.Payload) error {
		if p.Kind != wasm.PayloadCodeEntry {
			return nil
		}
		return v.addBody(p)
	})
	if err != nil {
		return nil, probeerrors.Decode(err)
	}
	return v, nil
}

func (v Vector) addBody(p wasm.Payload) error {
	ir := p.Instructions()
	for {
		in, err := ir.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		v[in.Op.String()]++
	}
}
