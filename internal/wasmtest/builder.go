// Package wasmtest assembles small core WebAssembly modules for tests.
package wasmtest

import (
	"bytes"

	"github.com/wippyai/wasm-probe/wasm"
)

type funcType struct {
	params  []wasm.ValType
	results []wasm.ValType
}

type function struct {
	code    []byte
	locals  []wasm.ValType
	typeIdx uint32
}

type export struct {
	name  string
	kind  byte
	index uint32
}

type global struct {
	init    []byte
	typ     wasm.ValType
	mutable bool
}

type imp struct {
	module  string
	name    string
	typeIdx uint32
}

// Builder accumulates module definitions. Imports must be added before
// functions so that function indices stay stable.
type Builder struct {
	start   *uint32
	types   []funcType
	imports []imp
	funcs   []function
	exports []export
	globals []global
	memory  int
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{memory: -1}
}

func (b *Builder) typeIndex(params, results []wasm.ValType) uint32 {
	for i, t := range b.types {
		if bytes.Equal(valBytes(t.params), valBytes(params)) && bytes.Equal(valBytes(t.results), valBytes(results)) {
			return uint32(i)
		}
	}
	b.types = append(b.types, funcType{params: params, results: results})
	return uint32(len(b.types) - 1)
}

// ImportFunc declares an imported function and returns its index.
func (b *Builder) ImportFunc(module, name string, params, results []wasm.ValType) uint32 {
	b.imports = append(b.imports, imp{module: module, name: name, typeIdx: b.typeIndex(params, results)})
	return uint32(len(b.imports) - 1)
}

// Func adds a function whose body is code followed by an implicit end.
func (b *Builder) Func(params, results []wasm.ValType, code ...[]byte) uint32 {
	return b.FuncWithLocals(params, results, nil, code...)
}

// FuncWithLocals adds a function with declared locals.
func (b *Builder) FuncWithLocals(params, results, locals []wasm.ValType, code ...[]byte) uint32 {
	b.funcs = append(b.funcs, function{
		typeIdx: b.typeIndex(params, results),
		locals:  locals,
		code:    Code(code...),
	})
	return uint32(len(b.imports) + len(b.funcs) - 1)
}

// Export exports a function under name.
func (b *Builder) Export(name string, funcIdx uint32) *Builder {
	b.exports = append(b.exports, export{name: name, kind: wasm.KindFunc, index: funcIdx})
	return b
}

// ExportGlobal exports a global under name.
func (b *Builder) ExportGlobal(name string, globalIdx uint32) *Builder {
	b.exports = append(b.exports, export{name: name, kind: wasm.KindGlobal, index: globalIdx})
	return b
}

// Global adds a global initialised by a constant expression (without end).
func (b *Builder) Global(typ wasm.ValType, mutable bool, init []byte) uint32 {
	b.globals = append(b.globals, global{typ: typ, mutable: mutable, init: init})
	return uint32(len(b.globals) - 1)
}

// Memory declares a single memory with the given minimum page count.
func (b *Builder) Memory(minPages uint32) *Builder {
	b.memory = int(minPages)
	return b
}

// Start sets the start function.
func (b *Builder) Start(funcIdx uint32) *Builder {
	b.start = &funcIdx
	return b
}

// Bytes encodes the module.
func (b *Builder) Bytes() []byte {
	var out bytes.Buffer
	out.Write([]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00})

	if len(b.types) > 0 {
		var s bytes.Buffer
		s.Write(u32(uint32(len(b.types))))
		for _, t := range b.types {
			s.WriteByte(0x60)
			s.Write(u32(uint32(len(t.params))))
			s.Write(valBytes(t.params))
			s.Write(u32(uint32(len(t.results))))
			s.Write(valBytes(t.results))
		}
		section(&out, wasm.SectionType, s.Bytes())
	}

	if len(b.imports) > 0 {
		var s bytes.Buffer
		s.Write(u32(uint32(len(b.imports))))
		for _, im := range b.imports {
			s.Write(name(im.module))
			s.Write(name(im.name))
			s.WriteByte(wasm.KindFunc)
			s.Write(u32(im.typeIdx))
		}
		section(&out, wasm.SectionImport, s.Bytes())
	}

	if len(b.funcs) > 0 {
		var s bytes.Buffer
		s.Write(u32(uint32(len(b.funcs))))
		for _, f := range b.funcs {
			s.Write(u32(f.typeIdx))
		}
		section(&out, wasm.SectionFunction, s.Bytes())
	}

	if b.memory >= 0 {
		var s bytes.Buffer
		s.Write(u32(1))
		s.WriteByte(0x00)
		s.Write(u32(uint32(b.memory)))
		section(&out, wasm.SectionMemory, s.Bytes())
	}

	if len(b.globals) > 0 {
		var s bytes.Buffer
		s.Write(u32(uint32(len(b.globals))))
		for _, g := range b.globals {
			s.WriteByte(byte(g.typ))
			if g.mutable {
				s.WriteByte(1)
			} else {
				s.WriteByte(0)
			}
			s.Write(g.init)
			s.WriteByte(byte(wasm.OpEnd))
		}
		section(&out, wasm.SectionGlobal, s.Bytes())
	}

	if len(b.exports) > 0 {
		var s bytes.Buffer
		s.Write(u32(uint32(len(b.exports))))
		for _, e := range b.exports {
			s.Write(name(e.name))
			s.WriteByte(e.kind)
			s.Write(u32(e.index))
		}
		section(&out, wasm.SectionExport, s.Bytes())
	}

	if b.start != nil {
		section(&out, wasm.SectionStart, u32(*b.start))
	}

	if len(b.funcs) > 0 {
		var s bytes.Buffer
		s.Write(u32(uint32(len(b.funcs))))
		for _, f := range b.funcs {
			var body bytes.Buffer
			body.Write(u32(uint32(len(f.locals))))
			for _, l := range f.locals {
				body.Write(u32(1))
				body.WriteByte(byte(l))
			}
			body.Write(f.code)
			body.WriteByte(byte(wasm.OpEnd))
			s.Write(u32(uint32(body.Len())))
			s.Write(body.Bytes())
		}
		section(&out, wasm.SectionCode, s.Bytes())
	}

	return out.Bytes()
}

func section(out *bytes.Buffer, id byte, contents []byte) {
	out.WriteByte(id)
	out.Write(u32(uint32(len(contents))))
	out.Write(contents)
}

func name(s string) []byte {
	return append(u32(uint32(len(s))), s...)
}

func valBytes(ts []wasm.ValType) []byte {
	out := make([]byte, len(ts))
	for i, t := range ts {
		out[i] = byte(t)
	}
	return out
}

func u32(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			return out
		}
	}
}

func s64(v int64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}
