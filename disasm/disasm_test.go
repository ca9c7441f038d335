package disasm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	probeerrors "github.com/wippyai/wasm-probe/errors"
	"github.com/wippyai/wasm-probe/internal/wasmtest"
	"github.com/wippyai/wasm-probe/wasm"
)

func TestPrint(t *testing.T) {
	b := wasmtest.New()
	host := b.ImportFunc("env", "tick", nil, nil)
	run := b.Func(nil, nil,
		wasmtest.I32Const(42),
		wasmtest.Op(wasm.OpDrop),
		wasmtest.Index(wasm.OpCall, host),
	)
	b.Export("run", run)

	var out bytes.Buffer
	require.NoError(t, Printer{W: &out}.Print("mod.wasm", b.Bytes()))

	want := "Disassembling mod.wasm...\n" +
		"WASM Version: 1\n" +
		"Type Section: 1 types\n" +
		"Imports: 1 entries\n" +
		"Function Section: 1 functions\n" +
		"Exports: 1 entries\n" +
		"Code Section: 1 functions\n" +
		"  Function:\n" +
		"    ▸ i32.const 42\n" +
		"    ▸ drop\n" +
		"    ▸ call 0\n" +
		"    ▸ end\n"
	assert.Equal(t, want, out.String())
}

func TestPrint_OmitsAbsentSections(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Printer{W: &out}.Print("empty.wasm", wasmtest.New().Bytes()))
	assert.Equal(t, "Disassembling empty.wasm...\nWASM Version: 1\n", out.String())
}

func TestPrint_EveryFunction(t *testing.T) {
	b := wasmtest.New()
	b.Func(nil, nil)
	b.Func(nil, nil, wasmtest.InfiniteLoop())

	var out bytes.Buffer
	require.NoError(t, Printer{W: &out}.Print("m", b.Bytes()))
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("  Function:\n")))
	assert.Contains(t, out.String(), "    ▸ loop\n    ▸ br 0\n    ▸ end\n    ▸ end\n")
}

func TestPrint_DecodeError(t *testing.T) {
	b := wasmtest.New()
	b.Func(nil, nil, wasmtest.I32Const(1), []byte{0xFF})

	var out bytes.Buffer
	err := Printer{W: &out}.Print("bad.wasm", b.Bytes())
	require.Error(t, err)
	assert.True(t, probeerrors.IsKind(err, probeerrors.KindDecode))
	// Instructions before the fault are still printed.
	assert.Contains(t, out.String(), "    ▸ i32.const 1\n")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrint_WriteError(t *testing.T) {
	b := wasmtest.New()
	b.Func(nil, nil)

	err := Printer{W: failWriter{}}.Print("m", b.Bytes())
	require.Error(t, err)
	assert.True(t, probeerrors.IsKind(err, probeerrors.KindIO))
}
