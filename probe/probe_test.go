package probe

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/wasm-probe/engine"
	probeerrors "github.com/wippyai/wasm-probe/errors"
	"github.com/wippyai/wasm-probe/internal/wasmtest"
	"github.com/wippyai/wasm-probe/opcodes"
	"github.com/wippyai/wasm-probe/report"
	"github.com/wippyai/wasm-probe/wasm"
)

type fixture struct {
	dir     string
	file    string
	console bytes.Buffer
}

func newFixture(t *testing.T, module []byte) *fixture {
	t.Helper()
	f := &fixture{dir: t.TempDir()}
	f.file = filepath.Join(f.dir, "plugin.wasm")
	require.NoError(t, os.WriteFile(f.file, module, 0o644))
	return f
}

func (f *fixture) run(fn string) error {
	return Run(context.Background(), Config{
		File:      f.file,
		Function:  fn,
		OutputDir: f.dir,
		Console:   &f.console,
	})
}

func (f *fixture) artifactsExist() bool {
	_, errLog := os.Stat(filepath.Join(f.dir, report.LogFile))
	_, errVec := os.Stat(filepath.Join(f.dir, report.VectorFile))
	return errLog == nil || errVec == nil
}

func arithmetic() []byte {
	b := wasmtest.New()
	b.Export("run", b.Func(nil, nil,
		wasmtest.I32Const(1),
		wasmtest.I32Const(2),
		wasmtest.Op(wasm.OpI32Add),
		wasmtest.I32Const(3),
		wasmtest.Op(wasm.OpI32Mul, wasm.OpDrop),
	))
	return b.Bytes()
}

func TestRun_Success(t *testing.T) {
	f := newFixture(t, arithmetic())
	require.NoError(t, f.run("run"))

	log, err := report.ReadExecutionLog(filepath.Join(f.dir, report.LogFile))
	require.NoError(t, err)
	assert.True(t, log.Success)
	assert.Nil(t, log.ErrorMessage)
	assert.Equal(t, f.file, log.File)
	assert.Equal(t, "run", log.Function)

	vec, err := report.ReadVector(filepath.Join(f.dir, report.VectorFile))
	require.NoError(t, err)
	assert.Equal(t, opcodes.Vector{"i32.const": 3, "i32.add": 1, "i32.mul": 1, "drop": 1, "end": 1}, vec)

	console := f.console.String()
	assert.Contains(t, console, "Disassembling "+f.file+"...\n")
	assert.Contains(t, console, "Plugin executed successfully in ")
	assert.Contains(t, console, "  i32.const: 3\n")
	assert.Contains(t, console, "Saved vector to opcode_vector.json\n")
}

func TestRun_ConsoleOrder(t *testing.T) {
	f := newFixture(t, arithmetic())
	require.NoError(t, f.run("run"))

	console := f.console.String()
	disasm := strings.Index(console, "Disassembling ")
	summary := strings.Index(console, "Plugin executed successfully in ")
	tally := strings.Index(console, "Opcode Frequency Vector:")
	saved := strings.Index(console, "Saved vector to ")
	require.True(t, disasm >= 0 && summary >= 0 && tally >= 0 && saved >= 0, console)
	assert.Less(t, disasm, summary)
	assert.Less(t, summary, tally)
	assert.Less(t, tally, saved)
}

func TestRun_ManyLocals(t *testing.T) {
	locals := make([]wasm.ValType, 60_000)
	for i := range locals {
		locals[i] = wasm.ValI32
	}
	b := wasmtest.New()
	b.Export("run", b.FuncWithLocals(nil, nil, locals, wasmtest.Op(wasm.OpNop)))
	f := newFixture(t, b.Bytes())

	require.NoError(t, f.run("run"))

	log, err := report.ReadExecutionLog(filepath.Join(f.dir, report.LogFile))
	require.NoError(t, err)
	assert.True(t, log.Success)
	assert.Nil(t, log.ErrorMessage)

	vec, err := report.ReadVector(filepath.Join(f.dir, report.VectorFile))
	require.NoError(t, err)
	assert.Equal(t, opcodes.Vector{"nop": 1, "end": 1}, vec)
}

func TestRun_ExhaustionIsNotFatal(t *testing.T) {
	b := wasmtest.New()
	b.Export("spin", b.Func(nil, nil, wasmtest.InfiniteLoop()))
	f := newFixture(t, b.Bytes())

	require.NoError(t, f.run("spin"))

	log, err := report.ReadExecutionLog(filepath.Join(f.dir, report.LogFile))
	require.NoError(t, err)
	assert.False(t, log.Success)
	require.NotNil(t, log.ErrorMessage)
	assert.Equal(t, engine.ExhaustedMessage, *log.ErrorMessage)
	assert.Contains(t, f.console.String(), "Plugin execution failed in ")
	assert.Contains(t, f.console.String(), "▸ loop\n")
}

func TestRun_TrapIsNotFatal(t *testing.T) {
	b := wasmtest.New()
	b.Export("boom", b.Func(nil, nil, wasmtest.Op(wasm.OpUnreachable)))
	f := newFixture(t, b.Bytes())

	require.NoError(t, f.run("boom"))

	log, err := report.ReadExecutionLog(filepath.Join(f.dir, report.LogFile))
	require.NoError(t, err)
	assert.False(t, log.Success)
	require.NotNil(t, log.ErrorMessage)
	assert.Contains(t, *log.ErrorMessage, "unreachable")

	vec, err := report.ReadVector(filepath.Join(f.dir, report.VectorFile))
	require.NoError(t, err)
	assert.Equal(t, opcodes.Vector{"unreachable": 1, "end": 1}, vec)
}

func TestRun_FatalErrorsWriteNothing(t *testing.T) {
	valid := arithmetic()

	withParam := wasmtest.New()
	withParam.Export("run", withParam.Func([]wasm.ValType{wasm.ValI32}, nil))

	tests := []struct {
		name   string
		module []byte
		fn     string
		kind   probeerrors.Kind
	}{
		{"missing export", valid, "absent", probeerrors.KindFunctionNotFound},
		{"truncated module", valid[:len(valid)-4], "run", probeerrors.KindValidation},
		{"signature mismatch", withParam.Bytes(), "run", probeerrors.KindSignatureMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.module)
			err := f.run(tc.fn)
			require.Error(t, err)
			assert.True(t, probeerrors.IsKind(err, tc.kind), "got %v", err)
			assert.False(t, f.artifactsExist())
		})
	}
}

func TestRun_PreservesExistingArtifactsOnFailure(t *testing.T) {
	f := newFixture(t, arithmetic())
	previous := []byte(`{"i32.const": 1}`)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, report.VectorFile), previous, 0o644))

	require.Error(t, f.run("absent"))

	data, err := os.ReadFile(filepath.Join(f.dir, report.VectorFile))
	require.NoError(t, err)
	assert.Equal(t, previous, data)
}

func TestRun_MissingFile(t *testing.T) {
	err := Run(context.Background(), Config{
		File:      filepath.Join(t.TempDir(), "nope.wasm"),
		Function:  "run",
		OutputDir: t.TempDir(),
		Console:   &bytes.Buffer{},
	})
	assert.True(t, probeerrors.IsKind(err, probeerrors.KindIO))
}

func TestConfig_withDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, os.Stdout, cfg.Console)
	assert.NotNil(t, cfg.Logger)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, engine.DefaultFuel, cfg.Fuel)

	cfg = Config{Fuel: 5, OutputDir: "out"}.withDefaults()
	assert.Equal(t, int64(5), cfg.Fuel)
	assert.Equal(t, "out", cfg.OutputDir)
}
