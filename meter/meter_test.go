package meter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"

	"github.com/wippyai/wasm-probe/internal/wasmtest"
	"github.com/wippyai/wasm-probe/meter"
	"github.com/wippyai/wasm-probe/wasm"
)

// run instantiates metered bytes, calls fn and returns the remaining fuel
// and the call error.
func run(t *testing.T, data []byte, fuel int64, fn string) (int64, error) {
	t.Helper()
	ctx := context.Background()

	metered, info, err := meter.Instrument(data, fuel)
	require.NoError(t, err)

	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := rt.InstantiateWithConfig(ctx, metered, wazero.NewModuleConfig().WithStartFunctions())
	require.NoError(t, err)

	_, callErr := mod.ExportedFunction(fn).Call(ctx)
	g := mod.ExportedGlobal(info.ExportName)
	require.NotNil(t, g)
	return int64(g.Get()), callErr
}

func TestInstrument_Terminates(t *testing.T) {
	b := wasmtest.New()
	b.Export("spin", b.Func(nil, nil, wasmtest.InfiniteLoop()))

	remaining, err := run(t, b.Bytes(), 1000, "spin")
	require.Error(t, err)
	assert.Less(t, remaining, int64(0))
}

func TestInstrument_Success(t *testing.T) {
	b := wasmtest.New()
	b.Export("run", b.FuncWithLocals(nil, nil, []wasm.ValType{wasm.ValI32}, wasmtest.CountedLoop(10)))

	remaining, err := run(t, b.Bytes(), 10_000, "run")
	require.NoError(t, err)
	assert.Greater(t, remaining, int64(0))
	assert.Less(t, remaining, int64(10_000))
}

func TestInstrument_Deterministic(t *testing.T) {
	b := wasmtest.New()
	b.Export("run", b.FuncWithLocals(nil, nil, []wasm.ValType{wasm.ValI32}, wasmtest.CountedLoop(25)))
	data := b.Bytes()

	first, _ := run(t, data, 10_000, "run")
	second, _ := run(t, data, 10_000, "run")
	assert.Equal(t, first, second)
}

func TestInstrument_Monotonic(t *testing.T) {
	b := wasmtest.New()
	b.Export("run", b.FuncWithLocals(nil, nil, []wasm.ValType{wasm.ValI32}, wasmtest.CountedLoop(50)))
	data := b.Bytes()

	// Enough fuel succeeds and reveals the exact consumption.
	remaining, err := run(t, data, 100_000, "run")
	require.NoError(t, err)
	used := 100_000 - remaining

	_, err = run(t, data, used, "run")
	assert.NoError(t, err, "exactly enough fuel must succeed")

	for _, budget := range []int64{used - 1, used / 2, 1, 0} {
		remaining, err = run(t, data, budget, "run")
		assert.Error(t, err, "budget %d", budget)
		assert.Less(t, remaining, int64(0), "budget %d", budget)
	}
}

func TestInstrument_GuestTrapLeavesFuel(t *testing.T) {
	b := wasmtest.New()
	b.Export("boom", b.Func(nil, nil, wasmtest.Op(wasm.OpUnreachable)))

	remaining, err := run(t, b.Bytes(), 100, "boom")
	require.Error(t, err)
	assert.GreaterOrEqual(t, remaining, int64(0))
}

func TestInstrument_PreservesExistingGlobalsAndExports(t *testing.T) {
	b := wasmtest.New()
	counter := b.Global(wasm.ValI32, true, wasmtest.I32Const(0))
	inc := b.Func(nil, nil,
		wasmtest.Index(wasm.OpGlobalGet, counter),
		wasmtest.I32Const(1),
		wasmtest.Op(wasm.OpI32Add),
		wasmtest.Index(wasm.OpGlobalSet, counter),
	)
	b.Export("inc", inc).ExportGlobal("counter", counter)
	b.ExportGlobal(meter.ExportName, counter)

	metered, info, err := meter.Instrument(b.Bytes(), 500)
	require.NoError(t, err)
	assert.Equal(t, meter.ExportName+"_1", info.ExportName)
	assert.Equal(t, uint32(1), info.GlobalIndex)
	assert.Equal(t, 1, info.Functions)

	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)
	mod, err := rt.Instantiate(ctx, metered)
	require.NoError(t, err)

	_, err = mod.ExportedFunction("inc").Call(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), mod.ExportedGlobal("counter").Get())
	assert.Less(t, int64(mod.ExportedGlobal(info.ExportName).Get()), int64(500))
}

func TestInstrument_CreatesMissingSections(t *testing.T) {
	// No globals, no exports: both sections are synthesised.
	b := wasmtest.New()
	b.Func(nil, nil, wasmtest.Op(wasm.OpNop))

	metered, info, err := meter.Instrument(b.Bytes(), 7)
	require.NoError(t, err)

	var ids []byte
	require.NoError(t, wasm.Walk(metered, func(p wasm.Payload) error {
		if p.Kind == wasm.PayloadSection {
			ids = append(ids, p.ID)
		}
		return nil
	}))
	assert.Equal(t, []byte{wasm.SectionType, wasm.SectionFunction, wasm.SectionGlobal, wasm.SectionExport, wasm.SectionCode}, ids)

	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)
	mod, err := rt.Instantiate(ctx, metered)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), mod.ExportedGlobal(info.ExportName).Get())
}

func TestInstrument_StartFunctionIsMetered(t *testing.T) {
	b := wasmtest.New()
	start := b.Func(nil, nil, wasmtest.InfiniteLoop())
	b.Start(start)

	metered, _, err := meter.Instrument(b.Bytes(), 100)
	require.NoError(t, err)

	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)
	_, err = rt.Instantiate(ctx, metered)
	assert.Error(t, err)
}

func TestInstrument_Errors(t *testing.T) {
	_, _, err := meter.Instrument([]byte{0x00, 0x61}, 10)
	assert.Error(t, err)

	b := wasmtest.New()
	b.Func(nil, nil)
	_, _, err = meter.Instrument(b.Bytes(), -1)
	assert.Error(t, err)
}

func TestSegments(t *testing.T) {
	instrs, err := wasm.DecodeInstructions(wasmtest.Code(
		wasmtest.I32Const(1),
		wasmtest.Op(wasm.OpDrop),
		wasmtest.Block(wasm.OpLoop),
		wasmtest.I32Const(0),
		wasmtest.Index(wasm.OpBrIf, 0),
		wasmtest.Op(wasm.OpEnd),
		wasmtest.Op(wasm.OpNop, wasm.OpEnd),
	))
	require.NoError(t, err)

	segs := meter.Segments(instrs)
	var costs []int64
	var total int64
	for _, s := range segs {
		costs = append(costs, s.Cost())
		total += s.Cost()
	}
	// [const drop loop] [const br_if] [end] [nop end]
	assert.Equal(t, []int64{3, 2, 1, 2}, costs)
	assert.Equal(t, int64(len(instrs)), total)
}
