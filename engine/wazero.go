package engine

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-probe/errors"
)

// DefaultFuel is the budget used when callers have no better figure.
const DefaultFuel int64 = 10_000

// WazeroEngine loads and runs core modules on a wazero runtime
type WazeroEngine struct {
	runtime wazero.Runtime
	log     *zap.Logger
}

// Config holds configuration for engine creation
type Config struct {
	// Logger receives engine diagnostics. nil means Logger().
	Logger *zap.Logger

	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	MemoryLimitPages uint32
}

// NewWazeroEngine creates a new wazero-based engine
func NewWazeroEngine(ctx context.Context) (*WazeroEngine, error) {
	return NewWazeroEngineWithConfig(ctx, nil)
}

// NewWazeroEngineWithConfig creates a new engine with custom configuration
func NewWazeroEngineWithConfig(ctx context.Context, cfg *Config) (*WazeroEngine, error) {
	runtimeCfg := wazero.NewRuntimeConfig().WithCoreFeatures(api.CoreFeaturesV2)
	log := Logger()

	if cfg != nil {
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
		if cfg.Logger != nil {
			log = cfg.Logger
		}
	}

	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	return &WazeroEngine{runtime: runtime, log: log.Named("engine")}, nil
}

// LoadModule validates and compiles a module. Any failure is a
// validation error; nothing is instantiated.
func (e *WazeroEngine) LoadModule(ctx context.Context, wasmBytes []byte) (*WazeroModule, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Validation(err)
	}

	e.log.Debug("module compiled",
		zap.Int("bytes", len(wasmBytes)),
		zap.Int("exports", len(compiled.ExportedFunctions())))

	return &WazeroModule{
		engine:   e,
		compiled: compiled,
		rawBytes: wasmBytes,
	}, nil
}

// Close releases the runtime and every module compiled by it.
func (e *WazeroEngine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// WazeroModule is a validated, compiled module. It is never instantiated
// directly; each Execute runs a fresh metered copy.
type WazeroModule struct {
	engine   *WazeroEngine
	compiled wazero.CompiledModule
	rawBytes []byte
}

// Bytes returns the module binary as loaded.
func (m *WazeroModule) Bytes() []byte {
	return m.rawBytes
}

// lookup resolves a nullary, no-result function export.
func (m *WazeroModule) lookup(name string) error {
	def, ok := m.compiled.ExportedFunctions()[name]
	if !ok {
		return errors.FunctionNotFound(name)
	}
	if len(def.ParamTypes()) != 0 || len(def.ResultTypes()) != 0 {
		return errors.SignatureMismatch(name, len(def.ParamTypes()), len(def.ResultTypes()))
	}
	return nil
}

// Close releases the compiled module.
func (m *WazeroModule) Close(ctx context.Context) error {
	return m.compiled.Close(ctx)
}

// closeAll closes an instance and its compiled module, combining errors.
func closeAll(ctx context.Context, inst api.Module, compiled wazero.CompiledModule) error {
	var err error
	if inst != nil {
		err = multierr.Append(err, inst.Close(ctx))
	}
	if compiled != nil {
		err = multierr.Append(err, compiled.Close(ctx))
	}
	return err
}
