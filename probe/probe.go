// Package probe wires the loader, executor, disassembler, opcode scanner and
// report emitter into a single run.
package probe

import (
	"context"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-probe/disasm"
	"github.com/wippyai/wasm-probe/engine"
	probeerrors "github.com/wippyai/wasm-probe/errors"
	"github.com/wippyai/wasm-probe/opcodes"
	"github.com/wippyai/wasm-probe/report"
)

// Config describes one probe run.
type Config struct {
	// Console receives the disassembly, summary and tally. Defaults to stdout.
	Console io.Writer
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// File is the module path.
	File string
	// Function is the export to call.
	Function string
	// OutputDir receives the artifacts. Defaults to the working directory.
	OutputDir string
	// Fuel is the execution budget. Zero means engine.DefaultFuel.
	Fuel int64
}

func (c Config) withDefaults() Config {
	if c.Console == nil {
		c.Console = os.Stdout
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Fuel == 0 {
		c.Fuel = engine.DefaultFuel
	}
	return c
}

// Run reads, executes and analyses one module and writes the report.
//
// Setup failures abort the run before any artifact is written: an
// unreadable file, an invalid module, a missing or non-nullary export and a
// decode error. A trap or fuel exhaustion in the guest is recorded in the
// execution log and Run returns nil.
func Run(ctx context.Context, cfg Config) (err error) {
	cfg = cfg.withDefaults()
	log := cfg.Logger.With(zap.String("file", cfg.File), zap.String("function", cfg.Function))

	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return probeerrors.IO(probeerrors.PhaseRead, cfg.File, err)
	}

	eng, err := engine.NewWazeroEngineWithConfig(ctx, &engine.Config{Logger: cfg.Logger})
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, eng.Close(ctx))
	}()

	mod, err := eng.LoadModule(ctx, data)
	if err != nil {
		return err
	}
	log.Info("module loaded", zap.Int("bytes", len(data)))

	out, err := mod.Execute(ctx, cfg.Function, cfg.Fuel)
	if err != nil {
		return err
	}
	log.Info("execution finished",
		zap.Stringer("status", out.Status),
		zap.Duration("duration", out.Duration),
		zap.Int64("fuel_consumed", out.FuelConsumed))
	if !out.Success() {
		log.Warn("guest execution failed", zap.String("message", out.Message))
	}

	if err := (disasm.Printer{W: cfg.Console}).Print(cfg.File, data); err != nil {
		return err
	}

	vec, err := opcodes.Scan(data)
	if err != nil {
		return err
	}
	log.Info("opcodes scanned", zap.Int("labels", len(vec)), zap.Uint64("instructions", vec.Total()))

	emitter := report.Emitter{Dir: cfg.OutputDir, Console: cfg.Console, Logger: cfg.Logger}
	return emitter.Emit(report.NewExecutionLog(cfg.File, cfg.Function, out), vec)
}
