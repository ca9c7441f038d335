package engine

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-probe/meter"
)

// Status is the closed set of execution results.
type Status int

const (
	// StatusSuccess means the call returned normally.
	StatusSuccess Status = iota
	// StatusExhausted means the fuel budget ran out.
	StatusExhausted
	// StatusTrapped means the guest raised any other trap.
	StatusTrapped
	// StatusFailed means the run never reached the call, e.g. the
	// metered copy could not be built or instantiated.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusExhausted:
		return "exhausted"
	case StatusTrapped:
		return "trapped"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// ExhaustedMessage is reported for every fuel exhaustion.
const ExhaustedMessage = "execution failed: all fuel consumed"

// Outcome is the classified result of one Execute call.
type Outcome struct {
	Message      string
	Status       Status
	Duration     time.Duration
	Fuel         int64
	FuelConsumed int64
}

// Success reports whether the call returned normally.
func (o Outcome) Success() bool {
	return o.Status == StatusSuccess
}

// Execute runs the named export once on a fresh instance with the given
// fuel budget.
//
// Only configuration problems are returned as errors: a missing export
// (FunctionNotFound) or one that takes parameters or returns results
// (SignatureMismatch). Everything that happens after that, including
// failure to instantiate, is reported through the Outcome.
func (m *WazeroModule) Execute(ctx context.Context, name string, fuel int64) (Outcome, error) {
	if err := m.lookup(name); err != nil {
		return Outcome{}, err
	}
	log := m.engine.log.With(zap.String("function", name), zap.Int64("fuel", fuel))

	failed := func(msg string) (Outcome, error) {
		log.Debug("execution setup failed", zap.String("error", msg))
		return Outcome{Status: StatusFailed, Message: msg, Fuel: fuel}, nil
	}

	metered, info, err := meter.Instrument(m.rawBytes, fuel)
	if err != nil {
		return failed(err.Error())
	}
	log.Debug("module metered",
		zap.Int("functions", info.Functions),
		zap.Int("charge_points", info.ChargePoints),
		zap.String("fuel_export", info.ExportName))

	rt := m.engine.runtime
	compiled, err := rt.CompileModule(ctx, metered)
	if err != nil {
		return failed(err.Error())
	}

	cfg := wazero.NewModuleConfig().WithName("").WithStartFunctions()
	inst, err := rt.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		if cerr := closeAll(ctx, nil, compiled); cerr != nil {
			log.Warn("close failed", zap.Error(cerr))
		}
		return failed(err.Error())
	}
	defer func() {
		if cerr := closeAll(ctx, inst, compiled); cerr != nil {
			log.Warn("close failed", zap.Error(cerr))
		}
	}()

	fn := inst.ExportedFunction(name)
	start := time.Now()
	_, callErr := fn.Call(ctx)
	elapsed := time.Since(start)

	remaining := fuel
	if g := inst.ExportedGlobal(info.ExportName); g != nil {
		remaining = int64(g.Get())
	}

	out := classify(callErr, remaining)
	out.Duration = elapsed
	out.Fuel = fuel
	out.FuelConsumed = consumed(fuel, remaining)

	log.Debug("execution finished",
		zap.Stringer("status", out.Status),
		zap.Duration("duration", out.Duration),
		zap.Int64("fuel_consumed", out.FuelConsumed))
	return out, nil
}

// classify maps a call result to an Outcome; first match wins.
func classify(callErr error, remaining int64) Outcome {
	switch {
	case callErr == nil:
		return Outcome{Status: StatusSuccess}
	case remaining < 0:
		return Outcome{Status: StatusExhausted, Message: ExhaustedMessage}
	case isExit(callErr):
		return Outcome{Status: StatusFailed, Message: callErr.Error()}
	default:
		return Outcome{Status: StatusTrapped, Message: trapMessage(callErr)}
	}
}

func isExit(err error) bool {
	var exit *sys.ExitError
	return stderrors.As(err, &exit)
}

// trapMessage drops the wasm stack trace wazero appends to trap errors.
func trapMessage(err error) string {
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}

func consumed(fuel, remaining int64) int64 {
	switch {
	case remaining < 0:
		return fuel
	case remaining > fuel:
		return 0
	}
	return fuel - remaining
}
