package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/wasm-probe/engine"
	"github.com/wippyai/wasm-probe/probe"
)

// logLevelEnv selects the log level: debug, info, warn or error.
const logLevelEnv = "WASMPROBE_LOG"

// Exit codes. Guest traps and fuel exhaustion are reported in the artifacts
// and exit with exitOK.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wasmprobe", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file, fn string
	fs.StringVar(&file, "file", "", "Path to the WebAssembly module")
	fs.StringVar(&file, "f", "", "Shorthand for -file")
	fs.StringVar(&fn, "func", "", "Exported nullary function to run")
	fs.StringVar(&fn, "x", "", "Shorthand for -func")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if file == "" || fn == "" || fs.NArg() > 0 {
		fmt.Fprintln(stderr, "Usage: wasmprobe -f <module.wasm> -x <function>")
		return exitUsage
	}

	logger, err := newLogger(stderr, os.Getenv(logLevelEnv), isTerminal(stderr))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer func() { _ = logger.Sync() }()
	engine.SetLogger(logger)

	err = probe.Run(context.Background(), probe.Config{
		File:     file,
		Function: fn,
		Console:  stdout,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newLogger builds the process logger writing to w. Level names are zap's;
// empty means warn.
func newLogger(w io.Writer, level string, color bool) (*zap.Logger, error) {
	lvl := zapcore.WarnLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return nil, fmt.Errorf("%s: %w", logLevelEnv, err)
		}
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	if color {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}
