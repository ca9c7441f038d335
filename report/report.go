// Package report writes the execution log and opcode vector artifacts and
// mirrors them to the console.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-probe/engine"
	probeerrors "github.com/wippyai/wasm-probe/errors"
	"github.com/wippyai/wasm-probe/opcodes"
)

// Artifact file names, relative to Emitter.Dir.
const (
	LogFile    = "execution_log.json"
	VectorFile = "opcode_vector.json"
)

// ExecutionLog is the persisted record of one run. Field order is the
// artifact's key order.
type ExecutionLog struct {
	File         string  `json:"file"`
	Function     string  `json:"function"`
	Success      bool    `json:"success"`
	DurationMS   uint64  `json:"duration_ms"`
	ErrorMessage *string `json:"error_message"`
}

// NewExecutionLog derives the log from an execution outcome.
// ErrorMessage is nil exactly when the run succeeded.
func NewExecutionLog(file, function string, out engine.Outcome) ExecutionLog {
	log := ExecutionLog{
		File:       file,
		Function:   function,
		Success:    out.Success(),
		DurationMS: uint64(out.Duration.Milliseconds()),
	}
	if !log.Success {
		msg := out.Message
		if msg == "" {
			msg = "unknown error"
		}
		log.ErrorMessage = &msg
	}
	return log
}

var (
	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#90EE90"))

	failureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	headerStyle = lipgloss.NewStyle().
			Underline(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))
)

// Emitter persists artifacts into Dir and prints the summary to Console.
type Emitter struct {
	Console io.Writer
	Logger  *zap.Logger
	Dir     string
}

// Emit writes both artifacts, then the summary line and the opcode tally.
// Each artifact is written to a temporary file and renamed into place, so
// an existing artifact is either fully replaced or left untouched.
func (e Emitter) Emit(log ExecutionLog, v opcodes.Vector) error {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	zl := e.Logger
	if zl == nil {
		zl = zap.NewNop()
	}

	if err := writeJSON(dir, LogFile, log); err != nil {
		return err
	}
	if err := writeJSON(dir, VectorFile, v); err != nil {
		return err
	}
	zl.Debug("artifacts written", zap.String("dir", dir), zap.Int("labels", len(v)))

	if e.Console == nil {
		return nil
	}
	if err := e.print(log, v); err != nil {
		return probeerrors.New(probeerrors.PhaseEmit, probeerrors.KindIO).
			Detail("write console summary").
			Cause(err).
			Build()
	}
	return nil
}

func (e Emitter) print(log ExecutionLog, v opcodes.Vector) error {
	r := lipgloss.NewRenderer(e.Console)
	w := &consoleWriter{w: e.Console}

	if log.Success {
		w.println(successStyle.Renderer(r).Render(
			fmt.Sprintf("Plugin executed successfully in %d ms", log.DurationMS)))
	} else {
		w.println(failureStyle.Renderer(r).Render(
			fmt.Sprintf("Plugin execution failed in %d ms: %s", log.DurationMS, *log.ErrorMessage)))
	}

	w.println("")
	w.println(headerStyle.Renderer(r).Render("Opcode Frequency Vector:"))
	label := labelStyle.Renderer(r)
	for _, entry := range v.Sorted() {
		w.println(fmt.Sprintf("  %s: %d", label.Render(entry.Label), entry.Count))
	}
	w.println("Saved vector to " + VectorFile)
	return w.err
}

type consoleWriter struct {
	w   io.Writer
	err error
}

func (c *consoleWriter) println(s string) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintln(c.w, s)
}

func writeJSON(dir, name string, v any) error {
	path := filepath.Join(dir, name)
	fail := func(err error) error {
		return probeerrors.IO(probeerrors.PhaseEmit, path, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fail(err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fail(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fail(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(err)
	}
	return nil
}

// ReadExecutionLog parses an execution log artifact.
func ReadExecutionLog(path string) (ExecutionLog, error) {
	var log ExecutionLog
	if err := readJSON(path, &log); err != nil {
		return ExecutionLog{}, err
	}
	return log, nil
}

// ReadVector parses an opcode vector artifact.
func ReadVector(path string) (opcodes.Vector, error) {
	v := make(opcodes.Vector)
	if err := readJSON(path, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return probeerrors.IO(probeerrors.PhaseRead, path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return probeerrors.New(probeerrors.PhaseRead, probeerrors.KindDecode).
			Path(path).
			Cause(err).
			Build()
	}
	return nil
}
