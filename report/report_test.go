package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/wasm-probe/engine"
	probeerrors "github.com/wippyai/wasm-probe/errors"
	"github.com/wippyai/wasm-probe/opcodes"
)

func TestNewExecutionLog(t *testing.T) {
	tests := []struct {
		name    string
		out     engine.Outcome
		msg     *string
		success bool
		ms      uint64
	}{
		{
			name:    "success",
			out:     engine.Outcome{Status: engine.StatusSuccess, Duration: 1500 * time.Microsecond},
			success: true,
			ms:      1,
		},
		{
			name: "exhausted",
			out:  engine.Outcome{Status: engine.StatusExhausted, Message: engine.ExhaustedMessage, Duration: 12 * time.Millisecond},
			msg:  ptr(engine.ExhaustedMessage),
			ms:   12,
		},
		{
			name: "failed without message",
			out:  engine.Outcome{Status: engine.StatusFailed},
			msg:  ptr("unknown error"),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log := NewExecutionLog("a.wasm", "run", tc.out)
			assert.Equal(t, "a.wasm", log.File)
			assert.Equal(t, "run", log.Function)
			assert.Equal(t, tc.success, log.Success)
			assert.Equal(t, tc.ms, log.DurationMS)
			assert.Equal(t, tc.msg, log.ErrorMessage)
		})
	}
}

func TestEmit_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	log := NewExecutionLog("plugin.wasm", "run", engine.Outcome{
		Status:   engine.StatusTrapped,
		Message:  "wasm error: unreachable",
		Duration: 3 * time.Millisecond,
	})
	vec := opcodes.Vector{"i32.const": 3, "i32.add": 2, "end": 1}

	require.NoError(t, Emitter{Dir: dir}.Emit(log, vec))

	gotLog, err := ReadExecutionLog(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Equal(t, log, gotLog)

	gotVec, err := ReadVector(filepath.Join(dir, VectorFile))
	require.NoError(t, err)
	assert.Equal(t, vec, gotVec)

	info, err := os.Stat(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temporary files must not be left behind")
}

func TestEmit_NullErrorMessage(t *testing.T) {
	dir := t.TempDir()
	log := NewExecutionLog("ok.wasm", "run", engine.Outcome{Status: engine.StatusSuccess})
	require.NoError(t, Emitter{Dir: dir}.Emit(log, opcodes.Vector{}))

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"file": "ok.wasm",
		"function": "run",
		"success": true,
		"duration_ms": 0,
		"error_message": null
	}`, string(data))
	assert.Contains(t, string(data), "\n  \"file\"", "two-space indentation")

	data, err = os.ReadFile(filepath.Join(dir, VectorFile))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestEmit_Overwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, VectorFile), []byte("stale"), 0o600))

	require.NoError(t, Emitter{Dir: dir}.Emit(
		NewExecutionLog("m", "f", engine.Outcome{}),
		opcodes.Vector{"nop": 1},
	))

	v, err := ReadVector(filepath.Join(dir, VectorFile))
	require.NoError(t, err)
	assert.Equal(t, opcodes.Vector{"nop": 1}, v)
}

func TestEmit_Console(t *testing.T) {
	var out bytes.Buffer
	log := NewExecutionLog("m.wasm", "run", engine.Outcome{
		Status:   engine.StatusExhausted,
		Message:  engine.ExhaustedMessage,
		Duration: 7 * time.Millisecond,
	})
	vec := opcodes.Vector{"i32.add": 2, "i32.const": 3, "i32.mul": 1}

	require.NoError(t, Emitter{Dir: t.TempDir(), Console: &out}.Emit(log, vec))
	assert.Equal(t,
		"Plugin execution failed in 7 ms: execution failed: all fuel consumed\n"+
			"\n"+
			"Opcode Frequency Vector:\n"+
			"  i32.const: 3\n"+
			"  i32.add: 2\n"+
			"  i32.mul: 1\n"+
			"Saved vector to opcode_vector.json\n",
		out.String())
}

func TestEmit_ConsoleSuccess(t *testing.T) {
	var out bytes.Buffer
	log := NewExecutionLog("m.wasm", "run", engine.Outcome{Status: engine.StatusSuccess, Duration: 2 * time.Millisecond})

	require.NoError(t, Emitter{Dir: t.TempDir(), Console: &out}.Emit(log, opcodes.Vector{}))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("Plugin executed successfully in 2 ms\n")))
}

func TestEmit_UnwritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	err := Emitter{Dir: dir}.Emit(NewExecutionLog("m", "f", engine.Outcome{}), opcodes.Vector{})
	require.Error(t, err)
	assert.True(t, probeerrors.IsKind(err, probeerrors.KindIO))
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadExecutionLog(filepath.Join(dir, "absent.json"))
	assert.True(t, probeerrors.IsKind(err, probeerrors.KindIO))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = ReadVector(bad)
	assert.True(t, probeerrors.IsKind(err, probeerrors.KindDecode))
}

func ptr(s string) *string { return &s }
