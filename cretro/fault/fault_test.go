package fault

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFault_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "decode fault includes pc and opcode",
			err:  At(Decode, 0x204, 0x5AB1, "unknown instruction"),
			want: "decode fault at 204 (opcode 5AB1): unknown instruction",
		},
		{
			name: "runtime fault",
			err:  At(Runtime, 0x3FE, 0x2300, "call stack overflow (depth %d)", 16),
			want: "runtime fault at 3FE (opcode 2300): call stack overflow (depth 16)",
		},
		{
			name: "config fault has no machine context",
			err:  New(Config, "debug level %d out of range", 7),
			want: "config fault: debug level 7 out of range",
		},
		{
			name: "wrapped cause is appended",
			err:  Wrap(fs.ErrNotExist, Load, "reading %s", "rom.ch8"),
			want: "load fault: reading rom.ch8: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestFault_As(t *testing.T) {
	err := fmt.Errorf("running: %w", At(Runtime, 0x200, 0x00EE, "return with empty stack"))

	f, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, Runtime, f.Kind)
	assert.Equal(t, uint16(0x200), f.PC)
	assert.Equal(t, uint16(0x00EE), f.Opcode)

	assert.True(t, Is(err, Runtime))
	assert.False(t, Is(err, Decode))
	assert.False(t, Is(fmt.Errorf("plain"), Runtime))
}

func TestFault_UnwrapCause(t *testing.T) {
	err := Wrap(fs.ErrNotExist, Load, "reading rom")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFault_StackTrace(t *testing.T) {
	err := New(Load, "program too large")
	verbose := fmt.Sprintf("%+v", err)
	assert.Contains(t, verbose, "program too large")
	assert.Contains(t, verbose, "fault_test.go")
}
