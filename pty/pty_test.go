package pty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainUntilExit(t *testing.T, events <-chan Event, timeout time.Duration) ([]byte, Event) {
	t.Helper()
	var output []byte
	deadline := time.After(timeout)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("events channel closed before an Exit event was observed")
			}
			switch ev.Kind {
			case EventOutput:
				output = append(output, ev.Output...)
			case EventExit:
				return output, ev
			}
		case <-deadline:
			t.Fatal("timed out waiting for pty session to exit")
		}
	}
}

func TestReadOnlySessionCapturesOutputAndExit(t *testing.T) {
	sess, err := StartReadOnly("/bin/echo", []string{"hello", "pty"}, 24, 80)
	require.NoError(t, err)

	output, exitEv := drainUntilExit(t, sess.Events(), 5*time.Second)

	assert.Contains(t, string(output), "hello pty")
	assert.Equal(t, 0, exitEv.ExitCode)
}

func TestReadOnlySessionExitCodePropagates(t *testing.T) {
	sess, err := StartReadOnly("/bin/sh", []string{"-c", "exit 7"}, 24, 80)
	require.NoError(t, err)

	_, exitEv := drainUntilExit(t, sess.Events(), 5*time.Second)
	assert.Equal(t, 7, exitEv.ExitCode)
}

func TestReadWriteSessionEchoesWrittenInput(t *testing.T) {
	sess, err := StartReadWrite("/bin/cat", nil, 24, 80)
	require.NoError(t, err)

	sess.WriteLine("ping")
	sess.SendControl('D') // EOF, so cat exits

	output, exitEv := drainUntilExit(t, sess.Events(), 5*time.Second)

	assert.Contains(t, string(output), "ping")
	assert.Equal(t, 0, exitEv.ExitCode)
}

func TestSpawnErrorSurfacesSynchronously(t *testing.T) {
	_, err := StartReadOnly("/no/such/binary-xyz", nil, 24, 80)
	require.Error(t, err)
}
