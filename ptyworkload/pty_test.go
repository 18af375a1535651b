package ptyworkload

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRunsCommandAndReadsOutput(t *testing.T) {
	s, err := Start(Options{Command: "/bin/sh", Args: []string{"-c", "echo hello-from-pty"}})
	require.NoError(t, err)
	defer s.Close()

	deadline := time.Now().Add(2 * time.Second)
	var collected strings.Builder
	for time.Now().Before(deadline) {
		b, err := s.ReadOutput()
		require.NoError(t, err)
		collected.Write(b)
		if strings.Contains(collected.String(), "hello-from-pty") {
			break
		}
		select {
		case <-s.Disconnected():
			// one final drain in case the last chunk raced the exit signal
			if b2, _ := s.ReadOutput(); len(b2) > 0 {
				collected.Write(b2)
			}
		default:
		}
	}

	assert.Contains(t, collected.String(), "hello-from-pty")
}

func TestDisconnectedClosesWhenChildExits(t *testing.T) {
	s, err := Start(Options{Command: "/bin/sh", Args: []string{"-c", "exit 0"}})
	require.NoError(t, err)
	defer s.Close()

	select {
	case <-s.Disconnected():
	case <-time.After(2 * time.Second):
		t.Fatal("expected Disconnected to close once the child exits")
	}
}

func TestResizeSucceedsOnRunningSession(t *testing.T) {
	s, err := Start(Options{Command: "/bin/sh", Args: []string{"-c", "sleep 1"}})
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Resize(100, 40))
}
