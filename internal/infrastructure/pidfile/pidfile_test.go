package pidfile_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonybot/internal/infrastructure/pidfile"
)

func TestPIDFile_AcquireAndRelease(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "cycle.pid")
	lock := pidfile.New(path)

	// Act
	err := lock.Acquire()

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(data))

	require.NoError(t, lock.Release())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, lock.Release(), "releasing twice is fine")
}

func TestPIDFile_ReplacesStaleFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "cycle.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0644))

	// Act
	err := pidfile.New(path).Acquire()

	// Assert
	assert.NoError(t, err)
}

func TestPIDFile_RefusesLiveHolder(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "cycle.pid")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("%d\n", os.Getppid())), 0644))

	// Act
	err := pidfile.New(path).Acquire()

	// Assert
	assert.True(t, errors.Is(err, pidfile.ErrAlreadyRunning))
}
