package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TruncatesOversizeLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")
	oversized := make([]byte, maxLogSize+1)
	require.NoError(t, os.WriteFile(path, oversized, 0o644))

	logger, err := New(path)
	require.NoError(t, err)
	logger.Info().Msg("started")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(maxLogSize))
}

func TestNew_KeepsSmallLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")
	require.NoError(t, os.WriteFile(path, []byte("previous line\n"), 0o644))

	_, err := New(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "previous line")
}

func TestNew_NoFile(t *testing.T) {
	_, err := New("")
	assert.NoError(t, err)
}
