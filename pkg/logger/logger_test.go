package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	closer, err := Init(Options{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = Init(Options{Level: "info", Output: "stdout"})
	})

	Info("被过滤", nil)
	Warn("封面删除失败", errors.New("not found"), map[string]interface{}{"image": "a.png"})
	require.NoError(t, closer.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}

	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "封面删除失败", lines[0]["message"])
	assert.Equal(t, "not found", lines[0]["error"])
	assert.Equal(t, "a.png", lines[0]["image"])
}

func TestInit_DefaultLevel(t *testing.T) {
	_, err := Init(Options{Level: "verbose"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
