package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesLevelFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitLogger(dir))

	LogDebug("debug line %d", 1)
	LogError("error line %d", 2)
	LogRequest("req-1", "GET", "/items", "127.0.0.1", 200, 5*time.Millisecond)
	CloseLogger()

	day := time.Now().Format("2006-01-02")
	read := func(level string) string {
		data, err := os.ReadFile(filepath.Join(dir, level+"-"+day+".log"))
		require.NoError(t, err)
		return string(data)
	}

	assert.Contains(t, read("debug"), "DEBUG: ")
	assert.Contains(t, read("debug"), "debug line 1")
	assert.Contains(t, read("error"), "error line 2")
	assert.Contains(t, read("info"), "Request: GET /items from 127.0.0.1 - Status: 200")
	assert.Contains(t, read("info"), "ID: req-1")

	// closed loggers are silent no-ops
	assert.NotPanics(t, func() { LogInfo("after close") })
}
