package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogDir(t *testing.T) {
	dir := DefaultLogDir()
	require.NotEmpty(t, dir)
	assert.Contains(t, dir, ".hcr")
	assert.Contains(t, dir, "logs")
}

func TestDefaultLogPath(t *testing.T) {
	assert.Equal(t, "hcrbench.log", filepath.Base(DefaultLogPath()))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, int64(10<<20), cfg.MaxSizeBytes)
	assert.Equal(t, 5, cfg.MaxBackups)
	assert.True(t, cfg.Stderr)
}

func TestDebugConfig(t *testing.T) {
	assert.Equal(t, "debug", DebugConfig().Level)
}

func TestSetup_WritesJSONRecordsToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger, closer, err := Setup(Config{
		Level:        "debug",
		Path:         logPath,
		MaxSizeBytes: 1 << 20,
		MaxBackups:   3,
		Stderr:       false,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("tree_build_started", "nodes", 12)
	closer()

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"tree_build_started"`)
	assert.Contains(t, string(content), `"nodes":12`)
}

func TestSetup_EmptyPathFallsBackToStderrOnly(t *testing.T) {
	logger, closer, err := Setup(Config{Level: "info"})
	require.NoError(t, err)
	defer closer()
	assert.NotNil(t, logger)
}

func TestLevel_ParsesKnownLevels(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Level(tc.input), "Level(%q)", tc.input)
	}
}

func TestLogFile_RotatesWhenRecordWouldNotFit(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "rotate.log")
	lf, err := openLogFile(logPath, 1024, 3)
	require.NoError(t, err)
	defer lf.Close()

	record := []byte(strings.Repeat("x", 700) + "\n")
	_, err = lf.Write(record)
	require.NoError(t, err)
	_, err = lf.Write(record)
	require.NoError(t, err)

	assert.FileExists(t, logPath)
	assert.FileExists(t, logPath+".1")
}

func TestLogFile_DropsOldestBeyondMaxBackups(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "backups.log")
	lf, err := openLogFile(logPath, 100, 2)
	require.NoError(t, err)
	defer lf.Close()

	record := []byte(strings.Repeat("y", 90) + "\n")
	for i := 0; i < 5; i++ {
		_, err := lf.Write(record)
		require.NoError(t, err)
	}

	assert.FileExists(t, logPath+".1")
	assert.FileExists(t, logPath+".2")
	assert.NoFileExists(t, logPath+".3")
}

func TestLogFile_ZeroLimitDisablesRotation(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nolimit.log")
	lf, err := openLogFile(logPath, 0, 3)
	require.NoError(t, err)
	defer lf.Close()

	record := []byte(strings.Repeat("z", 4096))
	_, err = lf.Write(record)
	require.NoError(t, err)
	_, err = lf.Write(record)
	require.NoError(t, err)

	assert.NoFileExists(t, logPath+".1")
}

func TestLogFile_ResumesSizeFromExistingFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "resume.log")
	require.NoError(t, os.WriteFile(logPath, []byte(strings.Repeat("a", 900)), 0o644))

	lf, err := openLogFile(logPath, 1024, 3)
	require.NoError(t, err)
	defer lf.Close()

	// 900 already on disk; 200 more must rotate first.
	_, err = lf.Write([]byte(strings.Repeat("b", 200)))
	require.NoError(t, err)

	assert.FileExists(t, logPath+".1")
}

func TestLogFile_CloseIsIdempotent(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "close.log")
	lf, err := openLogFile(logPath, 1024, 3)
	require.NoError(t, err)

	_, err = lf.Write([]byte("record\n"))
	require.NoError(t, err)
	require.NoError(t, lf.Close())
	assert.NoError(t, lf.Close())
}

func TestLogFile_ConcurrentWritesAreSerialized(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "concurrent.log")
	lf, err := openLogFile(logPath, 1<<20, 3)
	require.NoError(t, err)
	defer lf.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = lf.Write([]byte(`{"event":"concurrent_write"}` + "\n"))
			}
		}()
	}
	wg.Wait()

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Equal(t, int64(8*50*len(`{"event":"concurrent_write"}`+"\n")), info.Size())
}
