package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cartly.log")
	logger, closeLog, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.WithField("component", "test").Info("hello")
	logger.Debug("hidden")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "test", entry["component"])
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		development bool
		want        logrus.Level
	}{
		{"default", "", false, logrus.InfoLevel},
		{"development default", "", true, logrus.DebugLevel},
		{"explicit wins", "warn", true, logrus.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, _, err := New(Options{Level: tt.level, Development: tt.development, Output: &buf})
			require.NoError(t, err)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}

	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}
