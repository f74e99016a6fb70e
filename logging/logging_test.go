package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggerIsShared(t *testing.T) {
	assert.Same(t, GetLogger(), GetLogger())
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in       string
		expected logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{" error ", logrus.ErrorLevel},
		{"trace", logrus.TraceLevel},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			lvl, err := ParseLevel(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, lvl)
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestConfigureWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	t.Cleanup(func() {
		_, _ = Configure("info", "")
	})

	closer, err := Configure("debug", path)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())

	GetLogger().Debug("written to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestConfigureInvalidLevel(t *testing.T) {
	closer, err := Configure("chatty", "")
	assert.Error(t, err)
	assert.NotNil(t, closer)
}
