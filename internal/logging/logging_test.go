// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/tradedesk/pkg/types"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(types.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("scanned", zap.Int("indexed", 3))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scanned", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 3, entry["indexed"])
	assert.Contains(t, entry, "ts")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(types.LogConfig{Level: "DEBUG", Format: "console"}, &buf)
	require.NoError(t, err)

	logger.Debug("walking", zap.String("root", "configs"))
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "walking")
	assert.Contains(t, buf.String(), `"root": "configs"`)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(types.LogConfig{Level: "loud", Format: "json"}, nil)
	assert.Error(t, err)

	_, err = New(types.LogConfig{Level: "info", Format: "xml"}, nil)
	assert.Error(t, err)
}
