package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInitializeWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(Config{Level: "info", Format: "json"}, &buf)
	defer InitializeDefault()

	Debug("hidden")
	ForTier("VII").Info("searched", zap.Int("evaluated", 32))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"tier":"VII"`)
	assert.Contains(t, out, `"evaluated":32`)
}

func TestUnknownLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(Config{Level: "loud", Format: "json"}, &buf)
	defer InitializeDefault()

	Info("quiet")
	Warn("shown")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "shown")
}
