package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo)

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l.Info("project created", "projectId", "p1")
	assert.Contains(t, buf.String(), "project created")
	assert.Contains(t, buf.String(), "p1")
}
