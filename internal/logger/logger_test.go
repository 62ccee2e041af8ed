package logger_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/studyflash/internal/logger"
)

func newTestLogger(buf *bytes.Buffer, level logger.Level) *logger.Logger {
	return logger.New(
		logger.WithOutput(buf),
		logger.WithLevel(level),
		logger.WithColors(false),
		logger.WithClock(func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }),
	)
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, logger.WARN)

	log.Debug("debug")
	log.Info("info")
	log.Warn("warn %d", 1)
	log.Error("error")

	out := buf.String()
	assert.NotContains(t, out, "debug")
	assert.NotContains(t, out, "info")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "warn 1")
	assert.Contains(t, out, "ERROR")
}

func TestLogger_FieldsAreSortedAndImmutable(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, logger.DEBUG)
	child := base.WithPrefix("svc").WithFields(map[string]any{"zeta": 1, "alpha": "a"}).WithError(errors.New("boom"))

	child.Info("hello")
	base.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "2025-01-02 03:04:05.000 INFO  [svc] "))
	assert.True(t, strings.HasSuffix(lines[0], "hello alpha=a error=boom zeta=1"))
	assert.NotContains(t, lines[1], "alpha=")
	assert.NotContains(t, lines[1], "[svc]")
}

func TestLogger_WithNilError(t *testing.T) {
	log := logger.New()
	assert.Same(t, log, log.WithError(nil))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("warning"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel(" ERROR "))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
	assert.True(t, logger.ValidLevel("warn"))
	assert.False(t, logger.ValidLevel("verbose"))
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, logger.INFO)

	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))

	ctx := logger.NewContext(context.Background(), log)
	assert.Same(t, log, logger.FromContext(ctx))
}
