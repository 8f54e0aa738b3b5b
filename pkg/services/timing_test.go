package services

import (
	"errors"
	"testing"
	"time"

	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTimed(t *testing.T) {
	obs, logs := observer.New(zapcore.WarnLevel)
	restore := logger.ReplaceLogger(zap.New(obs))
	defer restore()

	err := Timed("fast", time.Second, func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, 0, logs.Len())

	expected := errors.New("failed")
	err = Timed("slow", time.Millisecond, func() error {
		time.Sleep(5 * time.Millisecond)
		return expected
	})
	assert.Same(t, expected, err)
	if assert.Equal(t, 1, logs.Len()) {
		assert.Contains(t, logs.All()[0].Message, "slow 耗时")
		assert.Equal(t, "slow", logs.All()[0].ContextMap()["name"])
	}
}

func TestTimed_InvalidThreshold(t *testing.T) {
	assert.Panics(t, func() { _ = Timed("x", 0, func() error { return nil }) })
	assert.Panics(t, func() { CheckThreshold("x", -time.Second) })
}
