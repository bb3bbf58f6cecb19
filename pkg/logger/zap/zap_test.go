// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package zap

import (
	"testing"

	"github.com/pion/logging"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFactory(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	var factory logging.LoggerFactory = NewFactory(zap.New(core))
	log := factory.NewLogger("datachannel")

	log.Trace("trace")
	log.Debugf("debug %d", 1)
	log.Info("info")
	log.Warnf("warn %s", "x")
	log.Errorf("error %v", true)

	entries := logs.AllUntimed()
	assert.Len(t, entries, 5)

	testCases := []struct {
		level   zapcore.Level
		message string
	}{
		{zapcore.DebugLevel, "trace"},
		{zapcore.DebugLevel, "debug 1"},
		{zapcore.InfoLevel, "info"},
		{zapcore.WarnLevel, "warn x"},
		{zapcore.ErrorLevel, "error true"},
	}

	for i, testCase := range testCases {
		assert.Equal(t, testCase.level, entries[i].Level, "testCase: %d %v", i, testCase)
		assert.Equal(t, testCase.message, entries[i].Message, "testCase: %d %v", i, testCase)
		assert.Equal(t, "datachannel", entries[i].LoggerName, "testCase: %d %v", i, testCase)
	}
}

func TestFactory_LevelFilter(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := NewFactory(zap.New(core)).NewLogger("native")

	log.Trace("dropped")
	log.Debug("dropped")
	log.Infof("dropped %d", 2)
	log.Warn("kept")
	log.Error("kept")

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, 2, logs.FilterMessage("kept").Len())
}
