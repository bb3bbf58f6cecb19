// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package zap provides a logging.LoggerFactory based on go.uber.org/zap.
package zap

import (
	"github.com/pion/logging"
	"go.uber.org/zap"
)

// Zap is a logging.LeveledLogger based on go.uber.org/zap.
// Trace messages are written at debug level.
type Zap struct {
	logger *zap.SugaredLogger
}

// New creates a LeveledLogger from a zap.Logger.
func New(l *zap.Logger) *Zap {
	return &Zap{logger: l.Sugar()}
}

// Trace logs a trace message
func (l *Zap) Trace(msg string) {
	l.logger.Debug(msg)
}

// Tracef formats and logs a trace message
func (l *Zap) Tracef(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

// Debug logs a debug message
func (l *Zap) Debug(msg string) {
	l.logger.Debug(msg)
}

// Debugf formats and logs a debug message
func (l *Zap) Debugf(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

// Info logs an info message
func (l *Zap) Info(msg string) {
	l.logger.Info(msg)
}

// Infof formats and logs an info message
func (l *Zap) Infof(format string, args ...interface{}) {
	l.logger.Infof(format, args...)
}

// Warn logs a warning
func (l *Zap) Warn(msg string) {
	l.logger.Warn(msg)
}

// Warnf formats and logs a warning
func (l *Zap) Warnf(format string, args ...interface{}) {
	l.logger.Warnf(format, args...)
}

// Error logs an error
func (l *Zap) Error(msg string) {
	l.logger.Error(msg)
}

// Errorf formats and logs an error
func (l *Zap) Errorf(format string, args ...interface{}) {
	l.logger.Errorf(format, args...)
}

// Factory creates one named Zap logger per scope.
type Factory struct {
	logger *zap.Logger
}

// NewFactory creates a Factory whose loggers are children of l.
func NewFactory(l *zap.Logger) *Factory {
	return &Factory{logger: l}
}

// NewLogger implements logging.LoggerFactory.
func (f *Factory) NewLogger(scope string) logging.LeveledLogger {
	return New(f.logger.Named(scope))
}
