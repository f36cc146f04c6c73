// Copyright (c) 2026, The DistSweep Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package logger is the process-wide leveled logger. Messages carry a time
// prefix taken from the simulation clock when one is installed, and are
// written through zap.
package logger

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Level orders verbosity; a message is emitted when its Level is at most the
// current one.
type Level int8

const (
	MicroLevel   Level = 7
	TraceLevel   Level = 6
	DebugLevel   Level = 5
	InfoLevel    Level = 4
	NoteLevel    Level = 3
	WarnLevel    Level = 2
	ErrorLevel   Level = 1
	PanicLevel   Level = 0
	FatalLevel   Level = -1
	OffLevel     Level = -2
	DefaultLevel       = InfoLevel
)

// TimeSource supplies the simulated time used in the message prefix.
type TimeSource interface {
	Now() time.Duration
}

// StdoutCallback is notified after a log line has overwritten an interactive
// prompt on the terminal.
type StdoutCallback interface {
	OnStdout()
}

const clearLine = "\033[2K\r"

type sink struct {
	mu       sync.Mutex
	level    Level
	outputs  []string
	zl       *zap.Logger
	clock    TimeSource
	prompt   StdoutCallback
	terminal bool
}

var std = newSink()

func newSink() *sink {
	s := &sink{
		level:    DefaultLevel,
		outputs:  []string{"stderr"},
		terminal: term.IsTerminal(int(os.Stdout.Fd())),
	}
	if err := s.rebuild(); err != nil {
		panic(err)
	}
	return s
}

func (s *sink) rebuild() error {
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.DebugLevel),
		Encoding:         "console",
		OutputPaths:      s.outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:  "message",
			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,
			EncodeTime:  zapcore.ISO8601TimeEncoder,
		},
	}
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	if s.zl != nil {
		_ = s.zl.Sync()
	}
	s.zl = zl
	return nil
}

func (s *sink) enabled(lv Level) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lv <= s.level
}

func (s *sink) write(lv Level, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminal {
		_, _ = fmt.Fprint(os.Stdout, clearLine)
	}
	s.zl.Log(toZap(lv), s.prefix()+msg)
	if s.terminal && s.prompt != nil {
		s.prompt.OnStdout()
	}
}

func (s *sink) prefix() string {
	if s.clock == nil {
		return time.Now().Format("2006-01-02 15:04:05.000") + " - "
	}
	return fmt.Sprintf("%11.6f - ", s.clock.Now().Seconds())
}

// toZap folds the finer levels onto the nearest zap level.
func toZap(lv Level) zapcore.Level {
	switch {
	case lv >= DebugLevel:
		return zapcore.DebugLevel
	case lv >= NoteLevel:
		return zapcore.InfoLevel
	case lv == WarnLevel:
		return zapcore.WarnLevel
	case lv == ErrorLevel:
		return zapcore.ErrorLevel
	case lv == PanicLevel:
		return zapcore.PanicLevel
	default:
		return zapcore.FatalLevel
	}
}

func SetLevel(lv Level) {
	std.mu.Lock()
	std.level = lv
	std.mu.Unlock()
}

func GetLevel() Level {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.level
}

// SetTimeSource installs the clock for message prefixes; nil restores wall
// clock time.
func SetTimeSource(ts TimeSource) {
	std.mu.Lock()
	std.clock = ts
	std.mu.Unlock()
}

func SetStdoutCallback(cb StdoutCallback) {
	std.mu.Lock()
	std.prompt = cb
	std.mu.Unlock()
}

// SetOutput redirects log output to the given zap sink URLs or file paths.
func SetOutput(outputs []string) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.outputs = outputs
	if err := std.rebuild(); err != nil {
		panic(err)
	}
}

func timePrefix() string {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.prefix()
}

func format(template string, args []interface{}) string {
	switch {
	case len(args) == 0:
		return template
	case template != "":
		return fmt.Sprintf(template, args...)
	}
	if str, ok := args[0].(string); ok && len(args) == 1 {
		return str
	}
	return fmt.Sprint(args...)
}

// Logf emits a message at the given level if that level is enabled.
func Logf(lv Level, template string, args []interface{}) {
	if !std.enabled(lv) {
		return
	}
	std.write(lv, format(template, args))
}

func Tracef(template string, args ...interface{}) { Logf(TraceLevel, template, args) }
func Debugf(template string, args ...interface{}) { Logf(DebugLevel, template, args) }
func Infof(template string, args ...interface{})  { Logf(InfoLevel, template, args) }
func Notef(template string, args ...interface{})  { Logf(NoteLevel, template, args) }
func Warnf(template string, args ...interface{})  { Logf(WarnLevel, template, args) }
func Errorf(template string, args ...interface{}) { Logf(ErrorLevel, template, args) }

// TraceError logs the current goroutine stack followed by the message.
func TraceError(template string, args ...interface{}) {
	Errorf("%s", debug.Stack())
	Errorf(template, args...)
}

// Panicf logs regardless of level, then panics with the message.
func Panicf(template string, args ...interface{}) {
	msg := format(template, args)
	std.write(PanicLevel, msg)
	panic(msg)
}

// Fatalf logs regardless of level, then exits the process.
func Fatalf(template string, args ...interface{}) {
	std.write(FatalLevel, format(template, args))
	os.Exit(1)
}

// PanicIfError panics when err is non-nil. Extra args replace the error text.
func PanicIfError(err error, args ...interface{}) {
	if err == nil {
		return
	}
	if len(args) > 0 {
		Panicf("", args...)
	}
	Panicf("%v", err)
}

// panicReporter turns testify assertion failures into panics.
type panicReporter struct{}

func (panicReporter) Errorf(template string, args ...interface{}) {
	Panicf(template, args...)
}

func AssertNil(object interface{}, msgAndArgs ...interface{}) bool {
	return assert.Nil(panicReporter{}, object, msgAndArgs...)
}

func AssertNotNil(object interface{}, msgAndArgs ...interface{}) bool {
	return assert.NotNil(panicReporter{}, object, msgAndArgs...)
}

func AssertTrue(value bool, msgAndArgs ...interface{}) bool {
	return assert.True(panicReporter{}, value, msgAndArgs...)
}

func AssertFalse(value bool, msgAndArgs ...interface{}) bool {
	return assert.False(panicReporter{}, value, msgAndArgs...)
}

func AssertTruef(value bool, template string, args ...interface{}) bool {
	return assert.Truef(panicReporter{}, value, template, args...)
}
