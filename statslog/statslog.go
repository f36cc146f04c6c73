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

// Package statslog writes the samples of a sweep to a CSV log file.
package statslog

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/wifisim/distsweep/logger"
	"github.com/wifisim/distsweep/sweep"
)

// ErrLogClosed is returned for writes after the log file was closed.
var ErrLogClosed = errors.New("stats log file closed")

// Logger is a sweep.SampleObserver appending one CSV line per sample. Write errors disable the log.
type Logger struct {
	logFile       *os.File
	logFileName   string
	isFileEnabled bool
	entries       int
}

// New creates the log file, replacing an existing one, and writes the header line.
func New(fileName string) (*Logger, error) {
	_ = os.Remove(fileName)
	f, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY, 0664)
	if err != nil {
		return nil, err
	}

	sl := &Logger{
		logFile:       f,
		logFileName:   fileName,
		isFileEnabled: true,
	}
	// RFC 4180 CSV file: no leading or trailing spaces in header field names
	if err = sl.writeToLogFile("timeSec,tick,x,y,z,throughputMbps,powerMw"); err != nil {
		return nil, err
	}
	logger.Debugf("stats log file '%s' created", fileName)
	return sl, nil
}

func (sl *Logger) OnSample(s sweep.Sample) {
	entry := fmt.Sprintf("%.6f,%d,%g,%g,%g,%.6f,%.6g", s.Time.Seconds(), s.Tick, s.Position.X, s.Position.Y,
		s.Position.Z, s.Throughput, s.Power)
	if sl.writeToLogFile(entry) == nil {
		sl.entries++
	}
}

// Entries returns the number of samples written.
func (sl *Logger) Entries() int {
	return sl.entries
}

func (sl *Logger) writeToLogFile(line string) error {
	if !sl.isFileEnabled {
		return ErrLogClosed
	}
	_, err := sl.logFile.WriteString(line + "\n")
	if err != nil {
		logger.Errorf("couldn't write to stats log file (%s), closing it", sl.logFileName)
		sl.Close()
	}
	return err
}

func (sl *Logger) Close() {
	if sl.logFile != nil {
		_ = sl.logFile.Close()
		sl.logFile = nil
		sl.isFileEnabled = false
	}
}
