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

package logger

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	OffLevelString     = "off"
	NoneLevelString    = "none"
	DefaultLevelString = "default"
)

// levelNames lists the canonical name of each level first, then its aliases.
var levelNames = map[Level][]string{
	MicroLevel: {"micro"},
	TraceLevel: {"trace", "T"},
	DebugLevel: {"debug", "D"},
	InfoLevel:  {"info", "I"},
	NoteLevel:  {"note", "N"},
	WarnLevel:  {"warn", "warning", "W"},
	ErrorLevel: {"crit", "critical", "error", "err", "C", "E"},
	OffLevel:   {OffLevelString, NoneLevelString},
}

var levelByName = func() map[string]Level {
	m := map[string]Level{DefaultLevelString: DefaultLevel, "def": DefaultLevel, "": DefaultLevel}
	for lv, names := range levelNames {
		for _, n := range names {
			m[n] = lv
		}
	}
	return m
}()

// ParseLevelString accepts a level name or one of its aliases. Unknown names
// yield DefaultLevel together with an error.
func ParseLevelString(s string) (Level, error) {
	if lv, ok := levelByName[strings.TrimSpace(s)]; ok {
		return lv, nil
	}
	return DefaultLevel, errors.Errorf("invalid log level string: %s", s)
}

func GetLevelString(lv Level) string {
	names, ok := levelNames[lv]
	if !ok {
		Panicf("unknown log level: %d", lv)
	}
	return names[0]
}
