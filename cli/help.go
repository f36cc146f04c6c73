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

package cli

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"

	"github.com/wifisim/distsweep/logger"
)

const (
	defaultTermWidth = 80
	cmdColumnWidth   = 12
)

// Help renders the console command reference found in README.md.
type Help struct {
	termWidth uint
	commands  map[string]string // full text per command
	summaries map[string]string // first sentence per command
}

var (
	cmdHeaderPattern = regexp.MustCompile("^### .+")
	mdLinkPattern    = regexp.MustCompile(`\[([^\]]+)\]\(#[a-z-]+\)`)
)

//go:embed README.md
var cliHelpFile string

func newHelp() Help {
	h := Help{
		termWidth: defaultTermWidth,
		commands:  make(map[string]string),
		summaries: make(map[string]string),
	}
	h.parse(cliHelpFile)
	h.update()
	return h
}

// update takes the current terminal width into account, if stdout is a terminal.
func (help *Help) update() {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		logger.Debugf("could not get terminal size: %v", err)
		return
	}
	help.termWidth = uint(width)
}

func (help *Help) outputGeneralHelp() string {
	cmds := make([]string, 0, len(help.summaries))
	for k := range help.summaries {
		cmds = append(cmds, k)
	}
	sort.Strings(cmds)

	var sb strings.Builder
	for _, c := range cmds {
		sb.WriteString(fmt.Sprintf("%-*s %s\n", cmdColumnWidth, c, help.summaries[c]))
	}
	sb.WriteString(wordwrap.WrapString("\nFor detailed help per command, use: 'help <command>'\n", help.termWidth))
	return sb.String()
}

func (help *Help) outputCommandHelp(command string) string {
	help.update()
	explanation, ok := help.commands[command]
	if !ok {
		return fmt.Sprintf("%s\n  (Non-existent command.)\n", command)
	}

	var sb strings.Builder
	w := help.termWidth - cmdColumnWidth - 1
	for _, line := range strings.Split(wordwrap.WrapString(explanation, w), "\n") {
		if line == command {
			sb.WriteString(line + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	return sb.String()
}

func (help *Help) parse(md string) {
	activeCmd := ""
	indent := ""
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case line == "```bash":
			line, indent = "\nExample:", "  "
		case line == "```shell":
			line, indent = "\nUsage:", "  "
		case line == "```":
			line, indent = "", ""
		case cmdHeaderPattern.MatchString(line):
			activeCmd = strings.TrimSpace(strings.TrimPrefix(line, "###"))
			help.commands[activeCmd] = activeCmd + "\n"
			help.summaries[activeCmd] = ""
			continue
		}

		if activeCmd == "" {
			continue
		}
		help.commands[activeCmd] += indent + markdownUnquote(line) + "\n"
		if help.summaries[activeCmd] == "" && indent == "" && line != "" {
			summary := line
			if idx := strings.Index(line, "."); idx > 0 {
				summary = line[:idx+1]
			}
			help.summaries[activeCmd] = markdownUnquote(summary)
		}
	}
}

func markdownUnquote(md string) string {
	md = strings.ReplaceAll(md, "\\", "")
	md = strings.ReplaceAll(md, "`", "")
	return mdLinkPattern.ReplaceAllString(md, "$1")
}
