// Copyright (c) 2024, The OTNS Authors.
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
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"

	"github.com/otns-lab/lorasim/logger"
)

//go:embed README.md
var cliHelpFile string

const (
	defaultHelpWidth = 80
	helpIndent       = "  "
)

// commandHelp is the help section of one console command, read from the "### <cmd>" part of README.md.
type commandHelp struct {
	name     string
	summary  string   // first sentence of the description
	usage    []string // lines of the shell block
	text     []string // description paragraphs
	examples []string // lines of the bash block
}

// Help renders the console command reference.
type Help struct {
	termWidth uint
	commands  map[string]*commandHelp
}

func newHelp() Help {
	h := Help{
		termWidth: defaultHelpWidth,
		commands:  parseHelpFile(cliHelpFile),
	}
	h.update()
	return h
}

// update adapts the wrap width to the terminal, if stdout is one.
func (help *Help) update() {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < 40 {
		logger.Debugf("terminal size unknown: %v", err)
		return
	}
	help.termWidth = uint(width)
}

func (help *Help) sortedNames() []string {
	names := make([]string, 0, len(help.commands))
	for name := range help.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (help *Help) outputGeneralHelp() string {
	sb := strings.Builder{}
	for _, name := range help.sortedNames() {
		_, _ = fmt.Fprintf(&sb, "%-10s %s\n", name, help.commands[name].summary)
	}
	sb.WriteString(wordwrap.WrapString("\nFor detailed help per command, use: 'help <command>'\n", help.termWidth))
	return sb.String()
}

func (help *Help) outputCommandHelp(name string) string {
	help.update()
	ch, ok := help.commands[name]
	if !ok {
		return fmt.Sprintf("%s: (Non-existent command.)\n", name)
	}

	sb := strings.Builder{}
	sb.WriteString(ch.name + "\n")
	for _, u := range ch.usage {
		sb.WriteString(helpIndent + u + "\n")
	}
	width := help.termWidth - uint(len(helpIndent))
	for _, para := range ch.text {
		sb.WriteString("\n")
		for _, line := range strings.Split(wordwrap.WrapString(para, width), "\n") {
			sb.WriteString(helpIndent + line + "\n")
		}
	}
	if len(ch.examples) > 0 {
		sb.WriteString("\nExample:\n")
		for _, e := range ch.examples {
			sb.WriteString(helpIndent + e + "\n")
		}
	}
	return sb.String()
}

// parseHelpFile splits the Markdown command reference into per-command sections.
func parseHelpFile(md string) map[string]*commandHelp {
	const fence = "```"
	commands := make(map[string]*commandHelp)
	var cur *commandHelp
	var block *[]string // code block being read, if any
	para := ""

	endPara := func() {
		if cur != nil && para != "" {
			cur.text = append(cur.text, para)
			if cur.summary == "" {
				cur.summary = firstSentence(para)
			}
		}
		para = ""
	}

	scanner := bufio.NewScanner(strings.NewReader(md))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")

		if block != nil {
			if line == fence {
				block = nil
			} else {
				*block = append(*block, line)
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "### "):
			endPara()
			cur = &commandHelp{name: strings.TrimSpace(line[4:])}
			commands[cur.name] = cur
		case strings.HasPrefix(line, "#"):
			endPara()
			cur = nil
		case strings.HasPrefix(line, fence):
			endPara()
			var skipped []string
			block = &skipped
			if cur != nil && line == fence+"shell" {
				block = &cur.usage
			} else if cur != nil && line == fence+"bash" {
				block = &cur.examples
			}
		case cur == nil:
		case line == "":
			endPara()
		default:
			if para != "" {
				para += " "
			}
			para += markdownUnquote(strings.TrimSpace(line))
		}
	}
	endPara()
	return commands
}

func firstSentence(s string) string {
	if idx := strings.Index(s, ". "); idx > 0 {
		return s[:idx+1]
	}
	return s
}

func markdownUnquote(md string) string {
	md = strings.ReplaceAll(md, "`", "")
	md = strings.ReplaceAll(md, "\\", "")
	return md
}
