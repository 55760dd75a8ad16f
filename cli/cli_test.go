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
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/otns-lab/lorasim/logger"
	"github.com/otns-lab/lorasim/progctx"
	"github.com/otns-lab/lorasim/simulation"
	"github.com/otns-lab/lorasim/terrain"
	. "github.com/otns-lab/lorasim/types"
)

func TestParseBytes(t *testing.T) {
	var cmd Command
	assert.NotNil(t, parseBytes([]byte("wrongcmd"), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("load \"terrain.txt\""), &cmd))
	assert.NotNil(t, cmd.Load)
	assert.Equal(t, "terrain.txt", unquote(cmd.Load.Filename))
	assert.NotNil(t, parseBytes([]byte("load"), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("seed 42"), &cmd))
	assert.True(t, cmd.Seed != nil && *cmd.Seed.Val == 42)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("seed"), &cmd))
	assert.True(t, cmd.Seed != nil && cmd.Seed.Val == nil)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("data 5000"), &cmd))
	assert.True(t, cmd.Data != nil && *cmd.Data.Val == 5000)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("maxretx 3"), &cmd))
	assert.True(t, cmd.MaxRetx != nil && *cmd.MaxRetx.Val == 3)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("jitter 1.5"), &cmd))
	assert.True(t, cmd.Jitter != nil && *cmd.Jitter.Val == 1.5)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("jitter 2"), &cmd))
	assert.True(t, cmd.Jitter != nil && *cmd.Jitter.Val == 2)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("bw 250"), &cmd))
	assert.True(t, cmd.Bw != nil && *cmd.Bw.Val == 250)

	assert.True(t, parseBytes([]byte("run"), &cmd) == nil && cmd.Run != nil)
	assert.True(t, parseBytes([]byte("nodes"), &cmd) == nil && cmd.Nodes != nil)
	assert.True(t, parseBytes([]byte("summary"), &cmd) == nil && cmd.Summary != nil)
	assert.True(t, parseBytes([]byte("config"), &cmd) == nil && cmd.Config != nil)
	assert.True(t, parseBytes([]byte("exit"), &cmd) == nil && cmd.Exit != nil)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("loglevel debug"), &cmd))
	assert.True(t, cmd.LogLevel != nil && cmd.LogLevel.Level == "debug")
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("loglevel"), &cmd))
	assert.True(t, cmd.LogLevel != nil && cmd.LogLevel.Level == "")
	assert.NotNil(t, parseBytes([]byte("loglevel loud"), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("help"), &cmd))
	assert.True(t, cmd.Help != nil && cmd.Help.HelpTopic == "")
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("help maxretx"), &cmd))
	assert.True(t, cmd.Help != nil && cmd.Help.HelpTopic == "maxretx")
}

type testRunner struct {
	t   *testing.T
	ctx *progctx.ProgCtx
	rt  *CmdRunner
	out *bytes.Buffer
}

func newTestRunner(t *testing.T) *testRunner {
	ctx := progctx.New(context.Background())
	return &testRunner{
		t:   t,
		ctx: ctx,
		rt:  NewCmdRunner(ctx, simulation.DefaultConfig()),
		out: &bytes.Buffer{},
	}
}

func (tr *testRunner) command(cmdline string) string {
	tr.out.Reset()
	assert.Nil(tr.t, tr.rt.RunCommand(cmdline, tr.out))
	return tr.out.String()
}

func writeTestTerrain(t *testing.T) string {
	ter, err := terrain.Generate(10, 100, 3)
	assert.Nil(t, err)
	fn := filepath.Join(t.TempDir(), "terrain.txt")
	assert.Nil(t, terrain.WriteFile(fn, ter))
	return fn
}

func TestSettings(t *testing.T) {
	tr := newTestRunner(t)

	assert.Equal(t, "Done\n", tr.command("seed 7"))
	assert.Equal(t, "7\nDone\n", tr.command("seed"))
	assert.Equal(t, "Done\n", tr.command("data 800"))
	assert.Equal(t, "800\nDone\n", tr.command("data"))
	assert.Equal(t, "Done\n", tr.command("maxretx 2"))
	assert.Equal(t, "2\nDone\n", tr.command("maxretx"))
	assert.Equal(t, "Done\n", tr.command("jitter 0.5"))
	assert.Equal(t, "0.5\nDone\n", tr.command("jitter"))
	assert.Equal(t, "Done\n", tr.command("bw 500"))
	assert.Equal(t, "500\nDone\n", tr.command("bw"))
	assert.Contains(t, tr.command("bw 300"), "Error: invalid bandwidth")

	assert.Equal(t, int64(7), tr.rt.cfg.Seed)
	assert.Equal(t, 800, tr.rt.cfg.DataBytes)
	assert.Equal(t, 2, tr.rt.cfg.Traffic.MaxRetransmissions)
	assert.Equal(t, 0.5, tr.rt.cfg.Traffic.MaxJitter)
	assert.Equal(t, BW500, tr.rt.cfg.Radio.Bandwidth)

	cfgOut := tr.command("config")
	assert.Contains(t, cfgOut, "seed: 7")
	assert.Contains(t, cfgOut, "data_bytes: 800")
	assert.Contains(t, cfgOut, "max_retransmissions: 2")

	assert.Contains(t, tr.command("wrongcmd"), "Error:")
}

func TestLoadAndRun(t *testing.T) {
	tr := newTestRunner(t)
	fn := writeTestTerrain(t)

	assert.Contains(t, tr.command("run"), "Error: no terrain loaded")
	assert.Contains(t, tr.command("summary"), "Error: no run yet")
	assert.Contains(t, tr.command("load \"/nonexistent/terrain.txt\""), "Error:")

	out := tr.command("load \"" + fn + "\"")
	assert.Contains(t, out, "10 nodes, terrain 100.0m x 100.0m")

	out = tr.command("nodes")
	assert.Contains(t, out, "{id: 1,")
	assert.Contains(t, out, "state: scheduled")
	assert.Contains(t, out, "sf: SF7")

	assert.Nil(t, tr.rt.RunCommand("data 300", tr.out))
	out = tr.command("run")
	assert.Contains(t, out, "PDR:")
	assert.Contains(t, out, "Done\n")
	sum := tr.rt.Summary()
	assert.NotNil(t, sum)
	assert.Equal(t, 10, sum.Nodes)
	assert.Equal(t, "ok", sum.Status)

	assert.Contains(t, tr.command("nodes"), "state: finished")
	assert.Contains(t, tr.command("summary"), sum.RunId)

	// a second run uses a fresh simulation
	tr.command("run")
	assert.NotEqual(t, sum.RunId, tr.rt.Summary().RunId)
	assert.Equal(t, sum.Transmissions, tr.rt.Summary().Transmissions)
}

func TestLogLevelCmd(t *testing.T) {
	tr := newTestRunner(t)
	defer logger.SetLevel(logger.GetLevel())

	assert.Equal(t, "Done\n", tr.command("loglevel warn"))
	assert.Equal(t, logger.WarnLevel, logger.GetLevel())
	assert.Equal(t, "warn\nDone\n", tr.command("loglevel"))
}

func TestHelpCmd(t *testing.T) {
	tr := newTestRunner(t)
	out := tr.command("help")
	for _, c := range []string{"bw", "config", "data", "exit", "help", "jitter", "load", "loglevel",
		"maxretx", "nodes", "run", "seed", "summary"} {
		assert.Contains(t, out, c)
	}
	out = tr.command("help maxretx")
	assert.Contains(t, out, "retransmissions")
	assert.NotContains(t, out, "```")
	assert.Contains(t, tr.command("help nonsense"), "Non-existent command")
}

func TestExitCmd(t *testing.T) {
	tr := newTestRunner(t)
	err := tr.rt.RunCommand("exit", tr.out)
	assert.Equal(t, context.Canceled, err)
	assert.NotNil(t, tr.ctx.Err())

	// commands after exit are ignored
	tr.out.Reset()
	assert.NotNil(t, tr.rt.RunCommand("seed 3", tr.out))
	assert.Equal(t, "", tr.out.String())
}

func TestParseHelpFile(t *testing.T) {
	md := "# title\n\nintro text\n\n### foo\n\nDo foo things. More about foo\non two lines.\n\n" +
		"```shell\nfoo [n]\n```\n\nSecond paragraph.\n\n```bash\n> foo\nDone\n```\n\n### bar\n\nBar.\n"
	cmds := parseHelpFile(md)
	assert.Equal(t, 2, len(cmds))

	foo := cmds["foo"]
	assert.Equal(t, "Do foo things.", foo.summary)
	assert.Equal(t, []string{"foo [n]"}, foo.usage)
	assert.Equal(t, []string{"Do foo things. More about foo on two lines.", "Second paragraph."}, foo.text)
	assert.Equal(t, []string{"> foo", "Done"}, foo.examples)
	assert.Equal(t, "Bar.", cmds["bar"].summary)
}
