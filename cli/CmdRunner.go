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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/otns-lab/lorasim/logger"
	"github.com/otns-lab/lorasim/progctx"
	"github.com/otns-lab/lorasim/simulation"
	"github.com/otns-lab/lorasim/terrain"
	. "github.com/otns-lab/lorasim/types"
)

const (
	Prompt = "> "
)

type CommandContext struct {
	*Command
	rt     *CmdRunner
	err    error
	output io.Writer
}

func (cc *CommandContext) outputStr(msg string) {
	_, _ = fmt.Fprint(cc.output, msg)
}

func (cc *CommandContext) outputf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cc.output, format, args...)
}

func (cc *CommandContext) errorf(format string, args ...interface{}) {
	cc.error(errors.Errorf(format, args...))
}

func (cc *CommandContext) error(err error) {
	if err != nil {
		if cc.err != nil { // if previous error, print it now and keep the last.
			cc.outputf("Error: %s\n", cc.err)
		}
		cc.err = err
	}
}

// Err returns the last error that occurred during command execution.
func (cc *CommandContext) Err() error {
	return cc.err
}

func (cc *CommandContext) outputItemsAsYaml(items interface{}) {
	var itemsYaml yaml.Node

	err := itemsYaml.Encode(items)
	logger.PanicIfError(err)

	for _, content := range itemsYaml.Content {
		content.Style = yaml.FlowStyle
	}

	data, err := yaml.Marshal(&itemsYaml)
	logger.PanicIfError(err)

	_, err = cc.output.Write(data)
	logger.PanicIfError(err)
}

// CmdRunner executes console commands against the current run configuration.
type CmdRunner struct {
	ctx         *progctx.ProgCtx
	cfg         *simulation.Config
	terrain     *terrain.Terrain
	terrainFile string
	sim         *simulation.Simulation
	simRan      bool
	summary     *simulation.Summary
	help        Help
}

func NewCmdRunner(ctx *progctx.ProgCtx, cfg *simulation.Config) *CmdRunner {
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	return &CmdRunner{
		ctx:  ctx,
		cfg:  cfg.Clone(),
		help: newHelp(),
	}
}

// LoadTerrain reads the terrain file used by the following runs.
func (rt *CmdRunner) LoadTerrain(fn string) error {
	ter, err := terrain.ReadFile(fn)
	if err != nil {
		return err
	}
	rt.terrain = ter
	rt.terrainFile = fn
	rt.configChanged()
	return nil
}

func (rt *CmdRunner) RunCommand(cmdline string, output io.Writer) error {
	if rt.ctx.Err() == nil {
		cmd := Command{}

		if err := parseBytes([]byte(cmdline), &cmd); err != nil {
			if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
				return err
			}
		} else {
			rt.execute(&cmd, output)
		}
	}
	return rt.ctx.Err()
}

func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	return rt.RunCommand(cmdline, output)
}

func (rt *CmdRunner) GetPrompt() string {
	return Prompt
}

// Summary returns the summary of the latest run, or nil.
func (rt *CmdRunner) Summary() *simulation.Summary {
	return rt.summary
}

func (rt *CmdRunner) execute(cmd *Command, output io.Writer) {
	cc := &CommandContext{
		Command: cmd,
		rt:      rt,
		output:  output,
	}

	defer func() {
		if cc.Err() != nil {
			cc.outputf("Error: %v\n", cc.Err())
		} else {
			cc.outputf("Done\n")
		}
	}()

	defer func() {
		rerr := recover()

		if rerr != nil {
			logger.TraceError("command %#v panicked: %v", cmd, rerr)
			if err, ok := rerr.(error); ok {
				cc.err = errors.Wrapf(err, "panic: %v", err)
			} else {
				cc.err = errors.Errorf("panic: %v", rerr)
			}
		}
	}()

	if cmd.Bw != nil {
		rt.executeBw(cc, cmd.Bw)
	} else if cmd.Config != nil {
		rt.executeConfig(cc)
	} else if cmd.Data != nil {
		rt.executeData(cc, cmd.Data)
	} else if cmd.Exit != nil {
		rt.executeExit(cc)
	} else if cmd.Help != nil {
		rt.executeHelp(cc, cmd.Help)
	} else if cmd.Jitter != nil {
		rt.executeJitter(cc, cmd.Jitter)
	} else if cmd.Load != nil {
		rt.executeLoad(cc, cmd.Load)
	} else if cmd.LogLevel != nil {
		rt.executeLogLevel(cc, cmd.LogLevel)
	} else if cmd.MaxRetx != nil {
		rt.executeMaxRetx(cc, cmd.MaxRetx)
	} else if cmd.Nodes != nil {
		rt.executeNodes(cc)
	} else if cmd.Run != nil {
		rt.executeRun(cc)
	} else if cmd.Seed != nil {
		rt.executeSeed(cc, cmd.Seed)
	} else if cmd.Summary != nil {
		rt.executeSummary(cc)
	} else {
		logger.Panicf("unimplemented command: %#v", cmd)
	}
}

// configChanged discards a simulation prepared for the previous settings.
func (rt *CmdRunner) configChanged() {
	rt.sim = nil
	rt.simRan = false
}

func (rt *CmdRunner) executeLoad(cc *CommandContext, cmd *LoadCmd) {
	fn := unquote(cmd.Filename)
	if err := rt.LoadTerrain(fn); err != nil {
		cc.error(err)
		return
	}
	cc.outputf("%d nodes, terrain %.1fm x %.1fm\n", rt.terrain.NumNodes(), rt.terrain.Side, rt.terrain.Side)
}

func (rt *CmdRunner) executeSeed(cc *CommandContext, cmd *SeedCmd) {
	if cmd.Val == nil {
		cc.outputf("%d\n", rt.cfg.Seed)
		return
	}
	rt.cfg.Seed = *cmd.Val
	rt.configChanged()
}

func (rt *CmdRunner) executeData(cc *CommandContext, cmd *DataCmd) {
	if cmd.Val == nil {
		cc.outputf("%d\n", rt.cfg.DataBytes)
		return
	}
	rt.cfg.DataBytes = *cmd.Val
	rt.configChanged()
}

func (rt *CmdRunner) executeMaxRetx(cc *CommandContext, cmd *MaxRetxCmd) {
	if cmd.Val == nil {
		cc.outputf("%d\n", rt.cfg.Traffic.MaxRetransmissions)
		return
	}
	rt.cfg.Traffic.MaxRetransmissions = *cmd.Val
	rt.configChanged()
}

func (rt *CmdRunner) executeJitter(cc *CommandContext, cmd *JitterCmd) {
	if cmd.Val == nil {
		cc.outputf("%g\n", rt.cfg.Traffic.MaxJitter)
		return
	}
	if *cmd.Val < 0 {
		cc.errorf("jitter must not be negative: %g", *cmd.Val)
		return
	}
	rt.cfg.Traffic.MaxJitter = *cmd.Val
	rt.configChanged()
}

func (rt *CmdRunner) executeBw(cc *CommandContext, cmd *BwCmd) {
	if cmd.Val == nil {
		cc.outputf("%d\n", int(rt.cfg.Radio.Bandwidth))
		return
	}
	bw, err := ParseBandwidth(*cmd.Val)
	if err != nil {
		cc.error(err)
		return
	}
	rt.cfg.Radio.Bandwidth = bw
	rt.configChanged()
}

// prepare builds a simulation for the current settings, unless one is prepared already.
func (rt *CmdRunner) prepare() (*simulation.Simulation, error) {
	if rt.terrain == nil {
		return nil, errors.Errorf("no terrain loaded, use 'load \"<file>\"' first")
	}
	if rt.sim == nil {
		sim, err := simulation.NewSimulation(rt.ctx, rt.cfg, rt.terrain, nil)
		if err != nil {
			return nil, err
		}
		rt.sim = sim
	}
	return rt.sim, nil
}

func (rt *CmdRunner) executeRun(cc *CommandContext) {
	if rt.simRan {
		rt.configChanged()
	}
	sim, err := rt.prepare()
	if err != nil {
		cc.error(err)
		return
	}
	summary, err := sim.Run()
	rt.simRan = true
	rt.summary = summary
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputf("%s\n", summary.String())
}

func (rt *CmdRunner) executeNodes(cc *CommandContext) {
	sim, err := rt.prepare()
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputItemsAsYaml(sim.Nodes())
}

func (rt *CmdRunner) executeSummary(cc *CommandContext) {
	if rt.summary == nil {
		cc.errorf("no run yet, use 'run' first")
		return
	}
	cc.outputf("%s\n", rt.summary.String())
}

func (rt *CmdRunner) executeConfig(cc *CommandContext) {
	data, err := rt.cfg.Yaml()
	if err != nil {
		cc.error(err)
		return
	}
	if rt.terrainFile != "" {
		cc.outputf("# terrain: %s\n", rt.terrainFile)
	}
	cc.outputStr(string(data))
}

func (rt *CmdRunner) executeLogLevel(cc *CommandContext, cmd *LogLevelCmd) {
	if cmd.Level == "" {
		cc.outputf("%v\n", logger.GetLevelString(logger.GetLevel()))
		return
	}
	lv, err := logger.ParseLevelString(cmd.Level)
	if err != nil {
		cc.error(err)
		return
	}
	logger.SetLevel(lv)
}

func (rt *CmdRunner) executeHelp(cc *CommandContext, cmd *HelpCmd) {
	if len(cmd.HelpTopic) == 0 {
		cc.outputStr(rt.help.outputGeneralHelp())
	} else {
		cc.outputStr(rt.help.outputCommandHelp(cmd.HelpTopic))
	}
}

func (rt *CmdRunner) executeExit(cc *CommandContext) {
	rt.ctx.Cancel("exit")
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, "\"") && strings.HasSuffix(s, "\"") {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	return s
}
