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
	"github.com/alecthomas/participle"
)

// noinspection GoStructTag
type Command struct {
	Bw       *BwCmd       `  @@` //nolint
	Config   *ConfigCmd   `| @@` //nolint
	Data     *DataCmd     `| @@` //nolint
	Exit     *ExitCmd     `| @@` //nolint
	Help     *HelpCmd     `| @@` //nolint
	Jitter   *JitterCmd   `| @@` //nolint
	Load     *LoadCmd     `| @@` //nolint
	LogLevel *LogLevelCmd `| @@` //nolint
	MaxRetx  *MaxRetxCmd  `| @@` //nolint
	Nodes    *NodesCmd    `| @@` //nolint
	Run      *RunCmd      `| @@` //nolint
	Seed     *SeedCmd     `| @@` //nolint
	Summary  *SummaryCmd  `| @@` //nolint
}

// noinspection GoStructTag
type LoadCmd struct {
	Cmd      struct{} `"load"`   //nolint
	Filename string   `@String` //nolint
}

// noinspection GoStructTag
type SeedCmd struct {
	Cmd struct{} `"seed"`    //nolint
	Val *int64   `[ @Int ]` //nolint
}

// noinspection GoStructTag
type DataCmd struct {
	Cmd struct{} `"data"`    //nolint
	Val *int     `[ @Int ]` //nolint
}

// noinspection GoStructTag
type MaxRetxCmd struct {
	Cmd struct{} `"maxretx"` //nolint
	Val *int     `[ @Int ]`  //nolint
}

// noinspection GoStructTag
type JitterCmd struct {
	Cmd struct{} `"jitter"`          //nolint
	Val *float64 `[ (@Int|@Float) ]` //nolint
}

// noinspection GoStructTag
type BwCmd struct {
	Cmd struct{} `"bw"`      //nolint
	Val *int     `[ @Int ]` //nolint
}

// noinspection GoStructTag
type RunCmd struct {
	Cmd struct{} `"run"` //nolint
}

// noinspection GoStructTag
type NodesCmd struct {
	Cmd struct{} `"nodes"` //nolint
}

// noinspection GoStructTag
type SummaryCmd struct {
	Cmd struct{} `"summary"` //nolint
}

// noinspection GoStructTag
type ConfigCmd struct {
	Cmd struct{} `"config"` //nolint
}

// noinspection GoStructTag
type LogLevelCmd struct {
	Cmd   struct{} `"loglevel"`                                                                                //nolint
	Level string   `[@( "micro"|"trace"|"debug"|"info"|"note"|"warn"|"error"|"off"|"T"|"D"|"I"|"N"|"W"|"E" )]` //nolint
}

// noinspection GoStructTag
type HelpCmd struct {
	Cmd       struct{} `"help"`       //nolint
	HelpTopic string   `[ (@Ident) ]` //nolint
}

// noinspection GoStructTag
type ExitCmd struct {
	Cmd struct{} `"exit"` //nolint
}

var (
	commandParser = participle.MustBuild(&Command{})
)

func parseBytes(b []byte, cmd *Command) error {
	err := commandParser.ParseBytes(b, cmd)
	return err
}
