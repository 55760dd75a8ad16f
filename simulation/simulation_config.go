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

package simulation

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/otns-lab/lorasim/dispatcher"
	"github.com/otns-lab/lorasim/energy"
	"github.com/otns-lab/lorasim/radiomodel"
)

const (
	DefaultSeed          int64   = 1
	DefaultDataBytes     int     = 2000
	DefaultGatewayHeight float64 = 10.0 // m
)

// ErrInvalidConfig is returned for configurations that can not be simulated.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config is the complete set of parameters of a simulation run.
type Config struct {
	Name          string                      `yaml:"name,omitempty"`
	Seed          int64                       `yaml:"seed"`
	DataBytes     int                         `yaml:"data_bytes"`
	GatewayHeight float64                     `yaml:"gateway_height"`
	Radio         radiomodel.RadioModelParams `yaml:"radio"`
	Traffic       dispatcher.Config           `yaml:"traffic"`
	Energy        energy.EnergyParams         `yaml:"energy"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:          DefaultSeed,
		DataBytes:     DefaultDataBytes,
		GatewayHeight: DefaultGatewayHeight,
		Radio:         *radiomodel.NewRadioModelParams(),
		Traffic:       *dispatcher.DefaultConfig(),
		Energy:        *energy.NewEnergyParams(),
	}
}

// Clone returns a deep copy of the config.
func (cfg *Config) Clone() *Config {
	c := *cfg
	return &c
}

func (cfg *Config) Validate() error {
	if cfg.DataBytes < 0 {
		return errors.Wrapf(ErrInvalidConfig, "data bytes must not be negative: %d", cfg.DataBytes)
	}
	if cfg.GatewayHeight < 0 {
		return errors.Wrapf(ErrInvalidConfig, "gateway height must not be negative: %f", cfg.GatewayHeight)
	}
	if err := cfg.Radio.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "radio: %v", err)
	}
	if err := cfg.Traffic.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "traffic: %v", err)
	}
	if err := cfg.Energy.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "energy: %v", err)
	}
	return nil
}

// Yaml returns the config as a YAML document.
func (cfg *Config) Yaml() ([]byte, error) {
	return yaml.Marshal(cfg)
}
