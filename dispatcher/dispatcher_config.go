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

package dispatcher

import (
	"github.com/pkg/errors"
)

const (
	defaultMaxJitter       = 3.0   // seconds
	defaultDutyCycleFactor = 100.0 // 1% duty cycle
	defaultStartWindow     = 100.0 // initial offsets within this many airtimes
)

// Config holds the traffic parameters of the scheduler.
type Config struct {
	// MaxRetransmissions is the number of retries of a failed chunk before it is dropped.
	MaxRetransmissions int `yaml:"max_retransmissions"`
	// MaxJitter is the upper bound (s) of the random delay added when rescheduling.
	MaxJitter float64 `yaml:"max_jitter"`
	// DutyCycleFactor is the off-time after a transmission, in multiples of the SF airtime.
	DutyCycleFactor float64 `yaml:"duty_cycle_factor"`
	// StartWindow bounds the first transmission of each node to [0, StartWindow*airtime).
	StartWindow float64 `yaml:"start_window"`
	// ChargeFailedTx also charges energy for transmissions that did not get through.
	ChargeFailedTx bool `yaml:"charge_failed_tx"`
}

func DefaultConfig() *Config {
	return &Config{
		MaxRetransmissions: 0,
		MaxJitter:          defaultMaxJitter,
		DutyCycleFactor:    defaultDutyCycleFactor,
		StartWindow:        defaultStartWindow,
		ChargeFailedTx:     false,
	}
}

func (cfg *Config) Validate() error {
	if cfg.MaxRetransmissions < 0 {
		return errors.Errorf("max retransmissions must not be negative: %d", cfg.MaxRetransmissions)
	}
	if cfg.MaxJitter < 0 {
		return errors.Errorf("max jitter must not be negative: %f", cfg.MaxJitter)
	}
	if cfg.DutyCycleFactor < 1 {
		return errors.Errorf("duty cycle factor must be at least 1: %f", cfg.DutyCycleFactor)
	}
	if cfg.StartWindow < 0 {
		return errors.Errorf("start window must not be negative: %f", cfg.StartWindow)
	}
	return nil
}
