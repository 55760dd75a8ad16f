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

package radiomodel

import (
	"github.com/pkg/errors"

	. "github.com/otns-lab/lorasim/types"
)

// default radio parameters, for an EU868 uplink at 14 dBm.
const (
	defaultTxPowerDbm       DbValue = 14.0   // transmission power (dBm)
	defaultRefPathLossDb    DbValue = 127.41 // path loss at the reference distance (dB)
	defaultRefDistance      float64 = 40.0   // reference distance (m)
	defaultPathLossExponent float64 = 2.08   // log-distance path loss exponent
	defaultShadowingDb      DbValue = 0.0    // fixed shadowing margin (dB)
	defaultPreambleSymbols  int     = 8
)

// SensitivityTable gives the receiver sensitivity (dBm) per SF (rows SF7..SF12) and
// bandwidth (columns 125, 250, 500 kHz).
type SensitivityTable [NumSpreadingFactor][NumBandwidth]DbValue

func (t *SensitivityTable) Get(sf SpreadingFactor, bw Bandwidth) DbValue {
	return t[sf.Index()][bw.Index()]
}

// PayloadCapTable gives the largest application payload (bytes) per SF (SF7..SF12).
type PayloadCapTable [NumSpreadingFactor]int

func (t *PayloadCapTable) Get(sf SpreadingFactor) int {
	return t[sf.Index()]
}

// RadioModelParams stores model parameters for the LoRa radio model.
type RadioModelParams struct {
	TxPowerDbm        DbValue          `yaml:"tx_power_dbm"`       // transmission power (dBm) of every node
	RefPathLossDb     DbValue          `yaml:"ref_path_loss_db"`   // path loss at RefDistance (dB)
	RefDistance       float64          `yaml:"ref_distance"`       // reference distance (m)
	PathLossExponent  float64          `yaml:"path_loss_exponent"` // exponent of the log-distance model
	ShadowingDb       DbValue          `yaml:"shadowing_db"`       // fixed shadowing margin (dB), added to the path loss
	Bandwidth         Bandwidth        `yaml:"bandwidth"`          // channel bandwidth (kHz)
	CodingRate        CodingRate       `yaml:"coding_rate"`        // 1 (4/5) .. 4 (4/8)
	PreambleSymbols   int              `yaml:"preamble_symbols"`   // programmed preamble length
	Sensitivity       SensitivityTable `yaml:"sensitivity"`        // receiver sensitivity (dBm)
	PayloadCap        PayloadCapTable  `yaml:"payload_cap"`        // max payload (bytes) per SF
	SameSfThresholds  ThresholdMatrix  `yaml:"same_sf_thresholds"` // co-channel capture threshold (dB), diagonal used
	CrossSfThresholds ThresholdMatrix  `yaml:"cross_sf_thresholds"`
}

// DefaultSensitivity is the SX1276 datasheet sensitivity table.
var DefaultSensitivity = SensitivityTable{
	{-123, -120, -116},
	{-126, -123, -119},
	{-129, -125, -122},
	{-132, -128, -125},
	{-134.5, -130, -128},
	{-137, -133, -130},
}

// DefaultPayloadCap is the EU868 maximum payload per data rate.
var DefaultPayloadCap = PayloadCapTable{222, 222, 115, 51, 51, 51}

// NewRadioModelParams gets a new set of parameters with default values, as a basis to configure further.
func NewRadioModelParams() *RadioModelParams {
	return &RadioModelParams{
		TxPowerDbm:        defaultTxPowerDbm,
		RefPathLossDb:     defaultRefPathLossDb,
		RefDistance:       defaultRefDistance,
		PathLossExponent:  defaultPathLossExponent,
		ShadowingDb:       defaultShadowingDb,
		Bandwidth:         BW125,
		CodingRate:        CR4_5,
		PreambleSymbols:   defaultPreambleSymbols,
		Sensitivity:       DefaultSensitivity,
		PayloadCap:        DefaultPayloadCap,
		SameSfThresholds:  DefaultSameSfThresholds,
		CrossSfThresholds: DefaultCrossSfThresholds,
	}
}

// Validate checks that the parameters describe a usable radio model.
func (p *RadioModelParams) Validate() error {
	if _, err := ParseBandwidth(int(p.Bandwidth)); err != nil {
		return err
	}
	if p.CodingRate < CR4_5 || p.CodingRate > CR4_8 {
		return errors.Errorf("invalid coding rate: %d (use 1..4)", p.CodingRate)
	}
	if p.RefDistance <= 0 {
		return errors.Errorf("reference distance must be positive: %f", p.RefDistance)
	}
	if p.PathLossExponent <= 0 {
		return errors.Errorf("path loss exponent must be positive: %f", p.PathLossExponent)
	}
	if p.PreambleSymbols < 0 {
		return errors.Errorf("invalid preamble length: %d", p.PreambleSymbols)
	}
	for i, c := range p.PayloadCap {
		if c <= 0 {
			return errors.Errorf("payload cap of SF%d must be positive: %d", i+int(MinSpreadingFactor), c)
		}
	}
	return nil
}
