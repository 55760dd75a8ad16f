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

package energy

import (
	"github.com/pkg/errors"
)

// default consumption of an SX1276 class radio transmitting at 14 dBm.
const (
	defaultSupplyVoltage float64 = 3.0  // V
	defaultTxCurrentMa   float64 = 44.0 // mA
)

// EnergyParams holds the consumption model of a transmitting node.
type EnergyParams struct {
	SupplyVoltage float64 `yaml:"supply_voltage"` // V
	TxCurrentMa   float64 `yaml:"tx_current_ma"`  // mA
}

func NewEnergyParams() *EnergyParams {
	return &EnergyParams{
		SupplyVoltage: defaultSupplyVoltage,
		TxCurrentMa:   defaultTxCurrentMa,
	}
}

// TxEnergy returns the energy (J) used by transmitting for airtime seconds.
func (p *EnergyParams) TxEnergy(airtime float64) float64 {
	return airtime * p.TxCurrentMa / 1000.0 * p.SupplyVoltage
}

func (p *EnergyParams) Validate() error {
	if p.SupplyVoltage <= 0 || p.TxCurrentMa <= 0 {
		return errors.Errorf("energy parameters must be positive: %.3f V, %.3f mA", p.SupplyVoltage, p.TxCurrentMa)
	}
	return nil
}

// NetworkConsumption is a snapshot of the average per-node energy.
type NetworkConsumption struct {
	Timestamp     float64 // simulated seconds
	NodesFinished int
	AvgEnergyTx   float64 // J
}
