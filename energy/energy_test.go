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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTxEnergy(t *testing.T) {
	params := NewEnergyParams()
	assert.Nil(t, params.Validate())
	// 1 s at 44 mA and 3 V
	assert.InDelta(t, 0.132, params.TxEnergy(1.0), 1e-12)
	assert.Equal(t, 0.0, params.TxEnergy(0))

	params.TxCurrentMa = 0
	assert.NotNil(t, params.Validate())
}

func TestAnalyserAccounting(t *testing.T) {
	ea := NewEnergyAnalyser(nil)
	ea.AddNode(1)
	ea.AddNode(2)
	ea.AddNode(2)
	assert.Equal(t, 0.0, ea.AverageEnergy())

	j := ea.ChargeTx(1, 0.5)
	assert.InDelta(t, 0.066, j, 1e-12)
	ea.ChargeTx(1, 0.5)
	assert.Equal(t, 2, ea.GetNode(1).NumTx)
	assert.InDelta(t, 1.0, ea.GetNode(1).SpentTx, 1e-12)
	assert.InDelta(t, 0.132, ea.TotalEnergy(), 1e-12)
	assert.InDelta(t, 0.066, ea.AverageEnergy(), 1e-12)

	assert.Panics(t, func() { ea.ChargeTx(3, 1.0) })
}

func TestSaveEnergyDataToFile(t *testing.T) {
	ea := NewEnergyAnalyser(NewEnergyParams())
	for _, id := range []int{3, 1, 2} {
		ea.AddNode(id)
		ea.ChargeTx(id, 0.1*float64(id))
	}
	ea.OnNodeFinished(10.0)
	ea.OnNodeFinished(12.5)
	assert.Equal(t, 2, len(ea.GetNetworkEnergyHistory()))

	dir := t.TempDir()
	assert.Nil(t, ea.SaveEnergyDataToFile(filepath.Join(dir, "out"), "run1", 12.5))

	data, err := os.ReadFile(filepath.Join(dir, "out", "run1_nodes.txt"))
	assert.Nil(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, 5, len(lines))
	assert.True(t, strings.HasPrefix(lines[2], "1\t"))
	assert.True(t, strings.HasPrefix(lines[4], "3\t"))

	data, err = os.ReadFile(filepath.Join(dir, "out", "run1.txt"))
	assert.Nil(t, err)
	assert.Equal(t, 4, len(strings.Split(strings.TrimSpace(string(data)), "\n")))
}
