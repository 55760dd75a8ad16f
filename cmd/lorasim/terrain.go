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

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/otns-lab/lorasim/logger"
	"github.com/otns-lab/lorasim/terrain"
)

var (
	terrainNodes int
	terrainSide  float64
	terrainSeed  int64
	terrainOut   string
)

var terrainCmd = &cobra.Command{
	Use:   "terrain",
	Short: "Generate a random terrain file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ter, err := terrain.Generate(terrainNodes, terrainSide, terrainSeed)
		if err != nil {
			return err
		}
		if terrainOut == "" || terrainOut == "-" {
			return terrain.Write(os.Stdout, ter)
		}
		if err = terrain.WriteFile(terrainOut, ter); err != nil {
			return err
		}
		logger.Infof("terrain with %d nodes written to %s", ter.NumNodes(), terrainOut)
		return nil
	},
}

func init() {
	terrainCmd.Flags().IntVar(&terrainNodes, "nodes", 100, "number of nodes")
	terrainCmd.Flags().Float64Var(&terrainSide, "side", 500, "side (m) of the square terrain")
	terrainCmd.Flags().Int64Var(&terrainSeed, "seed", 1, "random seed, 0 for a time-based seed")
	terrainCmd.Flags().StringVar(&terrainOut, "out", "", "output file, stdout if not given")
}
