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

package terrain

import (
	"bufio"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	statsPrefix  = "# stats:"
	coordsPrefix = "# node coords:"

	maxLineBytes = 16 * 1024 * 1024
)

var (
	areaPattern  = regexp.MustCompile(`terrain=([-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)m\^2`)
	coordPattern = regexp.MustCompile(`(\d+)\s*\[\s*([-+]?[0-9]*\.?[0-9]+)\s+([-+]?[0-9]*\.?[0-9]+)\s*\]`)
)

// ReadFile parses the terrain file at path.
func ReadFile(path string) (*Terrain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open terrain file")
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "terrain file %s", path)
	}
	return t, nil
}

// Parse reads a terrain from r.
func Parse(r io.Reader) (*Terrain, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	t := &Terrain{}
	haveStats, haveCoords := false, false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, statsPrefix):
			side, err := parseStats(line[len(statsPrefix):])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			t.Side = side
			haveStats = true
		case strings.HasPrefix(line, coordsPrefix):
			nodes, err := parseCoords(line[len(coordsPrefix):])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			t.Nodes = nodes
			haveCoords = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read terrain")
	}

	if !haveStats {
		return nil, ErrMissingStats
	}
	if !haveCoords {
		return nil, ErrMissingCoords
	}
	sort.Slice(t.Nodes, func(i, j int) bool {
		return t.Nodes[i].Id < t.Nodes[j].Id
	})
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseStats(s string) (float64, error) {
	m := areaPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.Wrapf(ErrMalformed, "no terrain=<area>m^2 in stats line")
	}
	area, err := strconv.ParseFloat(m[1], 64)
	if err != nil || area <= 0 {
		return 0, errors.Wrapf(ErrMalformed, "invalid terrain area %q", m[1])
	}
	return math.Sqrt(area), nil
}

func parseCoords(s string) ([]NodePosition, error) {
	matches := coordPattern.FindAllStringSubmatchIndex(s, -1)
	nodes := make([]NodePosition, 0, len(matches))

	prev := 0
	for _, m := range matches {
		if gap := strings.TrimSpace(s[prev:m[0]]); gap != "" {
			return nil, errors.Wrapf(ErrMalformed, "unexpected %q in node coords", gap)
		}
		prev = m[1]

		id, err := strconv.Atoi(s[m[2]:m[3]])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "invalid node id %q", s[m[2]:m[3]])
		}
		x, errX := strconv.ParseFloat(s[m[4]:m[5]], 64)
		y, errY := strconv.ParseFloat(s[m[6]:m[7]], 64)
		if errX != nil || errY != nil {
			return nil, errors.Wrapf(ErrMalformed, "invalid coordinates of node %d", id)
		}
		nodes = append(nodes, NodePosition{Id: id, X: x, Y: y})
	}
	if gap := strings.TrimSpace(s[prev:]); gap != "" {
		return nil, errors.Wrapf(ErrMalformed, "unexpected %q in node coords", gap)
	}
	return nodes, nil
}
