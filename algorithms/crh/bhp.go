// Copyright 2020 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package crh

import (
	"fmt"
	"math/big"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"

	"github.com/w3b3dev/snarkVM/algorithms/hashtocurve"
	"github.com/w3b3dev/snarkVM/internal/debug"
	"github.com/w3b3dev/snarkVM/logger"
	"github.com/w3b3dev/snarkVM/utilities"
	"github.com/w3b3dev/snarkVM/utils/parallel"
)

const (
	// ChunkSize is the number of input bits encoded by one table lookup.
	// It is a structural constant of the construction, not a parameter.
	ChunkSize = 3

	// LookupSize is the number of possible encodings of one chunk.
	LookupSize = 1 << ChunkSize

	// MaxWindowSize and MaxNumWindows are hard ceilings on the window
	// geometry; the hash working buffer is sized from them.
	MaxWindowSize = 64
	MaxNumWindows = 4096
)

// maxInputBits sizes the stack buffer of the hash loop: the maximum
// supported input plus chunk-size slack for padding.
const maxInputBits = MaxWindowSize*MaxNumWindows + ChunkSize + 1

// BHP is an instance of the Bowe-Hopwood windowed Pedersen CRH with a
// fixed window geometry and domain. It is immutable after Setup and safe
// for concurrent use.
type BHP struct {
	numWindows int
	windowSize int

	// bases[i][j] is the generator of window i multiplied by 16^j.
	bases [][]twistededwards.PointProj

	// baseLookup[i][j][c] encodes chunk value c against bases[i][j].
	baseLookup [][][LookupSize]twistededwards.PointProj
}

// MaximumWindowSize returns the largest window size for which every chunk
// scalar stays strictly below (r-1)/2, r being the order of the
// prime-order subgroup. Each window position multiplies its generator by
// 16, so a window of size c reaches scalars up to 2*16^c; beyond the
// bound, two distinct chunk encodings could collide modulo r and break
// the binding property of the hash. The bound depends only on the scalar
// field, not on a particular instance.
func MaximumWindowSize() int {
	curve := twistededwards.GetEdwardsCurve()

	upper := new(big.Int).Sub(&curve.Order, big.NewInt(1))
	upper.Rsh(upper, 1)

	c := 0
	rng := big.NewInt(2)
	for rng.Cmp(upper) < 0 {
		rng.Lsh(rng, 4)
		c++
	}
	return c
}

// Setup derives a BHP instance from a domain-separation message. The
// generator of window i is obtained by hashing "{message} at {i}" to the
// curve, so all parties using the same message agree on the parameters.
//
// Setup panics if the window geometry is outside the supported bounds or
// if windowSize exceeds MaximumWindowSize: proceeding would silently
// void the collision-resistance argument, so misconfiguration is treated
// as a fatal programming error rather than a recoverable one.
func Setup(message string, numWindows, windowSize int) *BHP {
	if numWindows <= 0 || numWindows > MaxNumWindows {
		panic(fmt.Sprintf("bhp: number of windows %d out of range [1, %d]", numWindows, MaxNumWindows))
	}
	if windowSize <= 0 || windowSize > MaxWindowSize {
		panic(fmt.Sprintf("bhp: window size %d out of range [1, %d]", windowSize, MaxWindowSize))
	}
	if maximum := MaximumWindowSize(); windowSize > maximum {
		panic(fmt.Sprintf("bhp: window size %d maps chunks to scalars >= (r-1)/2, maximum window size is %d", windowSize, maximum))
	}

	log := logger.Logger().With().
		Str("domain", message).
		Int("numWindows", numWindows).
		Int("windowSize", windowSize).Logger()
	start := time.Now()

	// Window generation and table building are data-parallel maps: every
	// unit writes to its own index, so the result is identical whether
	// the ranges run sequentially or concurrently.
	bases := make([][]twistededwards.PointProj, numWindows)
	parallel.Execute(0, numWindows, func(from, to int) {
		for i := from; i < to; i++ {
			point, _, _, err := hashtocurve.Hash(fmt.Sprintf("%s at %d", message, i))
			if err != nil {
				// 256 failed attempts on a window index; not reachable
				// for any practical domain message.
				panic(err)
			}
			var base twistededwards.PointProj
			base.FromAffine(&point)

			powers := make([]twistededwards.PointProj, windowSize)
			for j := 0; j < windowSize; j++ {
				powers[j] = base
				for k := 0; k < 4; k++ {
					base.Double(&base)
				}
			}
			bases[i] = powers
		}
	})

	baseLookup := make([][][LookupSize]twistededwards.PointProj, numWindows)
	parallel.Execute(0, numWindows, func(from, to int) {
		for i := from; i < to; i++ {
			baseLookup[i] = buildWindowTables(bases[i])
		}
	})

	debug.Assert(len(baseLookup) == numWindows, "incorrect number of window tables")
	for i := range baseLookup {
		debug.Assert(len(baseLookup[i]) == windowSize, "incorrect number of point tables in window")
	}

	log.Debug().Dur("took", time.Since(start)).Msg("bhp setup done")

	return &BHP{
		numWindows: numWindows,
		windowSize: windowSize,
		bases:      bases,
		baseLookup: baseLookup,
	}
}

// buildWindowTables precomputes, for every point g of a window, the 8
// encodings sign(c2) * (g + c0*g + c1*2g) of a chunk (c0, c1, c2).
func buildWindowTables(powers []twistededwards.PointProj) [][LookupSize]twistededwards.PointProj {
	tables := make([][LookupSize]twistededwards.PointProj, len(powers))
	for j := range powers {
		g := &powers[j]
		var double twistededwards.PointProj
		double.Double(g)
		for i := 0; i < LookupSize; i++ {
			encoded := *g
			if i&0x01 != 0 {
				encoded.Add(&encoded, g)
			}
			if i&0x02 != 0 {
				encoded.Add(&encoded, &double)
			}
			if i&0x04 != 0 {
				encoded.Neg(&encoded)
			}
			tables[j][i] = encoded
		}
	}
	return tables
}

// Hash maps input to a base field element, the x-coordinate of the sum of
// the looked-up points.
//
// Input longer than WindowSize()*NumWindows() bits is rejected with
// *IncorrectInputLengthError; note this early bound is narrower than the
// Capacity() of the partitioning itself (see Capacity). Input is
// zero-padded to a multiple of ChunkSize; the padding is structural and
// silent, so inputs that only differ by trailing zero bits within the
// last chunk hash identically.
func (h *BHP) Hash(input []bool) (fr.Element, error) {
	var out fr.Element

	point, err := h.hashBits(input)
	if err != nil {
		return out, err
	}

	var affine twistededwards.PointAffine
	affine.FromProj(&point)
	out = affine.X
	return out, nil
}

// HashBytes hashes the little-endian bit decomposition of data.
func (h *BHP) HashBytes(data []byte) (fr.Element, error) {
	bits := utilities.FromBytesLE(data)
	return h.Hash(utilities.ToBools(bits, uint(len(data))*8))
}

// hashBits runs the hot loop. No heap allocation happens here: the padded
// bit buffer lives on the stack, sized for the maximum supported input.
func (h *BHP) hashBits(input []bool) (twistededwards.PointProj, error) {
	debug.Assert(len(h.bases) == h.numWindows, "incorrect number of windows")
	for i := range h.bases {
		debug.Assert(len(h.bases[i]) == h.windowSize, "incorrect number of points in window")
	}

	var acc twistededwards.PointProj
	if len(input) > h.windowSize*h.numWindows {
		return acc, &IncorrectInputLengthError{
			Length:     len(input),
			WindowSize: h.windowSize,
			NumWindows: h.numWindows,
		}
	}

	var buf [maxInputBits]bool
	copy(buf[:], input)

	bitLen := len(input)
	if rem := bitLen % ChunkSize; rem != 0 {
		bitLen += ChunkSize - rem
	}

	acc.X.SetZero()
	acc.Y.SetOne()
	acc.Z.SetOne()

	perWindow := h.windowSize * ChunkSize
	for base := 0; base < bitLen; base += perWindow {
		end := min(base+perWindow, bitLen)
		tables := h.baseLookup[base/perWindow]
		for c := base; c < end; c += ChunkSize {
			idx := 0
			if buf[c] {
				idx |= 1
			}
			if buf[c+1] {
				idx |= 2
			}
			if buf[c+2] {
				idx |= 4
			}
			acc.Add(&acc, &tables[(c-base)/ChunkSize][idx])
		}
	}
	return acc, nil
}

// NumWindows returns the configured number of windows.
func (h *BHP) NumWindows() int { return h.numWindows }

// WindowSize returns the configured window size.
func (h *BHP) WindowSize() int { return h.windowSize }

// Capacity returns the number of input bits the window partitioning can
// consume, NumWindows()*WindowSize()*ChunkSize. Hash's early length check
// bounds input at WindowSize()*NumWindows() bits, a third of this; both
// bounds are surfaced so callers chunking input can pick deliberately.
func (h *BHP) Capacity() int { return h.numWindows * h.windowSize * ChunkSize }

// Parameters exposes the window generators for reuse by serialization or
// circuit-embedding layers. The returned slices are shared with the
// instance and must be treated as read-only.
func (h *BHP) Parameters() [][]twistededwards.PointProj { return h.bases }

// ToFieldElements implements the constraint-field conversion of the hash
// parameters. The native parameters are not themselves exposed as
// constraint field elements; that responsibility belongs to the
// circuit-embedding layer, so the result is always empty.
func (h *BHP) ToFieldElements() []fr.Element { return []fr.Element{} }
