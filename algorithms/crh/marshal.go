// Copyright 2020 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package crh

import (
	"fmt"
	"io"
	"runtime"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/sync/errgroup"

	"github.com/w3b3dev/snarkVM/utils/parallel"
)

// pointBytes is the compressed affine point size.
const pointBytes = fr.Bytes

// serializedParams is the CBOR envelope for the public parameters. The
// lookup tables are derived data and are recomputed on read.
type serializedParams struct {
	NumWindows int
	WindowSize int
	// Windows[i] holds the WindowSize compressed affine points of
	// window i, concatenated.
	Windows [][]byte
}

// WriteTo serializes the instance parameters to w as a CBOR envelope of
// compressed affine points. Windows are compressed concurrently.
func (h *BHP) WriteTo(w io.Writer) (int64, error) {
	windows := make([][]byte, h.numWindows)

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range windows {
		g.Go(func() error {
			buf := make([]byte, 0, h.windowSize*pointBytes)
			var affine twistededwards.PointAffine
			for j := range h.bases[i] {
				affine.FromProj(&h.bases[i][j])
				buf = append(buf, affine.Marshal()...)
			}
			windows[i] = buf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	enc, err := cbor.Marshal(serializedParams{
		NumWindows: h.numWindows,
		WindowSize: h.windowSize,
		Windows:    windows,
	})
	if err != nil {
		return 0, err
	}
	n, err := w.Write(enc)
	return int64(n), err
}

// ReadParams deserializes an instance from r and recomputes its lookup
// tables. Unlike Setup, geometry violations here are data errors coming
// from the reader, so they are returned rather than panicking.
func ReadParams(r io.Reader) (*BHP, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var params serializedParams
	if err := cbor.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("bhp: decoding parameters: %w", err)
	}

	if params.NumWindows <= 0 || params.NumWindows > MaxNumWindows {
		return nil, fmt.Errorf("bhp: number of windows %d out of range [1, %d]", params.NumWindows, MaxNumWindows)
	}
	if params.WindowSize <= 0 || params.WindowSize > MaxWindowSize || params.WindowSize > MaximumWindowSize() {
		return nil, fmt.Errorf("bhp: window size %d out of range [1, %d]", params.WindowSize, min(MaxWindowSize, MaximumWindowSize()))
	}
	if len(params.Windows) != params.NumWindows {
		return nil, fmt.Errorf("bhp: expected %d windows, got %d", params.NumWindows, len(params.Windows))
	}

	bases := make([][]twistededwards.PointProj, params.NumWindows)

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range bases {
		g.Go(func() error {
			raw := params.Windows[i]
			if len(raw) != params.WindowSize*pointBytes {
				return fmt.Errorf("bhp: window %d holds %d bytes, expected %d", i, len(raw), params.WindowSize*pointBytes)
			}
			powers := make([]twistededwards.PointProj, params.WindowSize)
			var affine twistededwards.PointAffine
			for j := 0; j < params.WindowSize; j++ {
				if err := affine.Unmarshal(raw[j*pointBytes : (j+1)*pointBytes]); err != nil {
					return fmt.Errorf("bhp: window %d point %d: %w", i, j, err)
				}
				if !affine.IsOnCurve() {
					return fmt.Errorf("bhp: window %d point %d is not on the curve", i, j)
				}
				powers[j].FromAffine(&affine)
			}
			bases[i] = powers
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	baseLookup := make([][][LookupSize]twistededwards.PointProj, params.NumWindows)
	parallel.Execute(0, params.NumWindows, func(from, to int) {
		for i := from; i < to; i++ {
			baseLookup[i] = buildWindowTables(bases[i])
		}
	})

	return &BHP{
		numWindows: params.NumWindows,
		windowSize: params.WindowSize,
		bases:      bases,
		baseLookup: baseLookup,
	}, nil
}
