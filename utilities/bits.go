// Copyright 2020 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package utilities provides bit-string helpers shared by the algorithms
// packages. Bit order is little-endian: bit j of byte i is bit 8*i+j.
package utilities

import (
	"github.com/bits-and-blooms/bitset"
)

// FromBytesLE returns the little-endian bit decomposition of data.
func FromBytesLE(data []byte) *bitset.BitSet {
	b := bitset.New(uint(len(data)) * 8)
	for i, by := range data {
		for j := 0; j < 8; j++ {
			if by>>j&1 == 1 {
				b.Set(uint(i)*8 + uint(j))
			}
		}
	}
	return b
}

// ToBytesLE packs the first n bits of b into bytes, little-endian,
// zero-padding the last byte.
func ToBytesLE(b *bitset.BitSet, n uint) []byte {
	data := make([]byte, (n+7)/8)
	for i := uint(0); i < n; i++ {
		if b.Test(i) {
			data[i/8] |= 1 << (i % 8)
		}
	}
	return data
}

// ToBools materializes the first n bits of b as a slice of bool.
func ToBools(b *bitset.BitSet, n uint) []bool {
	out := make([]bool, n)
	for i := uint(0); i < n; i++ {
		out[i] = b.Test(i)
	}
	return out
}
