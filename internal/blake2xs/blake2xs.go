// Copyright 2020 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package blake2xs implements the BLAKE2Xs extendable-output function.
//
// BLAKE2X derives arbitrary-length output by hashing the root digest of
// the input once per 32-byte output block, with the block index and the
// total XOF length encoded in the node-offset field of the BLAKE2s
// parameter block. The generator derivation in algorithms/hashtocurve
// depends on the personalization string, which golang.org/x/crypto's
// blake2s does not expose, hence the self-contained compression function.
//
// Reference: "BLAKE2X" (Aumasson, Neves, Wilcox-O'Hearn, Winnerlein) and
// RFC 7693 for the underlying BLAKE2s permutation.
package blake2xs

import (
	"encoding/binary"
	"math/bits"
)

// PersonalSize is the size of the personalization string, in bytes.
const PersonalSize = 8

const blockSize = 64

var iv = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var sigma = [10][16]byte{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

// parameters is the BLAKE2s parameter block (RFC 7693 §2.5), with the
// 48-bit node-offset field carrying the BLAKE2X output block index in its
// low 32 bits and the total XOF digest length in its high 16 bits.
type parameters struct {
	digestLength uint8
	fanout       uint8
	depth        uint8
	leafLength   uint32
	nodeOffset   uint64
	nodeDepth    uint8
	innerLength  uint8
	personal     [PersonalSize]byte
}

func (p *parameters) initialState() [8]uint32 {
	var block [32]byte
	block[0] = p.digestLength
	// block[1] is the key length, always zero here
	block[2] = p.fanout
	block[3] = p.depth
	binary.LittleEndian.PutUint32(block[4:8], p.leafLength)
	binary.LittleEndian.PutUint32(block[8:12], uint32(p.nodeOffset))
	binary.LittleEndian.PutUint16(block[12:14], uint16(p.nodeOffset>>32))
	block[14] = p.nodeDepth
	block[15] = p.innerLength
	// block[16:24] is the salt, always zero here
	copy(block[24:32], p.personal[:])

	var h [8]uint32
	for i := range h {
		h[i] = iv[i] ^ binary.LittleEndian.Uint32(block[i*4:i*4+4])
	}
	return h
}

func g(v *[16]uint32, a, b, c, d int, x, y uint32) {
	v[a] += v[b] + x
	v[d] = bits.RotateLeft32(v[d]^v[a], -16)
	v[c] += v[d]
	v[b] = bits.RotateLeft32(v[b]^v[c], -12)
	v[a] += v[b] + y
	v[d] = bits.RotateLeft32(v[d]^v[a], -8)
	v[c] += v[d]
	v[b] = bits.RotateLeft32(v[b]^v[c], -7)
}

func compress(h *[8]uint32, block *[blockSize]byte, counter uint64, last bool) {
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(block[i*4 : i*4+4])
	}

	var v [16]uint32
	copy(v[:8], h[:])
	copy(v[8:], iv[:])
	v[12] ^= uint32(counter)
	v[13] ^= uint32(counter >> 32)
	if last {
		v[14] = ^v[14]
	}

	for r := 0; r < 10; r++ {
		s := &sigma[r]
		g(&v, 0, 4, 8, 12, m[s[0]], m[s[1]])
		g(&v, 1, 5, 9, 13, m[s[2]], m[s[3]])
		g(&v, 2, 6, 10, 14, m[s[4]], m[s[5]])
		g(&v, 3, 7, 11, 15, m[s[6]], m[s[7]])
		g(&v, 0, 5, 10, 15, m[s[8]], m[s[9]])
		g(&v, 1, 6, 11, 12, m[s[10]], m[s[11]])
		g(&v, 2, 7, 8, 13, m[s[12]], m[s[13]])
		g(&v, 3, 4, 9, 14, m[s[14]], m[s[15]])
	}

	for i := range h {
		h[i] ^= v[i] ^ v[i+8]
	}
}

// hash runs unkeyed BLAKE2s over data with the given parameter block and
// returns the first p.digestLength bytes of the state.
func hash(p *parameters, data []byte) []byte {
	h := p.initialState()

	var block [blockSize]byte
	var counter uint64
	for len(data) > blockSize {
		copy(block[:], data[:blockSize])
		counter += blockSize
		compress(&h, &block, counter, false)
		data = data[blockSize:]
	}
	block = [blockSize]byte{}
	copy(block[:], data)
	counter += uint64(len(data))
	compress(&h, &block, counter, true)

	out := make([]byte, 32)
	for i := range h {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], h[i])
	}
	return out[:p.digestLength]
}

// Sum returns xofLength bytes of BLAKE2Xs output over data, using the
// given personalization string. It panics if xofLength is zero or the
// personalization exceeds PersonalSize bytes.
func Sum(data []byte, xofLength uint16, personal []byte) []byte {
	if xofLength == 0 {
		panic("blake2xs: zero output length")
	}
	if len(personal) > PersonalSize {
		panic("blake2xs: personalization too long")
	}

	p := parameters{
		digestLength: 32,
		fanout:       1,
		depth:        1,
		nodeOffset:   uint64(xofLength) << 32,
	}
	copy(p.personal[:], personal)
	root := hash(&p, data)

	out := make([]byte, 0, (int(xofLength)+31)/32*32)
	rounds := (int(xofLength) + 31) / 32
	for i := 0; i < rounds; i++ {
		length := 32
		if i == rounds-1 && int(xofLength)%32 != 0 {
			length = int(xofLength) % 32
		}
		p := parameters{
			digestLength: uint8(length),
			fanout:       0,
			depth:        0,
			leafLength:   32,
			nodeOffset:   uint64(xofLength)<<32 | uint64(i),
			innerLength:  32,
		}
		copy(p.personal[:], personal)
		out = append(out, hash(&p, root)...)
	}
	return out[:xofLength]
}
