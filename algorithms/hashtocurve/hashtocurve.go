// Copyright 2020 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package hashtocurve deterministically maps strings to points on the
// twisted Edwards curve defined over the BLS12-377 scalar field.
//
// The mapping is try-and-increment: the input string, suffixed with an
// attempt counter, is expanded with BLAKE2Xs into a candidate field
// element; if a point with that x-coordinate exists, its prime-order
// component is returned, otherwise the counter is incremented. Every
// party running the same input obtains the same point, which is what
// makes the derived generators reproducible across provers and
// verifiers.
package hashtocurve

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"

	"github.com/w3b3dev/snarkVM/internal/blake2xs"
)

// Persona is the BLAKE2Xs personalization string for generator derivation.
const Persona = "AleoHtC0"

// maxAttempts bounds the try-and-increment loop; the per-attempt success
// probability is about a half, so 256 attempts never fail in practice.
const maxAttempts = 256

// reprShaveBits is the number of excess bits in the 32-byte candidate
// digest beyond the field bit size. They are cleared before parsing so
// that roughly half the candidates land below the modulus.
const reprShaveBits = 8*fr.Bytes - fr.Bits

// ErrExhausted is returned when no attempt produced a valid point.
var ErrExhausted = errors.New("hash-to-curve: no candidate point found")

// Try attempts to derive a prime-order curve point from input in a single
// shot, with no counter. The candidate x-coordinate is read little-endian
// from the BLAKE2Xs digest, with the top digest bit selecting the
// lexicographically largest of the two matching y-coordinates. Candidates
// that are not canonical field elements, have no matching y, or collapse
// to the identity after cofactor clearing are rejected.
func Try(input string) (twistededwards.PointAffine, bool) {
	var zero twistededwards.PointAffine

	digest := blake2xs.Sum([]byte(input), uint16(fr.Bytes), []byte(Persona))

	positive := digest[fr.Bytes-1]&0x80 != 0
	digest[fr.Bytes-1] &= 0xFF >> reprShaveBits

	// little-endian digest -> big-endian for big.Int
	for i, j := 0, len(digest)-1; i < j; i, j = i+1, j-1 {
		digest[i], digest[j] = digest[j], digest[i]
	}
	candidate := new(big.Int).SetBytes(digest)
	if candidate.Cmp(fr.Modulus()) >= 0 {
		return zero, false
	}
	if candidate.Sign() == 0 {
		// x == 0 is the identity (or its small-order companion)
		return zero, false
	}

	var x fr.Element
	x.SetBigInt(candidate)

	point, ok := fromXCoordinate(x, positive)
	if !ok {
		return zero, false
	}

	// clear the cofactor (4) and reject the identity
	var p twistededwards.PointProj
	p.FromAffine(&point)
	p.Double(&p).Double(&p)
	point.FromProj(&p)
	if point.X.IsZero() {
		return zero, false
	}
	return point, true
}

// Hash maps input to a prime-order curve point by trying candidate inputs
// "{input} in {attempt}" until one succeeds. It returns the point, the
// candidate input that produced it and the attempt counter.
func Hash(input string) (twistededwards.PointAffine, string, int, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := fmt.Sprintf("%s in %d", input, attempt)
		if point, ok := Try(candidate); ok {
			return point, candidate, attempt, nil
		}
	}
	return twistededwards.PointAffine{}, "", 0, fmt.Errorf("%w (input %q)", ErrExhausted, input)
}

// fromXCoordinate solves a*x^2 + y^2 = 1 + d*x^2*y^2 for y, picking the
// lexicographically largest root iff positive is set.
func fromXCoordinate(x fr.Element, positive bool) (twistededwards.PointAffine, bool) {
	curve := twistededwards.GetEdwardsCurve()

	var one, xx, num, den, y fr.Element
	one.SetOne()
	xx.Square(&x)
	num.Mul(&xx, &curve.A)
	num.Sub(&one, &num)
	den.Mul(&xx, &curve.D)
	den.Sub(&one, &den)
	if den.IsZero() {
		return twistededwards.PointAffine{}, false
	}
	den.Inverse(&den)
	num.Mul(&num, &den)
	if y.Sqrt(&num) == nil {
		return twistededwards.PointAffine{}, false
	}
	if y.LexicographicallyLargest() != positive {
		y.Neg(&y)
	}
	return twistededwards.PointAffine{X: x, Y: y}, true
}
