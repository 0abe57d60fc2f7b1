// Package snarkvm provides native Go implementations of the cryptographic
// primitives used by the snarkVM ledger, built on top of gnark-crypto.
//
// The main entry point is the Bowe-Hopwood windowed Pedersen
// collision-resistant hash in algorithms/crh, instantiated over the
// twisted Edwards curve defined on the BLS12-377 scalar field.
package snarkvm

import (
	"github.com/blang/semver/v4"
)

var Version = semver.MustParse("0.1.0")
