// Copyright 2020 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package crh implements the Bowe-Hopwood windowed Pedersen
// collision-resistant hash over the twisted Edwards curve defined on the
// BLS12-377 scalar field.
//
// The hash maps a bit string to a base field element. Input bits are
// consumed in 3-bit chunks; each chunk selects one of 8 precomputed
// multiples of a per-position generator, and the selected points are
// summed. Finding two distinct inputs with equal outputs is as hard as
// computing discrete logarithms between the window generators, which are
// derived by domain-separated hashing to the curve (see section 5.4.1.7
// of the Zcash protocol specification).
//
// An instance is created once with Setup and is immutable afterwards; it
// is safe for concurrent use by any number of goroutines.
package crh
