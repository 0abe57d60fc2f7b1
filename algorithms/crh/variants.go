// Copyright 2020 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package crh

// The ledger instantiates four fixed window geometries, named by the
// number of input bits the length check accepts.

// NewBHP256 hashes up to 256 input bits (8 windows of size 32).
func NewBHP256(message string) *BHP { return Setup(message, 8, 32) }

// NewBHP512 hashes up to 512 input bits (16 windows of size 32).
func NewBHP512(message string) *BHP { return Setup(message, 16, 32) }

// NewBHP768 hashes up to 768 input bits (24 windows of size 32).
func NewBHP768(message string) *BHP { return Setup(message, 24, 32) }

// NewBHP1024 hashes up to 1024 input bits (32 windows of size 32).
func NewBHP1024(message string) *BHP { return Setup(message, 32, 32) }
