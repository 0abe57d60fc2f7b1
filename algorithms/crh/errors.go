// Copyright 2020 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package crh

import "fmt"

// IncorrectInputLengthError reports an input bit string exceeding what
// the instance accepts. The caller decides how to chunk, pad or reject;
// the hash never truncates.
type IncorrectInputLengthError struct {
	Length     int
	WindowSize int
	NumWindows int
}

func (e *IncorrectInputLengthError) Error() string {
	return fmt.Sprintf("bhp: incorrect input length %d for %d windows of size %d",
		e.Length, e.NumWindows, e.WindowSize)
}
