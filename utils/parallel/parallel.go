// Copyright 2020 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package parallel provides a simple data-parallel map over an index range.
package parallel

import (
	"runtime"
	"sync"
)

// Execute splits [iStart, iEnd) into contiguous sub-ranges, one per
// available CPU, and runs work on each sub-range concurrently. It returns
// once every sub-range completed. Each call to work receives a disjoint
// [start, end) slice of the range, so workers writing to disjoint,
// index-addressed output slots need no synchronization and the output
// order is independent of completion order.
func Execute(iStart, iEnd int, work func(start, end int)) {
	nbIterations := iEnd - iStart
	if nbIterations <= 0 {
		return
	}

	nbTasks := runtime.NumCPU()
	if nbTasks > nbIterations {
		nbTasks = nbIterations
	}

	perTask := nbIterations / nbTasks
	extra := nbIterations % nbTasks

	var wg sync.WaitGroup
	start := iStart
	for i := 0; i < nbTasks; i++ {
		end := start + perTask
		if i < extra {
			end++
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			work(start, end)
		}(start, end)
		start = end
	}
	wg.Wait()
}
