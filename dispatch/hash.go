/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package dispatch

import (
	"strings"

	"github.com/cespare/xxhash"
	"github.com/ndnx/corefwd/ndn"
)

// HashNameToWorker computes the worker id a packet's name should be
// dispatched to (§4.9): management traffic under /localhost always goes to
// worker 0, everything else hashes the name's first component modulo the
// worker count. The hashed prefix length is fixed at one component and is
// not configurable.
func HashNameToWorker(name *ndn.Name, numWorkers int) int {
	if name.Size() > 0 && name.At(0).String() == "localhost" {
		return 0
	}
	if numWorkers <= 0 {
		return 0
	}

	prefixLen := 1
	if name.Size() < prefixLen {
		prefixLen = name.Size()
	}
	return int(xxhash.Sum64String(name.Prefix(prefixLen).String()) % uint64(numWorkers))
}

// HashNameToAllPrefixWorkers hashes a name's every non-empty prefix to a
// worker id, deduplicated. Used to fan FIB/strategy-choice and RIB updates
// out to every worker that could plausibly own a PIT entry nested under the
// updated prefix.
func HashNameToAllPrefixWorkers(name *ndn.Name, numWorkers int) []int {
	if name.Size() > 0 && name.At(0).String() == "localhost" {
		return []int{0}
	}
	if numWorkers <= 0 {
		return []int{0}
	}

	seen := make(map[int]struct{})
	for s := name.String(); len(s) > 1; s = s[:strings.LastIndex(s, "/")] {
		seen[int(xxhash.Sum64String(s)%uint64(numWorkers))] = struct{}{}
	}
	if len(seen) == 0 {
		seen[0] = struct{}{}
	}

	workers := make([]int, 0, len(seen))
	for w := range seen {
		workers = append(workers, w)
	}
	return workers
}
