/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/cespare/xxhash"
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/utils/priority_queue"
)

// DeadNonceList records (name, nonce) pairs for Interests whose PIT entry
// has already been erased, so a late duplicate retransmission is still
// recognized as a loop instead of being treated as a fresh Interest.
type DeadNonceList struct {
	list            map[uint64]bool
	expirationQueue priority_queue.Queue[uint64, int64]
	Ticker          *time.Ticker
}

// NewDeadNonceList creates a new Dead Nonce List for a forwarding worker.
func NewDeadNonceList() *DeadNonceList {
	d := new(DeadNonceList)
	d.list = make(map[uint64]bool)
	d.Ticker = time.NewTicker(100 * time.Millisecond)
	d.expirationQueue = priority_queue.New[uint64, int64]()
	return d
}

func hashNameNonce(name *ndn.Name, nonce uint32) uint64 {
	var hash uint64
	for i := 0; i < name.Size(); i++ {
		component := name.At(i)
		hash ^= uint64(component.Type()) ^ xxhash.Sum64(component.Value())
	}
	hash ^= uint64(nonce)
	return hash
}

// Find returns whether the specified name and nonce combination are present in the Dead Nonce List.
func (d *DeadNonceList) Find(name *ndn.Name, nonce uint32) bool {
	_, ok := d.list[hashNameNonce(name, nonce)]
	return ok
}

// Insert inserts an entry in the Dead Nonce List with the specified name and
// nonce. Returns whether the nonce was already present.
func (d *DeadNonceList) Insert(name *ndn.Name, nonce uint32) bool {
	hash := hashNameNonce(name, nonce)
	_, exists := d.list[hash]

	if !exists {
		d.list[hash] = true
		d.expirationQueue.Push(hash, time.Now().Add(deadNonceListLifetime).UnixNano())
	}
	return exists
}

// RemoveExpiredEntries removes expired entries from the Dead Nonce List, up
// to a batch limit per call so a single worker tick cannot stall on a burst
// of expirations.
func (d *DeadNonceList) RemoveExpiredEntries() {
	evicted := 0
	for d.expirationQueue.Len() > 0 && d.expirationQueue.PeekPriority() < time.Now().UnixNano() {
		hash := d.expirationQueue.Pop()
		delete(d.list, hash)
		evicted++

		if evicted >= 100 {
			break
		}
	}
}
