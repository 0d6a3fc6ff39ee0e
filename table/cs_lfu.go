/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/utils/priority_queue"
)

// lfuTicket identifies one frequency-ordered queue entry for a CS index.
// Decrease-key isn't exposed by priority_queue, so a bump re-pushes a fresh
// ticket and bumps the index's version; any ticket popped with a stale
// version is lazily discarded instead of evicted.
type lfuTicket struct {
	index   uint64
	version int64
}

// CsLFU is a least frequently used (LFU) replacement policy for the
// Content Store (§4.6): entries are ordered in a min-priority queue by
// access frequency, with periodic aging so long-idle hot entries cool off.
type CsLFU struct {
	cs         *PitCs
	queue      priority_queue.Queue[lfuTicket, int64]
	frequency  map[uint64]int64
	version    map[uint64]int64
	generation int64
}

// NewCsLFU creates a new LFU replacement policy for the Content Store.
func NewCsLFU(cs *PitCs) *CsLFU {
	l := new(CsLFU)
	l.cs = cs
	l.queue = priority_queue.New[lfuTicket, int64]()
	l.frequency = make(map[uint64]int64)
	l.version = make(map[uint64]int64)
	return l
}

// AfterInsert is called after a new entry is inserted into the Content Store.
func (l *CsLFU) AfterInsert(index uint64, data *ndn.Data) {
	l.frequency[index] = 1
	l.version[index] = 1
	l.queue.Push(lfuTicket{index, 1}, 1)
}

// AfterRefresh is called after a new data packet refreshes an existing entry in the Content Store.
func (l *CsLFU) AfterRefresh(index uint64, data *ndn.Data) {
	l.bump(index)
}

// BeforeErase is called before an entry is erased from the Content Store through management.
func (l *CsLFU) BeforeErase(index uint64, data *ndn.Data) {
	delete(l.frequency, index)
	delete(l.version, index)
}

// BeforeUse is called before an entry in the Content Store is used to satisfy a pending Interest.
func (l *CsLFU) BeforeUse(index uint64, data *ndn.Data) {
	l.bump(index)
}

// bump increments an entry's access frequency and re-pushes its ticket, and
// every ~1024 accesses halves every tracked frequency so the ranking favors
// recent activity rather than accumulating forever.
func (l *CsLFU) bump(index uint64) {
	if _, ok := l.frequency[index]; !ok {
		return
	}
	l.generation++
	if l.generation%1024 == 0 {
		for k := range l.frequency {
			l.frequency[k] = l.frequency[k]/2 + 1
		}
	}
	l.frequency[index]++
	l.version[index]++
	l.queue.Push(lfuTicket{index, l.version[index]}, l.frequency[index])
}

// EvictEntries is called to instruct the policy to evict enough entries to reduce the Content Store size below its size limit.
func (l *CsLFU) EvictEntries() {
	for len(l.frequency) > csCapacity && l.queue.Len() > 0 {
		ticket := l.queue.Pop()
		if l.version[ticket.index] != ticket.version {
			continue // stale ticket superseded by a later bump
		}
		delete(l.frequency, ticket.index)
		delete(l.version, ticket.index)
		l.cs.eraseCsDataFromReplacementStrategy(ticket.index)
	}
}
