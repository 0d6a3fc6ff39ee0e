/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"golang.org/x/exp/slices"

	"github.com/ndnx/corefwd/ndn"
)

// priorityRecord is one Content Store entry's eviction bookkeeping under
// CsPriority: how often it has been used, how large it is, and when it goes
// stale, so EvictEntries can re-derive freshness cheaply without re-reading
// the Data packet.
type priorityRecord struct {
	index     uint64
	frequency int64
	size      int
	staleAt   time.Time
}

// CsPriority is a priority-scored replacement policy for the Content Store
// (§4.6): a score combining freshness, size, and access frequency is kept
// in an ascending-sorted slice, and EvictEntries removes from the low-score
// end (the entries least worth keeping) until the Content Store is back
// under its capacity.
type CsPriority struct {
	cs      *PitCs
	records map[uint64]*priorityRecord
	order   []*priorityRecord // sorted ascending by score(); evict from index 0
}

// NewCsPriority creates a new priority replacement policy for the Content Store.
func NewCsPriority(cs *PitCs) *CsPriority {
	p := new(CsPriority)
	p.cs = cs
	p.records = make(map[uint64]*priorityRecord)
	p.order = make([]*priorityRecord, 0)
	return p
}

// score rates how worth-keeping an entry is: fresher, smaller, and more
// frequently used entries score higher (kept longer); larger and staler
// entries score lower (evicted first). Computed at call time so ordering
// always reflects the entry's remaining freshness at the moment of comparison.
func (r *priorityRecord) score(now time.Time) float64 {
	freshness := r.staleAt.Sub(now).Seconds()
	if freshness < 0 {
		freshness = 0
	}
	return float64(r.frequency)*10 + freshness - float64(r.size)/1024.0
}

func (p *CsPriority) indexOf(index uint64) int {
	return slices.IndexFunc(p.order, func(r *priorityRecord) bool { return r.index == index })
}

func (p *CsPriority) removeFromOrder(index uint64) {
	if i := p.indexOf(index); i >= 0 {
		p.order = slices.Delete(p.order, i, i+1)
	}
}

// reinsert places rec into the sorted-by-score slice at its current score,
// using a fresh comparison each time since score() is time-dependent.
func (p *CsPriority) reinsert(rec *priorityRecord) {
	now := time.Now()
	target := rec.score(now)
	i, _ := slices.BinarySearchFunc(p.order, target, func(r *priorityRecord, s float64) int {
		rs := r.score(now)
		if rs < s {
			return -1
		} else if rs > s {
			return 1
		}
		return 0
	})
	p.order = slices.Insert(p.order, i, rec)
}

// AfterInsert is called after a new entry is inserted into the Content Store.
func (p *CsPriority) AfterInsert(index uint64, data *ndn.Data) {
	rec := &priorityRecord{index: index, frequency: 1, size: len(data.Content())}
	if freshness := data.MetaInfo().FreshnessPeriod(); freshness != nil {
		rec.staleAt = time.Now().Add(*freshness)
	} else {
		rec.staleAt = time.Now()
	}
	p.records[index] = rec
	p.reinsert(rec)
}

// AfterRefresh is called after a new data packet refreshes an existing entry in the Content Store.
func (p *CsPriority) AfterRefresh(index uint64, data *ndn.Data) {
	rec, ok := p.records[index]
	if !ok {
		p.AfterInsert(index, data)
		return
	}
	p.removeFromOrder(index)
	rec.size = len(data.Content())
	if freshness := data.MetaInfo().FreshnessPeriod(); freshness != nil {
		rec.staleAt = time.Now().Add(*freshness)
	} else {
		rec.staleAt = time.Now()
	}
	rec.frequency++
	p.reinsert(rec)
}

// BeforeErase is called before an entry is erased from the Content Store through management.
func (p *CsPriority) BeforeErase(index uint64, data *ndn.Data) {
	p.removeFromOrder(index)
	delete(p.records, index)
}

// BeforeUse is called before an entry in the Content Store is used to satisfy a pending Interest.
func (p *CsPriority) BeforeUse(index uint64, data *ndn.Data) {
	rec, ok := p.records[index]
	if !ok {
		return
	}
	p.removeFromOrder(index)
	rec.frequency++
	p.reinsert(rec)
}

// EvictEntries is called to instruct the policy to evict enough entries to reduce the Content Store size below its size limit.
func (p *CsPriority) EvictEntries() {
	for len(p.order) > csCapacity {
		victim := p.order[0]
		p.order = p.order[1:]
		delete(p.records, victim.index)
		p.cs.eraseCsDataFromReplacementStrategy(victim.index)
	}
}
