/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package dispatch

import (
	"sync/atomic"

	"github.com/ndnx/corefwd/ndn"
)

// Ring is a fixed-capacity single-producer/single-consumer queue of pending
// packets (§4.9, §5). Capacity is rounded up to a power of two so index
// wrapping can use a mask instead of a modulo. The I/O thread is the sole
// producer; the owning worker is the sole consumer. Push never blocks: a
// full ring drops the packet and reports failure so the caller can bump a
// drop counter, matching the spec's queue-full admission-control boundary.
type Ring struct {
	buf  []*ndn.PendingPacket
	mask uint64

	head uint64 // next slot the consumer will read
	tail uint64 // next slot the producer will write
}

// NewRing creates a Ring with capacity rounded up to the next power of two.
func NewRing(capacity int) *Ring {
	size := uint64(1)
	for size < uint64(capacity) {
		size <<= 1
	}
	return &Ring{
		buf:  make([]*ndn.PendingPacket, size),
		mask: size - 1,
	}
}

// Push enqueues a packet. Returns false if the ring is full.
func (r *Ring) Push(packet *ndn.PendingPacket) bool {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail)
	if tail-head >= uint64(len(r.buf)) {
		return false
	}
	r.buf[tail&r.mask] = packet
	atomic.StoreUint64(&r.tail, tail+1)
	return true
}

// Pop dequeues a packet. Returns nil if the ring is empty.
func (r *Ring) Pop() *ndn.PendingPacket {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail)
	if head == tail {
		return nil
	}
	packet := r.buf[head&r.mask]
	r.buf[head&r.mask] = nil
	atomic.StoreUint64(&r.head, head+1)
	return packet
}

// Len returns the number of packets currently queued.
func (r *Ring) Len() int {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail)
	return int(tail - head)
}
