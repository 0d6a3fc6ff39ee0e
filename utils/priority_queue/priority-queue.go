/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package priority_queue provides a generic minimum-priority queue built on
// top of container/heap, used for Content Store LFU/priority eviction
// ordering and Dead Nonce List expiry ordering.
package priority_queue

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

type item[V any, P constraints.Ordered] struct {
	object   V
	priority P
	index    int
}

type wrapper[V any, P constraints.Ordered] []*item[V, P]

func (pq wrapper[V, P]) Len() int { return len(pq) }

func (pq wrapper[V, P]) Less(i, j int) bool { return pq[i].priority < pq[j].priority }

func (pq wrapper[V, P]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *wrapper[V, P]) Push(x any) {
	it := x.(*item[V, P])
	it.index = len(*pq)
	*pq = append(*pq, it)
}

func (pq *wrapper[V, P]) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[:n-1]
	return it
}

// Queue is a priority queue with minimum priority ordering.
type Queue[V any, P constraints.Ordered] struct {
	pq wrapper[V, P]
}

// New creates a new priority queue. Not required to call; the zero value is usable.
func New[V any, P constraints.Ordered]() Queue[V, P] {
	return Queue[V, P]{}
}

// Len returns the length of the priority queue.
func (pq *Queue[V, P]) Len() int {
	return pq.pq.Len()
}

// Push pushes value onto the priority queue with the given priority, returning its index.
func (pq *Queue[V, P]) Push(value V, priority P) int {
	it := &item[V, P]{object: value, priority: priority}
	heap.Push(&pq.pq, it)
	return it.index
}

// Peek returns the minimum element of the priority queue without removing it.
func (pq *Queue[V, P]) Peek() V {
	return pq.pq[0].object
}

// PeekPriority returns the minimum element's priority.
func (pq *Queue[V, P]) PeekPriority() P {
	return pq.pq[0].priority
}

// Pop removes and returns the minimum element of the priority queue.
func (pq *Queue[V, P]) Pop() V {
	return heap.Pop(&pq.pq).(*item[V, P]).object
}

// Update modifies the priority and value of the item at index in the queue,
// returning its updated index.
func (pq *Queue[V, P]) Update(index int, value V, priority P) int {
	if index < 0 || index >= len(pq.pq) {
		return -1
	}
	it := pq.pq[index]
	it.object = value
	it.priority = priority
	heap.Fix(&pq.pq, it.index)
	return it.index
}
