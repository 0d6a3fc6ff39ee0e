/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"container/list"
	"sync"
	"time"

	"github.com/ndnx/corefwd/ndn"
)

// RibEntry represents an entry in the Routing Information Base. The RIB
// keeps one or more candidate routes per prefix; RibTable flattens the
// minimum-cost route per next hop into the FIB-Strategy table on update,
// matching how a routing daemon feeds forwarding state without a Non-goal
// routing daemon actually running inside this process.
type RibEntry struct {
	component ndn.NameComponent
	Name      *ndn.Name
	depth     int

	parent   *RibEntry
	children []*RibEntry

	routes []*Route
}

// Route represents a candidate route in a RIB entry.
type Route struct {
	FaceID           uint64
	Origin           uint64
	Cost             uint64
	Flags            uint64
	ExpirationPeriod *time.Duration
}

// Route flags.
const (
	RouteFlagChildInherit uint64 = 0x01
	RouteFlagCapture      uint64 = 0x02
)

// Route origins.
const (
	RouteOriginApp       uint64 = 0
	RouteOriginStatic    uint64 = 255
	RouteOriginNLSR      uint64 = 128
	RouteOriginPrefixAnn uint64 = 129
	RouteOriginClient    uint64 = 65
	RouteOriginAutoreg   uint64 = 64
	RouteOriginAutoconf  uint64 = 66
)

// RibTable is the Routing Information Base.
type RibTable struct {
	RibEntry
	mutex sync.RWMutex
}

// Rib is the Routing Information Base for this forwarder.
var Rib = RibTable{
	RibEntry: RibEntry{children: []*RibEntry{}},
}

func (r *RibEntry) findExactMatchEntry(name *ndn.Name) *RibEntry {
	if name.Size() > r.depth {
		for _, child := range r.children {
			if name.At(child.depth-1).Equals(child.component) {
				return child.findExactMatchEntry(name)
			}
		}
	} else if name.Size() == r.depth {
		return r
	}
	return nil
}

func (r *RibEntry) findLongestPrefixEntry(name *ndn.Name) *RibEntry {
	if name.Size() > r.depth {
		for _, child := range r.children {
			if name.At(child.depth-1).Equals(child.component) {
				return child.findLongestPrefixEntry(name)
			}
		}
	}
	return r
}

func (r *RibEntry) fillTreeToPrefix(name *ndn.Name) *RibEntry {
	curNode := r.findLongestPrefixEntry(name)
	for depth := curNode.depth + 1; depth <= name.Size(); depth++ {
		newNode := &RibEntry{
			component: name.At(depth - 1).DeepCopy(),
			depth:     depth,
			parent:    curNode,
		}
		curNode.children = append(curNode.children, newNode)
		curNode = newNode
	}
	return curNode
}

func (r *RibEntry) pruneIfEmpty() {
	for entry := r; entry.parent != nil && len(entry.children) == 0 && len(entry.routes) == 0; entry = entry.parent {
		parent := entry.parent
		for i, child := range parent.children {
			if child == entry {
				parent.children = append(parent.children[:i], parent.children[i+1:]...)
				break
			}
		}
	}
}

func (r *RibEntry) updateNexthops() {
	FibStrategyTable.ClearNexthops(r.Name)

	minCostRoutes := make(map[uint64]uint64) // FaceID -> Cost
	for _, route := range r.routes {
		cost, ok := minCostRoutes[route.FaceID]
		if !ok || route.Cost < cost {
			minCostRoutes[route.FaceID] = route.Cost
		}
	}

	for nexthop, cost := range minCostRoutes {
		FibStrategyTable.AddNexthop(r.Name, nexthop, cost)
	}
}

// AddRoute adds or updates a RIB entry for the specified prefix and flattens
// it into the FIB-Strategy table.
func (r *RibTable) AddRoute(name *ndn.Name, faceID uint64, origin uint64, cost uint64, flags uint64, expirationPeriod *time.Duration) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	node := r.fillTreeToPrefix(name)
	if node.Name == nil {
		node.Name = name
	}
	defer node.updateNexthops()

	for _, existingRoute := range node.routes {
		if existingRoute.FaceID == faceID && existingRoute.Origin == origin {
			existingRoute.Cost = cost
			existingRoute.Flags = flags
			existingRoute.ExpirationPeriod = expirationPeriod
			return
		}
	}

	node.routes = append(node.routes, &Route{
		FaceID:           faceID,
		Origin:           origin,
		Cost:             cost,
		Flags:            flags,
		ExpirationPeriod: expirationPeriod,
	})

	for _, readvertiser := range readvertisers {
		readvertiser.Announce(name, node.routes[len(node.routes)-1])
	}
}

// RemoveRoute removes the specified route from the specified prefix.
func (r *RibTable) RemoveRoute(name *ndn.Name, faceID uint64, origin uint64) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry := r.findExactMatchEntry(name)
	if entry == nil {
		return
	}
	for i, existingRoute := range entry.routes {
		if existingRoute.FaceID == faceID && existingRoute.Origin == origin {
			entry.routes = append(entry.routes[:i], entry.routes[i+1:]...)
			break
		}
	}
	entry.updateNexthops()
	entry.pruneIfEmpty()

	for _, readvertiser := range readvertisers {
		readvertiser.Withdraw(name, faceID, origin)
	}
}

// GetAllEntries returns all routes in the RIB.
func (r *RibTable) GetAllEntries() []*RibEntry {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entries := make([]*RibEntry, 0)
	queue := list.New()
	queue.PushBack(&r.RibEntry)
	for queue.Len() > 0 {
		front := queue.Front()
		ribEntry := front.Value.(*RibEntry)
		queue.Remove(front)
		for _, child := range ribEntry.children {
			queue.PushBack(child)
		}
		if len(ribEntry.routes) > 0 {
			entries = append(entries, ribEntry)
		}
	}
	return entries
}

// GetRoutes returns all routes in the RIB entry.
func (r *RibEntry) GetRoutes() []*Route {
	return r.routes
}

// CleanUpFace removes the specified face from all entries. Used for clean-up after a face is destroyed.
func (r *RibEntry) CleanUpFace(faceID uint64) {
	for _, child := range r.children {
		child.CleanUpFace(faceID)
	}

	if r.Name == nil {
		return
	}
	kept := r.routes[:0]
	for _, existingRoute := range r.routes {
		if existingRoute.FaceID != faceID {
			kept = append(kept, existingRoute)
		}
	}
	r.routes = kept
	r.updateNexthops()
	r.pruneIfEmpty()
}
