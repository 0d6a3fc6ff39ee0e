/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"time"

	"github.com/ndnx/corefwd/core"
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/table"
)

// RibModule is the in-process collaborator surface for RIB management
// (§6/supplemented module 3): register/unregister route, list routes.
// A registered route is flattened into the FIB-Strategy table's nexthops
// immediately by table.RibTable itself; this module only exposes that
// operation and a read-only snapshot to callers, since the routing daemon
// that would normally drive it is out of scope.
type RibModule struct{}

func (RibModule) String() string {
	return "RibMgmt"
}

// RegisterRoute adds or updates a route for prefix via faceID, replacing
// spec.md's excluded routing-daemon-to-RIB channel with a direct call.
func (r RibModule) RegisterRoute(prefix *ndn.Name, faceID uint64, origin uint64, cost uint64, flags uint64, expirationPeriod *time.Duration) {
	table.Rib.AddRoute(prefix, faceID, origin, cost, flags, expirationPeriod)
	core.LogInfo(r, "Registered route for "+prefix.String())
}

// UnregisterRoute removes the route for prefix registered by faceID/origin.
func (r RibModule) UnregisterRoute(prefix *ndn.Name, faceID uint64, origin uint64) {
	table.Rib.RemoveRoute(prefix, faceID, origin)
	core.LogInfo(r, "Unregistered route for "+prefix.String())
}

// RibEntry is a snapshot of one prefix's candidate routes.
type RibEntry struct {
	Name   *ndn.Name
	Routes []*table.Route
}

// List returns a snapshot of every RIB entry that has at least one route.
func (RibModule) List() []RibEntry {
	ribEntries := table.Rib.GetAllEntries()
	entries := make([]RibEntry, len(ribEntries))
	for i, ribEntry := range ribEntries {
		entries[i] = RibEntry{Name: ribEntry.Name, Routes: ribEntry.GetRoutes()}
	}
	return entries
}
