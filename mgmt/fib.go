/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"errors"
	"strconv"

	"github.com/ndnx/corefwd/core"
	"github.com/ndnx/corefwd/face"
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/table"
)

// ErrFaceNotFound is returned when a FIB operation names a FaceID not
// present in the FaceTable.
var ErrFaceNotFound = errors.New("face does not exist")

// FIBModule is the in-process collaborator surface for FIB management
// (§6): add/remove nexthop, list entries. Trimmed from the teacher's NFD
// management-protocol verbs (add-nexthop/remove-nexthop/list) down to
// their in-memory CRUD semantics, since the management TLV protocol
// itself is out of scope - callers are other in-process components, not
// remote management Interests carrying ControlParameters.
type FIBModule struct{}

func (FIBModule) String() string {
	return "FIBMgmt"
}

// AddNextHop registers faceID as a nexthop for prefix with the given
// routing cost, or updates the cost if the nexthop already exists.
func (f FIBModule) AddNextHop(prefix *ndn.Name, faceID uint64, cost uint64) error {
	if face.FaceTable.Get(faceID) == nil {
		return ErrFaceNotFound
	}
	table.FibStrategyTable.AddNexthop(prefix, faceID, cost)
	core.LogInfo(f, "Created nexthop for "+prefix.String()+" to FaceID="+strconv.FormatUint(faceID, 10)+" with Cost="+strconv.FormatUint(cost, 10))
	return nil
}

// RemoveNextHop removes faceID as a nexthop for prefix.
func (f FIBModule) RemoveNextHop(prefix *ndn.Name, faceID uint64) {
	table.FibStrategyTable.RemoveNexthop(prefix, faceID)
	core.LogInfo(f, "Removed nexthop for "+prefix.String()+" to FaceID="+strconv.FormatUint(faceID, 10))
}

// FIBEntry is a snapshot of one FIB prefix's nexthops.
type FIBEntry struct {
	Name     *ndn.Name
	Nexthops []*table.FibNextHopEntry
}

// List returns a snapshot of every FIB entry.
func (FIBModule) List() []FIBEntry {
	fsEntries := table.FibStrategyTable.GetAllFIBEntries()
	entries := make([]FIBEntry, len(fsEntries))
	for i, fsEntry := range fsEntries {
		entries[i] = FIBEntry{Name: fsEntry.Name, Nexthops: fsEntry.GetNexthops()}
	}
	return entries
}
