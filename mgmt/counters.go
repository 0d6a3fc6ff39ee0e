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
	"github.com/ndnx/corefwd/table"
	"github.com/ndnx/corefwd/worker"
)

// GeneralStatus is a snapshot of the forwarder's aggregate counters across
// every worker, trimmed from the teacher's ForwarderStatus dataset down to
// a plain Go struct since the management TLV protocol is out of scope.
type GeneralStatus struct {
	Version               string
	StartTimestamp        time.Time
	CurrentTimestamp      time.Time
	NFibEntries           uint64
	NPitEntries           uint64
	NCsEntries            uint64
	NInInterests          uint64
	NInData               uint64
	NInNacks              uint64
	NOutInterests         uint64
	NOutData              uint64
	NOutNacks             uint64
	NSatisfiedInterests   uint64
	NUnsatisfiedInterests uint64
}

// CountersModule is the in-process collaborator surface for forwarder
// status management (§6): a point-in-time counters snapshot summed across
// every forwarding worker.
type CountersModule struct{}

func (CountersModule) String() string {
	return "ForwarderStatusMgmt"
}

// General returns a snapshot of the forwarder's aggregate status.
func (CountersModule) General() GeneralStatus {
	status := GeneralStatus{
		Version:          core.Version,
		StartTimestamp:   core.StartTimestamp,
		CurrentTimestamp: time.Now(),
		NFibEntries:      uint64(len(table.FibStrategyTable.GetAllFIBEntries())),
	}
	for _, w := range worker.Workers {
		status.NPitEntries += uint64(w.GetNumPitEntries())
		status.NCsEntries += uint64(w.GetNumCsEntries())
		status.NInInterests += w.NInInterests
		status.NInData += w.NInData
		status.NInNacks += w.NInNacks
		status.NOutInterests += w.NOutInterests
		status.NOutData += w.NOutData
		status.NOutNacks += w.NOutNacks
		status.NSatisfiedInterests += w.NSatisfiedInterests
		status.NUnsatisfiedInterests += w.NUnsatisfiedInterests
	}
	return status
}
