/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package worker

import (
	"strconv"

	"github.com/ndnx/corefwd/core"
	"github.com/ndnx/corefwd/face"
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/ndn/lpv2"
	"github.com/ndnx/corefwd/table"
)

// processOutgoingInterest is the outgoing Interest pipeline (§4.2).
func (w *Worker) processOutgoingInterest(interest *ndn.Interest, pitEntry *table.PitEntry, nexthop uint64, inFace uint64) {
	core.LogTrace(w, "OnOutgoingInterest: "+interest.Name().String()+", FaceID="+strconv.FormatUint(nexthop, 10))

	outgoingFace := face.FaceTable.Get(nexthop)
	if outgoingFace == nil {
		core.LogError(w, "Non-existent nexthop FaceID="+strconv.FormatUint(nexthop, 10)+" for Interest="+interest.Name().String()+" - DROP")
		return
	}

	if interest.HopLimit() != nil && *interest.HopLimit() == 0 && outgoingFace.Scope() == ndn.NonLocal {
		core.LogDebug(w, "Attempting to send Interest="+interest.Name().String()+" with HopLimit=0 to non-local face - DROP")
		return
	}

	pitEntry.FindOrInsertOutRecord(interest, nexthop)

	w.NOutInterests++

	pendingPacket := new(ndn.PendingPacket)
	pendingPacket.IncomingFaceID = new(uint64)
	*pendingPacket.IncomingFaceID = inFace
	// PitToken injection (§4.2/§4.9): workerId lets dispatch route the
	// satisfying Data straight back to this worker without re-hashing its
	// name; the low 32 bits of the nameHash slot carry pitEntry.Token so
	// this worker can find the exact PIT entry in O(1) on return.
	pendingPacket.PitToken = lpv2.MakePitToken(uint32(w.id), 0, uint64(pitEntry.Token))

	var err error
	pendingPacket.Wire, err = interest.Encode()
	if err != nil {
		core.LogWarn(w, "Unable to encode Interest "+interest.Name().String()+" ("+err.Error()+") - DROP")
		return
	}
	outgoingFace.SendPacket(pendingPacket)
}
