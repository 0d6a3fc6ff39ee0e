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
	"github.com/ndnx/corefwd/table"
)

// processOutgoingData is the outgoing Data pipeline (§4.4).
func (w *Worker) processOutgoingData(data *ndn.Data, pitEntry *table.PitEntry, nexthop uint64, pitToken []byte, inFace uint64) {
	core.LogTrace(w, "OnOutgoingData: "+data.Name().String()+", FaceID="+strconv.FormatUint(nexthop, 10))

	outgoingFace := face.FaceTable.Get(nexthop)
	if outgoingFace == nil {
		core.LogError(w, "Non-existent nexthop FaceID="+strconv.FormatUint(nexthop, 10)+" for Data="+data.Name().String()+" - DROP")
		return
	}

	if outgoingFace.Scope() == ndn.NonLocal && data.Name().Size() > 0 && data.Name().At(0).String() == "localhost" {
		core.LogWarn(w, "Data "+data.Name().String()+" cannot be sent to non-local FaceID="+strconv.FormatUint(nexthop, 10)+" since it violates /localhost scope - DROP")
		return
	}

	w.NOutData++

	pendingPacket := new(ndn.PendingPacket)
	if len(pitToken) > 0 {
		pendingPacket.PitToken = append([]byte(nil), pitToken...)
	}
	pendingPacket.IncomingFaceID = new(uint64)
	*pendingPacket.IncomingFaceID = inFace

	var err error
	pendingPacket.Wire, err = data.Encode()
	if err != nil {
		core.LogWarn(w, "Unable to encode Data "+data.Name().String()+" ("+err.Error()+") - DROP")
		return
	}
	outgoingFace.SendPacket(pendingPacket)
	pitEntry.RemoveInRecord(nexthop)
}
