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

// processIncomingNack is the incoming Nack pipeline (§4.5), added where the
// teacher's snapshot dropped Nack handling entirely ("since we don't use
// Nacks, just drop" in fw/thread.go). A Nack's wire is the rejected
// Interest's own encoding; NackReason carries the reason code the link
// layer attached as an NDNLPv2 NetworkNack header field.
func (w *Worker) processIncomingNack(pendingPacket *ndn.PendingPacket) {
	if pendingPacket.IncomingFaceID == nil {
		core.LogError(w, "Nack missing IncomingFaceID - DROP")
		return
	}

	interest, err := ndn.DecodeInterest(pendingPacket.Wire)
	if err != nil {
		core.LogInfo(w, "Unable to decode Nack's Interest - DROP")
		return
	}

	incomingFace := face.FaceTable.Get(*pendingPacket.IncomingFaceID)
	if incomingFace == nil {
		core.LogError(w, "Non-existent incoming FaceID="+strconv.FormatUint(*pendingPacket.IncomingFaceID, 10)+" for Nack on Interest="+interest.Name().String()+" - DROP")
		return
	}

	w.NInNacks++

	nack := ndn.NewNack(interest, *pendingPacket.NackReason)
	core.LogTrace(w, "OnIncomingNack: "+nack.String()+", FaceID="+strconv.FormatUint(incomingFace.FaceID(), 10))

	pitEntry := w.findPitEntryForOutRecord(interest, incomingFace.FaceID())
	if pitEntry == nil {
		core.LogDebug(w, "No PIT entry for Nack on Interest="+interest.Name().String()+" from FaceID="+strconv.FormatUint(incomingFace.FaceID(), 10)+" - DROP")
		return
	}

	outRecord, ok := pitEntry.OutRecords[incomingFace.FaceID()]
	if !ok || !sameNonce(outRecord.LatestNonce, interest.Nonce()) {
		core.LogDebug(w, "Nack for Interest="+interest.Name().String()+" does not match latest out-record nonce - DROP")
		return
	}

	delete(pitEntry.OutRecords, incomingFace.FaceID())

	w.strategyFor(interest.Name()).AfterReceiveNack(pitEntry, incomingFace.FaceID(), nack)
}

// findPitEntryForOutRecord looks up the PIT entry matching a Nack's
// Interest: an exact, non-prefix PIT lookup against out-records on the
// given face, since a Nack can only ever answer an Interest this worker
// itself forwarded.
func (w *Worker) findPitEntryForOutRecord(interest *ndn.Interest, inFace uint64) *table.PitEntry {
	for _, candidate := range w.pitCs.FindPITEntriesByName(interest.Name()) {
		if _, ok := candidate.OutRecords[inFace]; ok {
			return candidate
		}
	}
	return nil
}

func sameNonce(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// processOutgoingNack is the outgoing Nack pipeline (§4.5): encodes the
// rejected Interest and stamps NackReason, matching how an incoming Nack's
// wire is modeled. pitEntry is nil for a Nack sent back before any in-record
// exists for nexthop (the Dead Nonce List and looping-Interest duplicate
// Nacks in processIncomingInterest, each rejecting the incoming request itself rather than
// satisfying a previously-recorded consumer); otherwise an in-record for
// nexthop is required and is deleted once the Nack is sent.
func (w *Worker) processOutgoingNack(nack *ndn.Nack, pitEntry *table.PitEntry, nexthop uint64, inFace uint64) {
	core.LogTrace(w, "OnOutgoingNack: "+nack.String()+", FaceID="+strconv.FormatUint(nexthop, 10))

	outgoingFace := face.FaceTable.Get(nexthop)
	if outgoingFace == nil {
		core.LogError(w, "Non-existent nexthop FaceID="+strconv.FormatUint(nexthop, 10)+" for Nack - DROP")
		return
	}

	if pitEntry != nil {
		if _, ok := pitEntry.InRecords[nexthop]; !ok {
			core.LogDebug(w, "No in-record for Nack on "+nack.String()+" to FaceID="+strconv.FormatUint(nexthop, 10)+" - DROP")
			return
		}
	}

	w.NOutNacks++

	pendingPacket := new(ndn.PendingPacket)
	pendingPacket.IncomingFaceID = new(uint64)
	*pendingPacket.IncomingFaceID = inFace
	pendingPacket.NackReason = new(uint64)
	*pendingPacket.NackReason = nack.Reason()

	var err error
	pendingPacket.Wire, err = nack.Interest().Encode()
	if err != nil {
		core.LogWarn(w, "Unable to encode Nack's Interest ("+err.Error()+") - DROP")
		return
	}
	outgoingFace.SendPacket(pendingPacket)
	if pitEntry != nil {
		pitEntry.RemoveInRecord(nexthop)
	}
}
