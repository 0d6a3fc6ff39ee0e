/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package worker

import (
	"encoding/binary"
	"strconv"

	"github.com/ndnx/corefwd/core"
	"github.com/ndnx/corefwd/face"
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/ndn/lpv2"
	"github.com/ndnx/corefwd/table"
)

// processIncomingInterest is the incoming Interest pipeline (§4.1).
func (w *Worker) processIncomingInterest(pendingPacket *ndn.PendingPacket) {
	if pendingPacket.IncomingFaceID == nil {
		core.LogError(w, "Interest missing IncomingFaceID - DROP")
		return
	}

	interest, err := ndn.DecodeInterest(pendingPacket.Wire)
	if err != nil {
		core.LogInfo(w, "Unable to decode Interest packet - DROP")
		return
	}

	incomingFace := face.FaceTable.Get(*pendingPacket.IncomingFaceID)
	if incomingFace == nil {
		core.LogError(w, "Non-existent incoming FaceID="+strconv.FormatUint(*pendingPacket.IncomingFaceID, 10)+" for Interest="+interest.Name().String()+" - DROP")
		return
	}

	if interest.HopLimit() != nil {
		if *interest.HopLimit() == 0 {
			core.LogDebug(w, "Received Interest="+interest.Name().String()+" with HopLimit=0 - DROP")
			return
		}
		decremented := *interest.HopLimit() - 1
		interest.SetHopLimit(&decremented)
	}

	incomingPitToken := make([]byte, len(pendingPacket.PitToken))
	copy(incomingPitToken, pendingPacket.PitToken)

	if incomingFace.Scope() == ndn.NonLocal && interest.Name().Size() > 0 && interest.Name().At(0).String() == "localhost" {
		core.LogWarn(w, "Interest "+interest.Name().String()+" from non-local FaceID="+strconv.FormatUint(incomingFace.FaceID(), 10)+" violates /localhost scope - DROP")
		return
	}

	w.NInInterests++

	if nonce := interest.Nonce(); len(nonce) == 4 {
		if w.deadNonceList.Find(interest.Name(), binary.BigEndian.Uint32(nonce)) {
			core.LogTrace(w, "Interest "+interest.Name().String()+" matches Dead Nonce List - sending Duplicate Nack")
			w.processOutgoingNack(ndn.NewNack(interest, lpv2.NackReasonDuplicate), nil, incomingFace.FaceID(), incomingFace.FaceID())
			return
		}
	}

	isReachingProducerRegion := true
	var forwardingHint *ndn.Delegation
	if len(interest.ForwardingHint()) > 0 {
		isReachingProducerRegion = false
		hints := interest.ForwardingHint()
		for i := range hints {
			fh := hints[i]
			if table.NetworkRegion.IsProducer(fh.Name()) {
				isReachingProducerRegion = true
				break
			} else if forwardingHint == nil || fh.Preference() < forwardingHint.Preference() {
				forwardingHint = &fh
			}
		}
		if isReachingProducerRegion {
			interest.ClearForwardingHints()
			forwardingHint = nil
		}
	}

	pitEntry, isDuplicate := w.pitCs.FindOrInsertPIT(interest, forwardingHint, incomingFace.FaceID())
	if isDuplicate {
		core.LogInfo(w, "Interest "+interest.Name().String()+" is looping - sending Duplicate Nack")
		w.processOutgoingNack(ndn.NewNack(interest, lpv2.NackReasonDuplicate), nil, incomingFace.FaceID(), incomingFace.FaceID())
		return
	}
	core.LogDebug(w, "Found or updated PIT entry for Interest="+interest.Name().String()+", PitToken="+strconv.FormatUint(uint64(pitEntry.Token), 10))

	strategyInstance := w.strategyFor(interest.Name())

	_, isAlreadyPending := pitEntry.FindOrInsertInRecord(interest, incomingFace.FaceID(), incomingPitToken)
	if !isAlreadyPending {
		core.LogTrace(w, "Interest "+interest.Name().String()+" is not pending")

		if table.CsServing {
			if csEntry := w.pitCs.FindMatchingDataCS(interest); csEntry != nil {
				strategyInstance.AfterContentStoreHit(pitEntry, incomingFace.FaceID(), csEntry.Data)
				return
			}
		}
	} else {
		core.LogTrace(w, "Interest "+interest.Name().String()+" is already pending")
	}

	pitEntry.UpdateExpirationTimer()

	if pendingPacket.NextHopFaceID != nil {
		if nextHopFace := face.FaceTable.Get(*pendingPacket.NextHopFaceID); nextHopFace != nil {
			core.LogTrace(w, "NextHopFaceId is set for Interest "+interest.Name().String()+" - dispatching directly to face")
			nextHopFace.SendPacket(pendingPacket)
		} else {
			core.LogInfo(w, "Non-existent face specified in NextHopFaceId for Interest "+interest.Name().String()+" - DROP")
		}
		return
	}

	var nexthops []*table.FibNextHopEntry
	if forwardingHint == nil {
		nexthops = table.FibStrategyTable.LongestPrefixNexthops(interest.Name())
	} else {
		nexthops = table.FibStrategyTable.LongestPrefixNexthops(forwardingHint.Name())
	}
	strategyInstance.AfterReceiveInterest(pitEntry, incomingFace.FaceID(), interest, nexthops)
}
