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

// processIncomingData is the incoming Data pipeline (§4.3).
func (w *Worker) processIncomingData(pendingPacket *ndn.PendingPacket) {
	if pendingPacket.IncomingFaceID == nil {
		core.LogError(w, "Data missing IncomingFaceID - DROP")
		return
	}

	var pitToken *uint32
	if _, _, nameHash, ok := lpv2.ParsePitToken(pendingPacket.PitToken); ok {
		pitToken = new(uint32)
		*pitToken = uint32(nameHash)
	}

	data, err := ndn.DecodeData(pendingPacket.Wire)
	if err != nil {
		core.LogInfo(w, "Unable to decode Data packet - DROP")
		return
	}

	incomingFace := face.FaceTable.Get(*pendingPacket.IncomingFaceID)
	if incomingFace == nil {
		core.LogError(w, "Non-existent incoming FaceID="+strconv.FormatUint(*pendingPacket.IncomingFaceID, 10)+" for Data="+data.Name().String()+" - DROP")
		return
	}

	core.LogTrace(w, "OnIncomingData: "+data.Name().String()+", FaceID="+strconv.FormatUint(incomingFace.FaceID(), 10))

	w.NInData++

	if incomingFace.Scope() == ndn.NonLocal && data.Name().Size() > 0 && data.Name().At(0).String() == "localhost" {
		core.LogWarn(w, "Data "+data.Name().String()+" from non-local FaceID="+strconv.FormatUint(incomingFace.FaceID(), 10)+" violates /localhost scope - DROP")
		return
	}

	pitEntries := w.pitCs.FindPITFromData(data, pitToken)

	if table.CsAdmitting && (len(pitEntries) > 0 || incomingFace.AdmitsUnsolicitedData()) {
		w.pitCs.InsertDataCS(data)
	}

	if len(pitEntries) == 0 {
		core.LogDebug(w, "Unsolicited Data "+data.Name().String()+" - DROP")
		return
	}

	strategyInstance := w.strategyFor(data.Name())

	if len(pitEntries) == 1 {
		pitEntries[0].SetExpirationTimerToNow()

		core.LogTrace(w, "Sending Data="+data.Name().String()+" to strategy for its BeforeSatisfyInterest/AfterReceiveData pipeline")
		strategyInstance.AfterReceiveData(pitEntries[0], *pendingPacket.IncomingFaceID, data)

		pitEntries[0].Satisfied = true
		w.NSatisfiedInterests++

		for _, outRecord := range pitEntries[0].OutRecords {
			if len(outRecord.LatestNonce) == 4 {
				w.deadNonceList.Insert(outRecord.LatestInterest.Name(), binary.BigEndian.Uint32(outRecord.LatestNonce))
			}
		}
		pitEntries[0].ClearOutRecords()
		return
	}

	for _, pitEntry := range pitEntries {
		downstreams := make(map[uint64][]byte)
		for downstreamFaceID, downstreamRecord := range pitEntry.InRecords {
			if downstreamFaceID != *pendingPacket.IncomingFaceID {
				downstreams[downstreamFaceID] = append([]byte(nil), downstreamRecord.PitToken...)
			}
		}

		pitEntry.SetExpirationTimerToNow()

		strategyInstance.BeforeSatisfyInterest(pitEntry, *pendingPacket.IncomingFaceID, data)

		pitEntry.Satisfied = true
		w.NSatisfiedInterests++

		for _, outRecord := range pitEntry.OutRecords {
			if len(outRecord.LatestNonce) == 4 {
				w.deadNonceList.Insert(outRecord.LatestInterest.Name(), binary.BigEndian.Uint32(outRecord.LatestNonce))
			}
		}

		pitEntry.ClearInRecords()
		pitEntry.ClearOutRecords()

		for downstreamFaceID, downstreamPitToken := range downstreams {
			core.LogTrace(w, "Multiple matching PIT entries for "+data.Name().String()+" - running outgoing Data pipeline for FaceID="+strconv.FormatUint(downstreamFaceID, 10))
			w.processOutgoingData(data, pitEntry, downstreamFaceID, downstreamPitToken, *pendingPacket.IncomingFaceID)
		}
	}
}
