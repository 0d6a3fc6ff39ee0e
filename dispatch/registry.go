/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package dispatch

import (
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/ndn/lpv2"
	"github.com/ndnx/corefwd/ndn/tlv"
	"github.com/ndnx/corefwd/ndn/util"
)

// workers holds every forwarding worker, indexed by worker ID, so a face
// can hand off a packet to the worker that owns its name without face
// importing worker (which would create an import cycle: worker already
// needs face's collaborator interfaces).
var workers []FWThread

// InitializeWorkers registers the running worker pool for dispatch.
func InitializeWorkers(ws []FWThread) {
	workers = ws
}

// GetWorker returns the worker with the given ID, or nil if out of range.
func GetWorker(id int) FWThread {
	if id < 0 || id >= len(workers) {
		return nil
	}
	return workers[id]
}

// NumWorkers returns the number of registered workers.
func NumWorkers() int {
	return len(workers)
}

// DispatchPacket routes a packet to the worker that should process it
// (§4.9). Data and Nacks that carry a PitToken are routed directly to the
// workerId embedded in it, the worker that owns the PIT entry being
// satisfied or rejected, with no name lookup at all. Everything else
// (Interests, and any Data/Nack that arrives without a token) falls back to
// hashing the packet's name with HashNameToWorker. Returns false if the
// packet could not be routed or no worker is registered to receive it.
func DispatchPacket(packet *ndn.PendingPacket) bool {
	if len(workers) == 0 {
		return false
	}

	if workerID, _, _, ok := lpv2.ParsePitToken(packet.PitToken); ok {
		worker := GetWorker(int(workerID))
		if worker == nil {
			return false
		}
		return worker.QueuePacket(packet)
	}

	if packet.Wire == nil {
		return false
	}

	name, err := peekName(packet.Wire)
	if err != nil {
		return false
	}

	worker := GetWorker(HashNameToWorker(name, len(workers)))
	if worker == nil {
		return false
	}
	return worker.QueuePacket(packet)
}

// peekName extracts just the Name element from an Interest or Data wire
// without decoding the rest of the packet, so dispatch can hash a name to
// a worker before the worker does the full decode.
func peekName(wire *tlv.Block) (*ndn.Name, error) {
	raw, err := wire.Wire()
	if err != nil {
		return nil, err
	}
	packet, _, err := tlv.DecodeBlock(raw)
	if err != nil {
		return nil, err
	}
	packet.Parse()
	nameBlock := packet.Find(tlv.Name)
	if nameBlock == nil {
		return nil, util.ErrNonExistent
	}
	return ndn.DecodeName(nameBlock)
}
