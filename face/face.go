/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"strconv"
	"sync"

	"github.com/ndnx/corefwd/core"
	"github.com/ndnx/corefwd/dispatch"
	"github.com/ndnx/corefwd/ndn"
)

// faceQueueSize is the capacity of a face's outbound packet queue.
const faceQueueSize = 1024

// Face represents one endpoint a worker can forward Interests, Data, and
// Nacks across. Concrete link-layer transports (UDP, TCP, Unix, Ethernet,
// WebSocket) are out of scope for this forwarder; Face carries the state a
// strategy or management command needs to reason about a neighbor (scope,
// persistency, link type, up/down) and an outbound queue that a transport
// (or, for self-traffic, the paired InternalTransport) would drain.
type Face struct {
	faceID      uint64
	localURI    *ndn.URI
	remoteURI   *ndn.URI
	scope       ndn.Scope
	linkType    ndn.LinkType
	persistency Persistency
	mtu         int
	state       ndn.State

	admitUnsolicitedData bool

	sendQueue chan *ndn.PendingPacket

	mutex sync.RWMutex
}

// NewFace creates a Face not yet registered in the FaceTable.
func NewFace(localURI, remoteURI *ndn.URI, persistency Persistency, linkType ndn.LinkType, mtu int) *Face {
	f := new(Face)
	f.localURI = localURI
	f.remoteURI = remoteURI
	f.persistency = persistency
	f.linkType = linkType
	f.mtu = mtu
	f.sendQueue = make(chan *ndn.PendingPacket, faceQueueSize)
	f.state = ndn.Down
	f.admitUnsolicitedData = false
	if localURI != nil {
		f.scope = localURI.Scope()
	} else {
		f.scope = ndn.Unknown
	}
	return f
}

func (f *Face) String() string {
	return "Face, FaceID=" + strconv.FormatUint(f.faceID, 10) +
		", RemoteURI=" + f.remoteURI.String() + ", LocalURI=" + f.localURI.String()
}

// SetFaceID sets the face's ID; the FaceTable calls it on registration. A
// later call overwrites the ID.
func (f *Face) SetFaceID(faceID uint64) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.faceID = faceID
}

// FaceID returns the ID of the face.
func (f *Face) FaceID() uint64 {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.faceID
}

// LocalURI returns the local URI of the face.
func (f *Face) LocalURI() *ndn.URI {
	return f.localURI
}

// RemoteURI returns the remote URI of the face.
func (f *Face) RemoteURI() *ndn.URI {
	return f.remoteURI
}

// Scope returns the scope of the face.
func (f *Face) Scope() ndn.Scope {
	return f.scope
}

// LinkType returns the link type of the face.
func (f *Face) LinkType() ndn.LinkType {
	return f.linkType
}

// Persistency returns the face's persistency setting.
func (f *Face) Persistency() Persistency {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.persistency
}

// SetPersistency changes the persistency of the face. OnDemand faces cannot
// be made persistent or permanent, matching NFD's face persistency rules.
func (f *Face) SetPersistency(persistency Persistency) bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if persistency == f.persistency {
		return true
	}
	if f.persistency == PersistencyOnDemand && persistency != PersistencyOnDemand {
		return false
	}
	f.persistency = persistency
	return true
}

// MTU returns the maximum transmission unit of the face.
func (f *Face) MTU() int {
	return f.mtu
}

// State returns the current state of the face.
func (f *Face) State() ndn.State {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.state
}

// changeState transitions the face to a new state, logging the transition.
// Closed is terminal: once reached the face is removed from the FaceTable
// and changeState refuses any further transition.
func (f *Face) changeState(new ndn.State) {
	f.mutex.Lock()
	old := f.state
	if old == new || old == ndn.Closed {
		f.mutex.Unlock()
		return
	}
	f.state = new
	f.mutex.Unlock()

	core.LogInfo(f, "state: "+old.String()+" -> "+new.String())

	if new == ndn.Closed {
		FaceTable.Remove(f.faceID)
	}
}

// Up marks the face as operational, e.g. after a transport reconnects.
func (f *Face) Up() {
	f.changeState(ndn.Up)
}

// Down marks the face as temporarily unusable, either by the remote peer
// or a transport error. A Down face remains in the FaceTable and may
// later return to Up.
func (f *Face) Down() {
	f.changeState(ndn.Down)
}

// Close permanently tears down the face and removes it from the
// FaceTable. A Closed face never transitions again.
func (f *Face) Close() {
	f.changeState(ndn.Closed)
}

// AdmitsUnsolicitedData reports this face's local policy on caching Data
// that arrives with no matching PIT entry. The Content Store only admits
// such Data when this is true, in addition to the forwarder-global flag.
func (f *Face) AdmitsUnsolicitedData() bool {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.admitUnsolicitedData
}

// SetAdmitsUnsolicitedData changes the face's unsolicited-Data policy.
func (f *Face) SetAdmitsUnsolicitedData(admit bool) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.admitUnsolicitedData = admit
}

// SendPacket queues a packet for delivery out this face. Packets are
// dropped under congestion rather than blocking the calling worker.
func (f *Face) SendPacket(packet *ndn.PendingPacket) {
	if f.State() != ndn.Up {
		core.LogWarn(f, "cannot send packet on down face - DROP")
		return
	}

	select {
	case f.sendQueue <- packet:
	default:
		core.LogWarn(f, "dropped packet due to congestion")
	}
}

// ReceiveQueue exposes the face's outbound queue to its transport (or, for
// an internal face, to the paired InternalTransport) for draining.
func (f *Face) ReceiveQueue() <-chan *ndn.PendingPacket {
	return f.sendQueue
}

var _ dispatch.Face = (*Face)(nil)
