/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/ndnx/corefwd/core"
	"github.com/ndnx/corefwd/dispatch"
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/ndn/tlv"
)

// InternalTransport pairs with a Face to carry traffic between the
// forwarder and an in-process component (e.g., management) without a real
// link-layer transport, matching spec.md §4.10's internal face for
// self-traffic.
type InternalTransport struct {
	face      *Face
	recvQueue chan *ndn.PendingPacket
	hasQuit   chan interface{}
}

// MakeInternalTransport creates a Face/InternalTransport pair. The
// returned Face is registered in the FaceTable and marked up.
func MakeInternalTransport() (*Face, *InternalTransport) {
	localURI := ndn.MakeInternalFaceURI()
	remoteURI := ndn.MakeInternalFaceURI()
	f := NewFace(localURI, remoteURI, PersistencyPersistent, ndn.PointToPoint, tlv.MaxNDNPacketSize)

	t := &InternalTransport{
		face:      f,
		recvQueue: make(chan *ndn.PendingPacket, faceQueueSize),
		hasQuit:   make(chan interface{}, 1),
	}

	FaceTable.Add(f)
	f.Up()
	EmitFaceEvent(FaceEventCreated, f)

	go t.run()

	return f, t
}

// Send delivers a packet from the internal component's perspective into
// the forwarding pipeline. The run goroutine drains recvQueue and hands
// each packet to dispatch.DispatchPacket, stamped with this transport's
// own FaceID as IncomingFaceID, so self-traffic (e.g. management) reaches
// a worker the same way a real transport's read loop would.
func (t *InternalTransport) Send(packet *ndn.PendingPacket) {
	select {
	case t.recvQueue <- packet:
	default:
		core.LogWarn(t.face, "internal transport recv queue full - DROP")
	}
}

// run drains packets sent by the internal component and dispatches them
// into the forwarding pipeline until the transport's face closes.
func (t *InternalTransport) run() {
	for {
		select {
		case packet := <-t.recvQueue:
			faceID := t.face.FaceID()
			packet.IncomingFaceID = &faceID
			if !dispatch.DispatchPacket(packet) {
				core.LogWarn(t.face, "unable to dispatch internal packet - DROP")
			}
		case <-t.hasQuit:
			return
		}
	}
}

// Close stops the transport's dispatch goroutine and closes the paired
// Face.
func (t *InternalTransport) Close() {
	t.hasQuit <- true
	t.face.Close()
}

// Receive returns the channel of packets the forwarder has sent to this
// internal component.
func (t *InternalTransport) Receive() <-chan *ndn.PendingPacket {
	return t.face.ReceiveQueue()
}

// Face returns the Face half of this transport pair.
func (t *InternalTransport) Face() *Face {
	return t.face
}
