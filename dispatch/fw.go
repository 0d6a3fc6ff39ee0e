/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package dispatch

import "github.com/ndnx/corefwd/ndn"

// FWThread provides an interface that forwarding workers can satisfy (to
// avoid a circular dependency between faces and the worker pool). Interests,
// Data, and Nacks (an Interest wire with NackReason set, per §4.5/§6) all
// travel through the same inbound queue; the worker tells them apart once
// it dequeues a packet.
type FWThread interface {
	String() string

	QueuePacket(packet *ndn.PendingPacket) bool
}
