/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"strconv"

	"github.com/ndnx/corefwd/ndn/lpv2"
)

// Nack represents a network-layer negative acknowledgement: the rejected
// Interest plus a reason code. Concrete link-layer faces are responsible for
// wrapping/unwrapping the NDNLPv2 NetworkNack header field around the
// Interest's wire encoding; this type models only the logical content a
// worker pipeline needs to reason about.
type Nack struct {
	interest *Interest
	reason   uint64
}

// NewNack creates a Nack for the given Interest with the given reason.
func NewNack(interest *Interest, reason uint64) *Nack {
	return &Nack{interest: interest, reason: reason}
}

// Interest returns the Interest this Nack responds to.
func (n *Nack) Interest() *Interest {
	return n.interest
}

// Reason returns the Nack reason code (one of the lpv2.NackReason* constants).
func (n *Nack) Reason() uint64 {
	return n.reason
}

// SetReason sets the Nack reason code.
func (n *Nack) SetReason(reason uint64) {
	n.reason = reason
}

func reasonString(reason uint64) string {
	switch reason {
	case lpv2.NackReasonCongestion:
		return "Congestion"
	case lpv2.NackReasonDuplicate:
		return "Duplicate"
	case lpv2.NackReasonNoRoute:
		return "NoRoute"
	default:
		return "Reason" + strconv.FormatUint(reason, 10)
	}
}

func (n *Nack) String() string {
	str := "Nack(" + reasonString(n.reason)
	if n.interest != nil {
		str += ", " + n.interest.String()
	}
	str += ")"
	return str
}
