/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import "github.com/ndnx/corefwd/ndn"

// RibReadvertise is the seam a routing daemon would implement to learn
// about locally-added/removed routes and readvertise them elsewhere. This
// system keeps the seam without running a routing daemon itself, matching
// spec.md's exclusion of "the routing daemon" as a component.
type RibReadvertise interface {
	Announce(name *ndn.Name, route *Route)
	Withdraw(name *ndn.Name, faceID uint64, origin uint64)
}

var readvertisers = make([]RibReadvertise, 0)

// AddReadvertiser registers a readvertise policy to be notified of RIB changes.
func AddReadvertiser(r RibReadvertise) {
	readvertisers = append(readvertisers, r)
}
