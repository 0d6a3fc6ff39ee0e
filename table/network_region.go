/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import "github.com/ndnx/corefwd/ndn"

// networkRegionTable tracks the name prefixes this forwarder considers
// itself a producer region for, used to resolve forwarding hints (§4.7):
// an Interest carrying a ForwardingHint delegation naming a prefix in this
// table is treated as if it had arrived for the local region, dropping the
// hint so normal FIB lookup on the Interest's own name takes over.
type networkRegionTable struct {
	table []*ndn.Name
}

// NetworkRegion contains producer region names for this forwarder.
var NetworkRegion *networkRegionTable

func init() {
	NetworkRegion = new(networkRegionTable)
}

// Add adds a name to the network region table.
func (n *networkRegionTable) Add(name *ndn.Name) {
	for _, region := range n.table {
		if region.Equals(name) {
			return
		}
	}
	n.table = append(n.table, name)
}

// IsProducer returns whether an entry in the network region table is a prefix of the specified name.
func (n *networkRegionTable) IsProducer(name *ndn.Name) bool {
	for _, region := range n.table {
		if region.PrefixOf(name) {
			return true
		}
	}
	return false
}
