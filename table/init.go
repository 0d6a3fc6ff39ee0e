/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/ndnx/corefwd/core"
	"github.com/ndnx/corefwd/ndn"
)

// tableQueueSize is the maxmimum size of queues in the tables.
var tableQueueSize int

// deadNonceListLifetime is the lifetime of entries in the dead nonce list.
var deadNonceListLifetime time.Duration

// csCapacity is the default capacity of each forwarding worker's Content Store.
var csCapacity int

// csReplacementPolicy is the replacement policy used by Content Stores in the forwarder.
var csReplacementPolicy string

// CsServing is the forwarder-global flag controlling whether an incoming
// Interest is checked against the Content Store at all (§9).
var CsServing bool

// CsAdmitting is the forwarder-global flag controlling whether incoming
// Data may be cached. The effective admission decision for a given piece
// of Data is this flag ANDed with the ingress face's
// AdmitsUnsolicitedData policy (§9's resolved Open Question).
var CsAdmitting bool

// producerRegions contains the prefixes produced in this forwarder's region.
var producerRegions []string

// Configure configures the forwarding system.
func Configure() {
	tableQueueSize = core.GetConfigIntDefault("tables.queue_size", 1024)
	deadNonceListLifetime = time.Duration(core.GetConfigIntDefault("tables.dead_nonce_list.lifetime", 6000)) * time.Millisecond
	csCapacity = core.GetConfigIntDefault("tables.content_store.capacity", 1024)
	csReplacementPolicy = core.GetConfigStringDefault("tables.content_store.replacement_policy", "lru")
	switch csReplacementPolicy {
	case "lru", "lfu", "priority":
	default:
		core.LogWarn("Table", "Unknown CS replacement policy "+csReplacementPolicy+", defaulting to lru")
		csReplacementPolicy = "lru"
	}
	CsServing = core.GetConfigBoolDefault("tables.content_store.serve", true)
	CsAdmitting = core.GetConfigBoolDefault("tables.content_store.admit", true)
	producerRegions = core.GetConfigArrayString("tables.network_region.regions")
	if producerRegions == nil {
		producerRegions = make([]string, 0)
	}
	for _, region := range producerRegions {
		name, err := ndn.NameFromString(region)
		if err != nil {
			core.LogFatal("NetworkRegionTable", "Could not add name="+region+" to table: "+err.Error())
		}
		NetworkRegion.Add(name)
		core.LogDebug("NetworkRegionTable", "Added name="+region+" to table")
	}
}
