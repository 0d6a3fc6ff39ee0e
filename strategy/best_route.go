/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package strategy

import (
	"strconv"

	"github.com/ndnx/corefwd/core"
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/table"
)

func init() {
	Register(Prefix+"/best-route", 1, func() Strategy { return new(BestRoute) })
}

// BestRoute forwards an Interest to the single lowest-cost nexthop. It keeps
// no record of nexthops already tried, so a repeated AfterReceiveInterest
// call picks the same lowest-cost nexthop again; it never fans a single
// Interest out to more than one face.
type BestRoute struct {
	Base
}

func (s *BestRoute) Instantiate(worker Worker, name *ndn.Name) {
	s.Init(worker, name)
}

func (s *BestRoute) AfterContentStoreHit(pitEntry *table.PitEntry, inFace uint64, data *ndn.Data) {
	core.LogTrace(s, "content store hit for "+data.Name().String()+" - sending to FaceID="+strconv.FormatUint(inFace, 10))
	s.SendData(data, pitEntry, inFace, inFace)
}

func (s *BestRoute) AfterReceiveInterest(pitEntry *table.PitEntry, inFace uint64, interest *ndn.Interest, nexthops []*table.FibNextHopEntry) {
	if len(nexthops) == 0 {
		core.LogDebug(s, "no nexthop for "+interest.Name().String()+" - DROP")
		return
	}

	lowestCost := nexthops[0]
	for _, nexthop := range nexthops {
		if nexthop.Cost < lowestCost.Cost {
			lowestCost = nexthop
		}
	}

	core.LogTrace(s, "forwarding "+interest.Name().String()+" to FaceID="+strconv.FormatUint(lowestCost.Nexthop, 10))
	s.SendInterest(interest, pitEntry, lowestCost.Nexthop, inFace)
}

func (s *BestRoute) BeforeSatisfyInterest(pitEntry *table.PitEntry, inFace uint64, data *ndn.Data) {}

func (s *BestRoute) AfterReceiveData(pitEntry *table.PitEntry, inFace uint64, data *ndn.Data) {
	s.SendDataToAll(data, pitEntry, inFace, false)
}

func (s *BestRoute) AfterReceiveNack(pitEntry *table.PitEntry, inFace uint64, nack *ndn.Nack) {
	core.LogTrace(s, "received Nack for "+pitEntry.Name.String()+" from FaceID="+strconv.FormatUint(inFace, 10))
}

func (s *BestRoute) AfterNewNextHop(nexthop *table.FibNextHopEntry, pitEntry *table.PitEntry) {}

func (s *BestRoute) OnDroppedInterest(nexthop uint64, interest *ndn.Interest) {
	core.LogDebug(s, "dropped "+interest.Name().String()+" destined for FaceID="+strconv.FormatUint(nexthop, 10))
}
