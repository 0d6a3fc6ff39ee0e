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
	Register(Prefix+"/multicast", 1, func() Strategy { return new(Multicast) })
}

// Multicast forwards every Interest to all of its FIB nexthops, trading
// bandwidth for lower latency to whichever producer answers first.
type Multicast struct {
	Base
}

func (s *Multicast) Instantiate(worker Worker, name *ndn.Name) {
	s.Init(worker, name)
}

func (s *Multicast) AfterContentStoreHit(pitEntry *table.PitEntry, inFace uint64, data *ndn.Data) {
	core.LogTrace(s, "content store hit for "+data.Name().String()+" - sending to FaceID="+strconv.FormatUint(inFace, 10))
	s.SendData(data, pitEntry, inFace, inFace)
}

func (s *Multicast) AfterReceiveInterest(pitEntry *table.PitEntry, inFace uint64, interest *ndn.Interest, nexthops []*table.FibNextHopEntry) {
	if len(nexthops) == 0 {
		core.LogDebug(s, "no nexthop for "+interest.Name().String()+" - DROP")
		return
	}

	for _, nexthop := range nexthops {
		core.LogTrace(s, "forwarding "+interest.Name().String()+" to FaceID="+strconv.FormatUint(nexthop.Nexthop, 10))
		s.SendInterest(interest, pitEntry, nexthop.Nexthop, inFace)
	}
}

func (s *Multicast) BeforeSatisfyInterest(pitEntry *table.PitEntry, inFace uint64, data *ndn.Data) {}

func (s *Multicast) AfterReceiveData(pitEntry *table.PitEntry, inFace uint64, data *ndn.Data) {
	s.SendDataToAll(data, pitEntry, inFace, false)
}

func (s *Multicast) AfterReceiveNack(pitEntry *table.PitEntry, inFace uint64, nack *ndn.Nack) {}

func (s *Multicast) AfterNewNextHop(nexthop *table.FibNextHopEntry, pitEntry *table.PitEntry) {
	if pitEntry.Satisfied {
		return
	}
	core.LogTrace(s, "forwarding "+pitEntry.Name.String()+" to new nexthop FaceID="+strconv.FormatUint(nexthop.Nexthop, 10))
}

func (s *Multicast) OnDroppedInterest(nexthop uint64, interest *ndn.Interest) {
	core.LogDebug(s, "dropped "+interest.Name().String()+" destined for FaceID="+strconv.FormatUint(nexthop, 10))
}
