/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package strategy implements the per-namespace forwarding policy layer
// (spec.md §4.8): a registry of named, versioned strategy classes, and the
// triggers a worker's pipelines call into while processing a PIT entry.
package strategy

import (
	"time"

	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/table"
)

// Worker is the subset of a worker's capabilities a strategy needs to act
// on a PIT entry, satisfied by worker.Worker. Kept separate from the
// concrete worker type to avoid a strategy<->worker import cycle.
type Worker interface {
	String() string
	SendInterest(interest *ndn.Interest, pitEntry *table.PitEntry, nexthop uint64, inFace uint64)
	SendData(data *ndn.Data, pitEntry *table.PitEntry, nexthop uint64, inFace uint64)
	SendNack(nack *ndn.Nack, pitEntry *table.PitEntry, nexthop uint64, inFace uint64)
	RejectPendingInterest(pitEntry *table.PitEntry)
	SetExpiryTimer(pitEntry *table.PitEntry, delay time.Duration)
	GetMeasurements() MeasurementsAccessor
}

// MeasurementsAccessor is the strategy-facing view of the measurements
// table exposed via getMeasurements (§4.8).
type MeasurementsAccessor interface {
	Get(key string) interface{}
	Set(key string, expected interface{}, value interface{}) bool
	AddInt(key string, value int)
	AddEWMASample(key string, measurement float64, alpha float64)
}

// Strategy represents a forwarding strategy: a namespace-scoped policy for
// where and whether to forward Interests and how to react to Data, Nacks,
// and content-store hits.
type Strategy interface {
	Instantiate(worker Worker, name *ndn.Name)
	InstanceName() *ndn.Name

	// AfterReceiveInterest is the only mandatory trigger: it decides where
	// (if anywhere) to forward a newly-admitted Interest.
	AfterReceiveInterest(pitEntry *table.PitEntry, inFace uint64, interest *ndn.Interest, nexthops []*table.FibNextHopEntry)
	AfterContentStoreHit(pitEntry *table.PitEntry, inFace uint64, data *ndn.Data)
	BeforeSatisfyInterest(pitEntry *table.PitEntry, inFace uint64, data *ndn.Data)
	AfterReceiveData(pitEntry *table.PitEntry, inFace uint64, data *ndn.Data)
	AfterReceiveNack(pitEntry *table.PitEntry, inFace uint64, nack *ndn.Nack)
	AfterNewNextHop(nexthop *table.FibNextHopEntry, pitEntry *table.PitEntry)
	OnDroppedInterest(nexthop uint64, interest *ndn.Interest)
}

// Base provides the action helpers (§4.8: sendInterest, sendData,
// sendDataToAll, sendNack, sendNacks, rejectPendingInterest,
// setExpiryTimer, lookupFib, getMeasurements) common to every strategy, so
// concrete strategies only need to implement the triggers they care about.
type Base struct {
	worker Worker
	name   *ndn.Name
}

// Init wires the base's worker handle and instance name. Concrete
// strategies call this from their own Instantiate.
func (s *Base) Init(worker Worker, name *ndn.Name) {
	s.worker = worker
	s.name = name
}

func (s *Base) String() string {
	if s.worker == nil {
		return "Strategy"
	}
	return s.worker.String() + "-" + s.name.String()
}

// InstanceName returns the strategy's registered instance name.
func (s *Base) InstanceName() *ndn.Name {
	return s.name
}

// SendInterest hands an Interest to the outgoing Interest pipeline (§4.2).
func (s *Base) SendInterest(interest *ndn.Interest, pitEntry *table.PitEntry, nexthop uint64, inFace uint64) {
	s.worker.SendInterest(interest, pitEntry, nexthop, inFace)
}

// SendData hands a Data packet to the outgoing Data pipeline (§4.4) for the
// in-record on the given nexthop face.
func (s *Base) SendData(data *ndn.Data, pitEntry *table.PitEntry, nexthop uint64, inFace uint64) {
	s.worker.SendData(data, pitEntry, nexthop, inFace)
}

// SendDataToAll sends Data to every in-record face of the PIT entry except
// ingress, unless that face is ad-hoc (§4.3 default AfterReceiveData).
func (s *Base) SendDataToAll(data *ndn.Data, pitEntry *table.PitEntry, ingress uint64, isIngressAdHoc bool) {
	for face := range pitEntry.InRecords {
		if face == ingress && !isIngressAdHoc {
			continue
		}
		s.worker.SendData(data, pitEntry, face, ingress)
	}
}

// SendNack hands a Nack to the outgoing Nack pipeline (§4.5).
func (s *Base) SendNack(nack *ndn.Nack, pitEntry *table.PitEntry, nexthop uint64, inFace uint64) {
	s.worker.SendNack(nack, pitEntry, nexthop, inFace)
}

// SendNacks sends the same Nack reason to every remaining in-record face.
func (s *Base) SendNacks(reason uint64, pitEntry *table.PitEntry, inFace uint64) {
	for face := range pitEntry.InRecords {
		nack := ndn.NewNack(pitEntry.InRecords[face].LatestInterest, reason)
		s.worker.SendNack(nack, pitEntry, face, inFace)
	}
}

// RejectPendingInterest erases the PIT entry without satisfying it,
// releasing any faces still waiting on it.
func (s *Base) RejectPendingInterest(pitEntry *table.PitEntry) {
	s.worker.RejectPendingInterest(pitEntry)
}

// SetExpiryTimer overrides the PIT entry's expiry delay from the default
// derived from InterestLifetime, letting a strategy extend or shorten how
// long it waits before considering the Interest unsatisfiable.
func (s *Base) SetExpiryTimer(pitEntry *table.PitEntry, delay time.Duration) {
	s.worker.SetExpiryTimer(pitEntry, delay)
}

// LookupFib performs a longest-prefix-match FIB lookup on name. It does not
// consult forwarding hints; the incoming Interest pipeline resolves those
// before it hands nexthops to the strategy.
func (s *Base) LookupFib(name *ndn.Name) []*table.FibNextHopEntry {
	return table.FibStrategyTable.LongestPrefixNexthops(name)
}

// GetMeasurements returns the measurements table accessor.
func (s *Base) GetMeasurements() MeasurementsAccessor {
	return s.worker.GetMeasurements()
}
