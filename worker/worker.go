/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package worker implements the forwarding pipelines (spec.md §4): one
// Worker per CPU core, each owning a private PIT/CS and Dead Nonce List,
// pulling packets off a lock-free ring fed by face I/O and running them
// through the Interest, Data, and Nack pipelines against the shared
// FIB/strategy-choice and Measurements tables.
package worker

import (
	"encoding/binary"
	"runtime"
	"strconv"
	"time"

	"github.com/ndnx/corefwd/core"
	"github.com/ndnx/corefwd/dispatch"
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/ndn/tlv"
	"github.com/ndnx/corefwd/strategy"
	"github.com/ndnx/corefwd/table"
)

// MaxWorkers is the upper bound on the number of forwarding workers.
const MaxWorkers = 32

// queueSize is the capacity of each worker's inbound ring.
var queueSize int

// numWorkers is the configured number of forwarding workers.
var numWorkers int

// lockThreadsToCores indicates whether workers pin their run loop's OS
// thread to a dedicated CPU core.
var lockThreadsToCores bool

// Workers holds every running worker, indexed by worker ID.
var Workers map[int]*Worker

// Configure reads the worker pool's configuration.
func Configure() {
	queueSize = core.GetConfigIntDefault("fw.queue_size", 1024)
	numWorkers = core.GetConfigIntDefault("fw.threads", 1)
	lockThreadsToCores = core.GetConfigBoolDefault("fw.lock_threads_to_cores", false)
}

// NumWorkers returns the configured number of forwarding workers.
func NumWorkers() int {
	return numWorkers
}

// Worker is a single forwarding pipeline instance. Each worker owns a
// private PIT/CS and Dead Nonce List, and shares the FIB/strategy-choice
// table and Measurements table with every other worker (see DESIGN.md's
// Open Question decisions).
type Worker struct {
	id int

	inbound *dispatch.Ring

	pitCs         *table.PitCs
	deadNonceList *table.DeadNonceList
	strategies    map[string]strategy.Strategy

	shouldQuit chan interface{}
	HasQuit    chan interface{}

	NInInterests          uint64
	NInData               uint64
	NInNacks              uint64
	NOutInterests         uint64
	NOutData              uint64
	NOutNacks             uint64
	NSatisfiedInterests   uint64
	NUnsatisfiedInterests uint64
}

// NewWorker creates a new forwarding worker with the given ID.
func NewWorker(id int) *Worker {
	w := new(Worker)
	w.id = id
	w.inbound = dispatch.NewRing(queueSize)
	w.pitCs = table.NewPitCS()
	w.deadNonceList = table.NewDeadNonceList()
	w.strategies = strategy.InstantiateAll(w)
	w.shouldQuit = make(chan interface{}, 1)
	w.HasQuit = make(chan interface{})
	return w
}

func (w *Worker) String() string {
	return "Worker-" + strconv.Itoa(w.id)
}

// ID returns the worker's ID.
func (w *Worker) ID() int {
	return w.id
}

// GetNumPitEntries returns the number of entries in this worker's PIT.
func (w *Worker) GetNumPitEntries() int {
	return w.pitCs.PitSize()
}

// GetNumCsEntries returns the number of entries in this worker's Content Store.
func (w *Worker) GetNumCsEntries() int {
	return w.pitCs.CsSize()
}

// TellToQuit tells the worker to quit at the next opportunity.
func (w *Worker) TellToQuit() {
	core.LogInfo(w, "Told to quit")
	w.shouldQuit <- true
}

// QueuePacket enqueues a packet arriving from a face for this worker to
// process. Used by dispatch to hand off across the face/worker boundary
// without a face package import cycle.
func (w *Worker) QueuePacket(packet *ndn.PendingPacket) bool {
	return w.inbound.Push(packet)
}

// Run is the worker's main loop. It pins itself to a CPU core (if
// configured) and then alternates between draining its lock-free inbound
// ring and servicing PIT expiry / Dead Nonce List timers, matching the
// poll-mode pattern a pinned core is expected to run (see
// usnistgov-ndn-dpdk's SPDK poller threads for the same shape).
func (w *Worker) Run() {
	if lockThreadsToCores {
		if err := core.LockThreadToCore(w.id); err != nil {
			core.LogWarn(w, "Unable to pin worker to core "+strconv.Itoa(w.id)+": "+err.Error())
		}
	}

	for !core.ShouldQuit {
		select {
		case <-w.shouldQuit:
			core.LogInfo(w, "Stopping worker")
			w.HasQuit <- true
			return
		case pitEntry := <-w.pitCs.ExpiringPitEntries:
			w.finalizeInterest(pitEntry)
			continue
		case <-w.deadNonceList.Ticker.C:
			w.deadNonceList.RemoveExpiredEntries()
			continue
		default:
		}

		packet := w.inbound.Pop()
		if packet == nil {
			runtime.Gosched()
			continue
		}
		w.dispatchPacket(packet)
	}
	w.HasQuit <- true
}

// dispatchPacket routes a packet off the inbound ring to the incoming Data
// or incoming Interest/Nack pipeline. A Nack is an LP packet with a
// NetworkNack field wrapping a rejected Interest's wire (§4.5/§6), so it
// travels the same ring as Interests and is distinguished by NackReason.
func (w *Worker) dispatchPacket(packet *ndn.PendingPacket) {
	if packet.NackReason != nil {
		w.processIncomingNack(packet)
		return
	}
	switch packet.Wire.Type() {
	case tlv.Interest:
		w.processIncomingInterest(packet)
	case tlv.Data:
		w.processIncomingData(packet)
	default:
		core.LogWarn(w, "Received packet with unknown TLV type "+strconv.Itoa(int(packet.Wire.Type()))+" - DROP")
	}
}

// strategyFor resolves the registered strategy instance for a name's
// longest-prefix strategy choice.
func (w *Worker) strategyFor(name *ndn.Name) strategy.Strategy {
	strategyName := table.FibStrategyTable.LongestPrefixStrategy(name)
	return w.strategies[strategyName.String()]
}

func (w *Worker) finalizeInterest(pitEntry *table.PitEntry) {
	core.LogTrace(w, "Finalizing Interest "+pitEntry.Name.String())

	for _, outRecord := range pitEntry.OutRecords {
		nonce := binary.BigEndian.Uint32(outRecord.LatestNonce)
		w.deadNonceList.Insert(outRecord.LatestInterest.Name(), nonce)
	}

	if !pitEntry.Satisfied {
		w.NUnsatisfiedInterests += uint64(len(pitEntry.InRecords))
		for face, inRecord := range pitEntry.InRecords {
			w.strategyFor(pitEntry.Name).OnDroppedInterest(face, inRecord.LatestInterest)
		}
	}

	w.pitCs.RemovePITEntry(pitEntry)
}

// SendInterest satisfies strategy.Worker: forwards interest.Worker is the
// collaborator interface; this method is the seam a strategy action calls
// through.
func (w *Worker) SendInterest(interest *ndn.Interest, pitEntry *table.PitEntry, nexthop uint64, inFace uint64) {
	w.processOutgoingInterest(interest, pitEntry, nexthop, inFace)
}

// SendData satisfies strategy.Worker.
func (w *Worker) SendData(data *ndn.Data, pitEntry *table.PitEntry, nexthop uint64, inFace uint64) {
	var pitToken []byte
	if record, ok := pitEntry.InRecords[nexthop]; ok {
		pitToken = record.PitToken
	}
	w.processOutgoingData(data, pitEntry, nexthop, pitToken, inFace)
}

// SendNack satisfies strategy.Worker.
func (w *Worker) SendNack(nack *ndn.Nack, pitEntry *table.PitEntry, nexthop uint64, inFace uint64) {
	w.processOutgoingNack(nack, pitEntry, nexthop, inFace)
}

// RejectPendingInterest satisfies strategy.Worker.
func (w *Worker) RejectPendingInterest(pitEntry *table.PitEntry) {
	pitEntry.SetExpirationTimerToNow()
}

// SetExpiryTimer satisfies strategy.Worker.
func (w *Worker) SetExpiryTimer(pitEntry *table.PitEntry, delay time.Duration) {
	pitEntry.SetExpirationTimer(delay)
}

// measurementsAccessor adapts the package-level Measurements table
// functions in table/measurements.go to strategy.MeasurementsAccessor.
type measurementsAccessor struct{}

func (measurementsAccessor) Get(key string) interface{} { return table.GetMeasurement(key) }
func (measurementsAccessor) Set(key string, expected interface{}, value interface{}) bool {
	return table.SetMeasurement(key, expected, value)
}
func (measurementsAccessor) AddInt(key string, value int) { table.AddToMeasurementInt(key, value) }
func (measurementsAccessor) AddEWMASample(key string, measurement float64, alpha float64) {
	table.AddSampleToEWMA(key, measurement, alpha)
}

// GetMeasurements satisfies strategy.Worker.
func (w *Worker) GetMeasurements() strategy.MeasurementsAccessor {
	return measurementsAccessor{}
}

var _ dispatch.FWThread = (*Worker)(nil)
