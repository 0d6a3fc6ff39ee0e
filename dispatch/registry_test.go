/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package dispatch_test

import (
	"testing"

	"github.com/ndnx/corefwd/dispatch"
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/ndn/lpv2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorker struct {
	name     string
	received []*ndn.PendingPacket
}

func (f *fakeWorker) String() string { return f.name }

func (f *fakeWorker) QueuePacket(packet *ndn.PendingPacket) bool {
	f.received = append(f.received, packet)
	return true
}

func encodeInterest(t *testing.T, name string) *ndn.PendingPacket {
	t.Helper()
	n, err := ndn.NameFromString(name)
	require.NoError(t, err)
	wire, err := ndn.NewInterest(n).Encode()
	require.NoError(t, err)
	return &ndn.PendingPacket{Wire: wire}
}

// TestDispatchPacketByPitToken is spec.md §8 concrete scenario 5: a packet
// carrying a PitToken (an encoded Interest here; dispatch does not look at
// the packet type once a token is present) routes to the workerId embedded
// in that token, regardless of what the name would otherwise hash to.
func TestDispatchPacketByPitToken(t *testing.T) {
	w0 := &fakeWorker{name: "Worker-0"}
	w1 := &fakeWorker{name: "Worker-1"}
	dispatch.InitializeWorkers([]dispatch.FWThread{w0, w1})

	packet := encodeInterest(t, "/foo/bar")
	packet.PitToken = lpv2.MakePitToken(1, 0, 42)

	assert.True(t, dispatch.DispatchPacket(packet))
	assert.Empty(t, w0.received)
	require.Len(t, w1.received, 1)
	assert.Same(t, packet, w1.received[0])
}

// TestDispatchPacketFallsBackToNameHash covers an Interest, which never
// carries an inbound PitToken, and confirms it's routed by hashing its name.
func TestDispatchPacketFallsBackToNameHash(t *testing.T) {
	numWorkers := 4
	workers := make([]dispatch.FWThread, numWorkers)
	fakes := make([]*fakeWorker, numWorkers)
	for i := range workers {
		fakes[i] = &fakeWorker{name: "Worker"}
		workers[i] = fakes[i]
	}
	dispatch.InitializeWorkers(workers)

	packet := encodeInterest(t, "/foo/bar")
	assert.True(t, dispatch.DispatchPacket(packet))

	n, _ := ndn.NameFromString("/foo/bar")
	expected := dispatch.HashNameToWorker(n, numWorkers)
	require.Len(t, fakes[expected].received, 1)
	assert.Same(t, packet, fakes[expected].received[0])
}

func TestDispatchPacketNoWorkers(t *testing.T) {
	dispatch.InitializeWorkers(nil)
	packet := encodeInterest(t, "/foo")
	assert.False(t, dispatch.DispatchPacket(packet))
}
