/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package worker_test

import (
	"os"
	"testing"
	"time"

	"github.com/ndnx/corefwd/core"
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/table"
	"github.com/ndnx/corefwd/worker"

	"github.com/stretchr/testify/assert"
)

// TestMain mirrors the real startup order (load config, then Configure the
// tables and worker pool) since table.NewPitCS picks its CS replacement
// policy from configuration and fatally exits if Configure was never called.
func TestMain(m *testing.M) {
	tmp, err := os.CreateTemp("", "corefwd-worker-test-*.toml")
	if err != nil {
		panic(err)
	}
	defer os.Remove(tmp.Name())
	tmp.Close()

	core.LoadConfig(tmp.Name())
	table.Configure()
	worker.Configure()

	os.Exit(m.Run())
}

func TestNewWorker(t *testing.T) {
	w := worker.NewWorker(3)
	assert.Equal(t, 3, w.ID())
	assert.Equal(t, "Worker-3", w.String())
	assert.Equal(t, 0, w.GetNumPitEntries())
	assert.Equal(t, 0, w.GetNumCsEntries())
}

func TestQueuePacket(t *testing.T) {
	w := worker.NewWorker(0)

	name, _ := ndn.NameFromString("/queue/test")
	interest := ndn.NewInterest(name)
	wire, err := interest.Encode()
	assert.NoError(t, err)

	packet := new(ndn.PendingPacket)
	packet.Wire = wire

	assert.True(t, w.QueuePacket(packet))

	// A ring at capacity reports the drop instead of overwriting.
	overflowed := false
	for i := 0; i < 100000; i++ {
		if !w.QueuePacket(packet) {
			overflowed = true
			break
		}
	}
	assert.True(t, overflowed)
}

func TestRejectPendingInterest(t *testing.T) {
	w := worker.NewWorker(0)

	pitCs := table.NewPitCS()
	name, _ := ndn.NameFromString("/reject/test")
	interest := ndn.NewInterest(name)
	pitEntry, isDuplicate := pitCs.FindOrInsertPIT(interest, nil, 1)
	assert.False(t, isDuplicate)

	w.RejectPendingInterest(pitEntry)
	assert.WithinDuration(t, time.Now(), pitEntry.ExpirationTime, time.Second)
}

func TestSetExpiryTimer(t *testing.T) {
	w := worker.NewWorker(0)

	pitCs := table.NewPitCS()
	name, _ := ndn.NameFromString("/expiry/test")
	interest := ndn.NewInterest(name)
	pitEntry, _ := pitCs.FindOrInsertPIT(interest, nil, 1)

	w.SetExpiryTimer(pitEntry, 4*time.Second)
	assert.WithinDuration(t, time.Now().Add(4*time.Second), pitEntry.ExpirationTime, time.Second)
}

func TestGetMeasurements(t *testing.T) {
	w := worker.NewWorker(0)
	assert.NotNil(t, w.GetMeasurements())
}
