/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package strategy_test

import (
	"testing"
	"time"

	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/strategy"
	"github.com/ndnx/corefwd/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorker struct{}

func (fakeWorker) String() string { return "fakeWorker" }
func (fakeWorker) SendInterest(*ndn.Interest, *table.PitEntry, uint64, uint64) {}
func (fakeWorker) SendData(*ndn.Data, *table.PitEntry, uint64, uint64)         {}
func (fakeWorker) SendNack(*ndn.Nack, *table.PitEntry, uint64, uint64)         {}
func (fakeWorker) RejectPendingInterest(*table.PitEntry)                      {}
func (fakeWorker) SetExpiryTimer(*table.PitEntry, time.Duration)              {}
func (fakeWorker) GetMeasurements() strategy.MeasurementsAccessor             { return nil }

func TestFindBestRoute(t *testing.T) {
	name, err := ndn.NameFromString(strategy.Prefix + "/best-route")
	require.NoError(t, err)

	factory, resolved := strategy.Find(name)
	require.NotNil(t, factory)
	assert.Equal(t, strategy.Prefix+"/best-route/v=1", resolved.String())

	instance := factory()
	instance.Instantiate(fakeWorker{}, resolved)
	assert.Equal(t, resolved.String(), instance.InstanceName().String())
}

func TestFindUnknownStrategy(t *testing.T) {
	name, err := ndn.NameFromString("/localhost/nfd/strategy/does-not-exist")
	require.NoError(t, err)

	factory, resolved := strategy.Find(name)
	assert.Nil(t, factory)
	assert.Nil(t, resolved)
}

func TestParseInstanceNameWithVersion(t *testing.T) {
	name, err := ndn.NameFromString(strategy.Prefix + "/multicast/v=1")
	require.NoError(t, err)

	base, version, hasVersion := strategy.ParseInstanceName(name)
	assert.True(t, hasVersion)
	assert.Equal(t, uint64(1), version)
	assert.Equal(t, strategy.Prefix+"/multicast", base.String())
}

func TestInstantiateAllIncludesBuiltins(t *testing.T) {
	instances := strategy.InstantiateAll(fakeWorker{})
	assert.Contains(t, instances, strategy.Prefix+"/best-route/v=1")
	assert.Contains(t, instances, strategy.Prefix+"/multicast/v=1")
}
