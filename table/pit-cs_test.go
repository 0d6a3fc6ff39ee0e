/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table_test

import (
	"testing"
	"time"

	"github.com/ndnx/corefwd/ndn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFindOrInsertPITHintMixDoesNotPanic covers a plain Interest and a
// hinted Interest for the same name/CanBePrefix/MustBeFresh reaching the
// same PIT-CS node: exactly one of the two entries being compared carries a
// nil ForwardingHint, which must not panic when tested for aggregation.
func TestFindOrInsertPITHintMixDoesNotPanic(t *testing.T) {
	cs := newPitCsWithPolicy(t, "lru", 8)

	name, err := ndn.NameFromString("/x")
	require.NoError(t, err)

	hintName, err := ndn.NameFromString("/hint")
	require.NoError(t, err)
	hint, err := ndn.NewDelegation(0, hintName)
	require.NoError(t, err)

	unhinted := ndn.NewInterest(name)
	unhinted.SetNonce([]byte{1, 2, 3, 4})

	hinted := ndn.NewInterest(name)
	hinted.SetNonce([]byte{5, 6, 7, 8})

	assert.NotPanics(t, func() {
		entryA, _ := cs.FindOrInsertPIT(unhinted, nil, 1)
		entryB, _ := cs.FindOrInsertPIT(hinted, hint, 2)
		assert.NotSame(t, entryA, entryB)
	})

	// Reverse order: hinted first, then unhinted, hits the symmetric nil.
	cs2 := newPitCsWithPolicy(t, "lru", 8)
	assert.NotPanics(t, func() {
		entryA, _ := cs2.FindOrInsertPIT(hinted, hint, 2)
		entryB, _ := cs2.FindOrInsertPIT(unhinted, nil, 1)
		assert.NotSame(t, entryA, entryB)
	})
}

// TestFindOrInsertPITAggregatesMatchingHints checks that two Interests with
// equal (nil or matching) forwarding hints are aggregated into one entry.
func TestFindOrInsertPITAggregatesMatchingHints(t *testing.T) {
	cs := newPitCsWithPolicy(t, "lru", 8)

	name, err := ndn.NameFromString("/x")
	require.NoError(t, err)

	first := ndn.NewInterest(name)
	first.SetNonce([]byte{1, 2, 3, 4})
	second := ndn.NewInterest(name)
	second.SetNonce([]byte{5, 6, 7, 8})

	entryA, _ := cs.FindOrInsertPIT(first, nil, 1)
	entryB, _ := cs.FindOrInsertPIT(second, nil, 2)
	assert.Same(t, entryA, entryB)
}

// TestInsertDataCSFreshOnFirstInsert is a regression test: a freshly
// inserted Data packet with a FreshnessPeriod must satisfy a MustBeFresh
// Interest immediately, not only after being refreshed once.
func TestInsertDataCSFreshOnFirstInsert(t *testing.T) {
	cs := newPitCsWithPolicy(t, "lru", 8)

	n, err := ndn.NameFromString("/fresh")
	require.NoError(t, err)
	data := ndn.NewData(n, []byte("payload"))
	data.MetaInfo().SetFreshnessPeriod(time.Minute)
	cs.InsertDataCS(data)

	interest := ndn.NewInterest(n)
	interest.SetMustBeFresh(true)
	assert.NotNil(t, cs.FindMatchingDataCS(interest))
}
