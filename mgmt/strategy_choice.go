/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"errors"

	"github.com/ndnx/corefwd/core"
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/strategy"
	"github.com/ndnx/corefwd/table"
)

// ErrUnknownStrategy is returned when Set names a strategy base name (or
// base+version) that is not present in the strategy registry.
var ErrUnknownStrategy = errors.New("unknown strategy")

// StrategyChoiceModule is the in-process collaborator surface for
// strategy-choice management (§6): set/unset/list, trimmed from the
// teacher's NFD management-protocol verbs down to their in-memory CRUD
// semantics.
type StrategyChoiceModule struct{}

func (StrategyChoiceModule) String() string {
	return "StrategyChoiceMgmt"
}

// Set assigns the strategy named by strategyName to govern prefix,
// resolving a base name with no version component to the registry's
// highest registered version, exactly as the strategy-choice table's
// own longest-prefix lookup later resolves it for a worker.
func (s StrategyChoiceModule) Set(prefix *ndn.Name, strategyName *ndn.Name) error {
	_, resolved := strategy.Find(strategyName)
	if resolved == nil {
		return ErrUnknownStrategy
	}
	table.FibStrategyTable.SetStrategy(prefix, resolved)
	core.LogInfo(s, "Set strategy for "+prefix.String()+" to "+resolved.String())
	return nil
}

// Unset removes the strategy choice for prefix, letting the longest
// matching ancestor's strategy (or the root's) take over again.
func (s StrategyChoiceModule) Unset(prefix *ndn.Name) {
	table.FibStrategyTable.UnsetStrategy(prefix)
	core.LogInfo(s, "Unset strategy for "+prefix.String())
}

// StrategyChoiceEntry is a snapshot of one prefix's strategy assignment.
type StrategyChoiceEntry struct {
	Name     *ndn.Name
	Strategy *ndn.Name
}

// List returns a snapshot of every strategy-choice entry.
func (StrategyChoiceModule) List() []StrategyChoiceEntry {
	fsEntries := table.FibStrategyTable.GetAllStrategyChoices()
	entries := make([]StrategyChoiceEntry, len(fsEntries))
	for i, fsEntry := range fsEntries {
		entries[i] = StrategyChoiceEntry{Name: fsEntry.Name, Strategy: fsEntry.GetStrategy()}
	}
	return entries
}
