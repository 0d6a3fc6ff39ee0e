/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package strategy

import (
	"sort"

	"github.com/ndnx/corefwd/core"
	"github.com/ndnx/corefwd/ndn"
	"github.com/ndnx/corefwd/ndn/tlv"
)

// Prefix is the namespace every built-in strategy name lives under.
const Prefix = "/localhost/nfd/strategy"

// Factory constructs a fresh, not-yet-instantiated Strategy instance.
type Factory func() Strategy

type registration struct {
	baseName string
	versions map[uint64]Factory
}

var registry = make(map[string]*registration)

// Register adds a strategy class under the given base name (without a
// trailing version component) and version to the registry. Out-of-process
// plugin loading (the teacher's `.so`-based LoadStrategies) is dropped: the
// registry is static and populated by each strategy's own init().
func Register(baseName string, version uint64, factory Factory) {
	reg, ok := registry[baseName]
	if !ok {
		reg = &registration{baseName: baseName, versions: make(map[uint64]Factory)}
		registry[baseName] = reg
	}
	reg.versions[version] = factory
}

// ParseInstanceName splits an instance name at its last version component
// (§4.8), returning the base name and the requested version if present.
func ParseInstanceName(name *ndn.Name) (base *ndn.Name, version uint64, hasVersion bool) {
	for i := name.Size() - 1; i >= 0; i-- {
		if name.At(i).Type() == tlv.VersionNameComponent {
			if v, ok := name.At(i).(*ndn.VersionNameComponent); ok {
				return name.Prefix(i), v.Version(), true
			}
		}
	}
	return name.DeepCopy(), 0, false
}

// Find resolves a strategy instance name to a factory and the concrete
// instance name that was actually selected: the highest registered version
// not exceeding the requested one, or the highest registered version if no
// version was requested. Returns nil, nil if the base name is unregistered
// or every registered version exceeds the request.
func Find(name *ndn.Name) (Factory, *ndn.Name) {
	base, version, hasVersion := ParseInstanceName(name)
	reg, ok := registry[base.String()]
	if !ok {
		return nil, nil
	}

	versions := make([]uint64, 0, len(reg.versions))
	for v := range reg.versions {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] > versions[j] })

	for _, v := range versions {
		if !hasVersion || v <= version {
			resolved := base.DeepCopy()
			resolved.Append(ndn.NewVersionNameComponent(v))
			return reg.versions[v], resolved
		}
	}
	return nil, nil
}

// InstantiateAll creates one instance, at its highest registered version,
// of every strategy class in the registry, for a single worker. Keyed by
// the instance's full name string, matching how a worker looks strategies
// up after a strategy-choice longest-prefix-match.
func InstantiateAll(worker Worker) map[string]Strategy {
	instances := make(map[string]Strategy, len(registry))
	for baseName := range registry {
		base, err := ndn.NameFromString(baseName)
		if err != nil {
			core.LogError("StrategyRegistry", "Invalid registered strategy name "+baseName+": "+err.Error())
			continue
		}
		factory, instanceName := Find(base)
		if factory == nil {
			continue
		}
		instance := factory()
		instance.Instantiate(worker, instanceName)
		instances[instanceName.String()] = instance
	}
	return instances
}
