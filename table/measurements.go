/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/cornelk/hashmap"
)

// measurementsEntryLifetime bounds how long a Measurements entry survives
// without being touched, per the glossary's "per-prefix opaque
// strategy-owned counters, with last-access timestamp and a sliding
// lifetime" (§4.7): a read or write past this age treats the prefix as if
// nothing had ever been recorded, rather than retaining stale counters
// forever the way the teacher's flat table does.
const measurementsEntryLifetime = 5 * time.Minute

// measurementsEntry pairs a strategy's opaque counter with the time it was
// last touched, so the sliding lifetime can be checked on every access
// instead of needing a separate sweep pass.
type measurementsEntry struct {
	value      interface{}
	lastAccess time.Time
}

// measurements contains the global measurements table, shared read-mostly
// across workers per the FIB/strategy-choice/Measurements Open Question
// decision (see DESIGN.md): routes and strategy counters change far less
// often than PIT/CS state, so there's no per-worker copy to keep coherent.
var measurements *hashmap.HashMap

func init() {
	measurements = &hashmap.HashMap{}
}

func (e *measurementsEntry) live() interface{} {
	if time.Since(e.lastAccess) > measurementsEntryLifetime {
		return nil
	}
	return e.value
}

// GetMeasurement returns the measurement table value at the specified key,
// or nil if it does not exist or has aged past its sliding lifetime.
func GetMeasurement(key string) interface{} {
	raw, isOk := measurements.GetStringKey(key)
	if !isOk {
		return nil
	}
	return raw.(*measurementsEntry).live()
}

// SetMeasurement atomically sets the value of the specified measurement
// table key and refreshes its last-access time, only if the key's live
// value (nil if absent or expired) is equal to the expected value,
// returning whether the operation was successful.
func SetMeasurement(key string, expected interface{}, value interface{}) bool {
	next := &measurementsEntry{value: value, lastAccess: time.Now()}

	raw, isOk := measurements.GetStringKey(key)
	if !isOk {
		if expected != nil {
			return false
		}
		_, existed := measurements.GetOrInsert(key, next)
		return !existed
	}

	current := raw.(*measurementsEntry)
	if current.live() != expected {
		return false
	}
	return measurements.Cas(key, raw, next)
}

// AddToMeasurementInt adds the specified value to the given measurement key, setting as value if unitialized.
func AddToMeasurementInt(key string, value int) {
	wasSet := false
	for !wasSet {
		expected := GetMeasurement(key)
		if expected != nil {
			wasSet = SetMeasurement(key, expected, expected.(int)+value)
		} else {
			wasSet = SetMeasurement(key, nil, value)
		}
	}
}

// AddSampleToEWMA adds a sample to an exponentially weighted moving average
func AddSampleToEWMA(key string, measurement float64, alpha float64) {
	wasSet := false
	for !wasSet {
		expected := GetMeasurement(key)
		if expected != nil {
			newValue := expected.(float64) + alpha*(measurement-expected.(float64))
			wasSet = SetMeasurement(key, expected, newValue)
		} else {
			wasSet = SetMeasurement(key, nil, measurement)
		}
	}
}
