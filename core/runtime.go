/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import (
	"runtime"
	"time"

	"golang.org/x/sys/unix"
)

// Version of YaNFD.
var Version string

// BuildTime contains the timestamp of when the version of YaNFD was built.
var BuildTime string

// StartTimestamp is the time the forwarder was started.
var StartTimestamp time.Time

// NumForwardingThreads is the number of forwarding threads.
var NumForwardingThreads int

// ShouldQuit signals every worker and face run loop to exit. Set once by
// the process entry point after receiving a termination signal.
var ShouldQuit bool

// LockThreadToCore locks the calling goroutine to its current OS thread and
// pins that thread to the given CPU core. Called once from the top of a
// worker's run loop so its PIT/CS cache lines stay resident on one core
// instead of migrating under the scheduler.
func LockThreadToCore(core int) error {
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	return unix.SchedSetaffinity(0, &set)
}
