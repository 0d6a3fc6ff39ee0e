/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ndnx/corefwd/core"
	"github.com/ndnx/corefwd/dispatch"
	"github.com/ndnx/corefwd/face"
	"github.com/ndnx/corefwd/table"
	"github.com/ndnx/corefwd/worker"
)

// Version of corefwd.
var Version string

func main() {
	core.Version = Version
	core.StartTimestamp = time.Now()

	var shouldPrintVersion bool
	flag.BoolVar(&shouldPrintVersion, "version", false, "Print version and exit")
	var configFileName string
	flag.StringVar(&configFileName, "config", "/usr/local/etc/ndn/corefwd.toml", "Configuration file location")
	var cpuProfile string
	flag.StringVar(&cpuProfile, "cpu-profile", "", "Enable CPU profiling (output to specified file)")
	var memProfile string
	flag.StringVar(&memProfile, "mem-profile", "", "Enable memory profiling (output to specified file)")
	var blockProfile string
	flag.StringVar(&blockProfile, "block-profile", "", "Enable block profiling (output to specified file)")
	var memoryBallastSize int
	flag.IntVar(&memoryBallastSize, "memory-ballast", 0, "Enable memory ballast of specified size (in GB) to avoid frequent garbage collection")
	flag.Parse()

	if shouldPrintVersion {
		fmt.Println("corefwd: NDN forwarding core")
		fmt.Println("Version " + Version)
		fmt.Println("Released under the terms of the MIT License")
		return
	}

	if memoryBallastSize > 0 {
		_ = make([]byte, memoryBallastSize<<30)
	}

	core.LoadConfig(configFileName)
	core.InitializeLogger()
	table.Configure()
	worker.Configure()

	profiler := &core.Profiler{CPUProfile: cpuProfile, MemProfile: memProfile, BlockProfile: blockProfile}
	profiler.Start()
	profiler.WriteMemProfile()
	defer profiler.Stop()

	core.LogInfo("Main", "Starting corefwd")

	// Internal face for in-process management traffic, since concrete
	// link-layer transports are out of scope here.
	_, internalTransport := face.MakeInternalTransport()

	numWorkers := worker.NumWorkers()
	if numWorkers < 1 || numWorkers > worker.MaxWorkers {
		core.LogFatal("Main", "Number of forwarding workers must be in range [1, "+strconv.Itoa(worker.MaxWorkers)+"]")
	}
	worker.Workers = make(map[int]*worker.Worker)
	var forDispatch []dispatch.FWThread
	for i := 0; i < numWorkers; i++ {
		w := worker.NewWorker(i)
		worker.Workers[i] = w
		forDispatch = append(forDispatch, w)
		go w.Run()
	}
	dispatch.InitializeWorkers(forDispatch)

	core.LogInfo("Main", "Started "+strconv.Itoa(numWorkers)+" forwarding workers")

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM)
	receivedSig := <-sigChannel
	core.LogInfo("Main", "Received signal "+receivedSig.String()+" - exiting")
	core.ShouldQuit = true

	internalTransport.Close()
	for _, f := range face.FaceTable.GetAll() {
		f.Close()
	}

	for _, w := range worker.Workers {
		w.TellToQuit()
	}
	for _, w := range worker.Workers {
		<-w.HasQuit
	}
}
