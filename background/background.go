// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - framework for managing background processes
package background

// T - handle type for the stop
type T struct {
	finished chan struct{}
	shutdown []chan struct{}
}

// Process - type signature for background process
// and list of these processes
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - start up a set of background processes
// all with the same arg value
func Start(processes Processes, args interface{}) *T {

	register := &T{
		finished: make(chan struct{}),
		shutdown: make([]chan struct{}, 0, len(processes)),
	}

	// start each background
	for _, p := range processes {
		shutdown := make(chan struct{})
		register.shutdown = append(register.shutdown, shutdown)

		go func(p Process, shutdown <-chan struct{}) {
			// pass the shutdown to the Run loop for selecting
			p.Run(args, shutdown)

			// flag for the stop routine to wait for shutdown
			register.finished <- struct{}{}
		}(p, shutdown)
	}
	return register
}

// Stop - stop a set of background processes
func (t *T) Stop() {

	if nil == t {
		return
	}

	// shutdown all background tasks
	for _, shutdown := range t.shutdown {
		close(shutdown)
	}

	// wait for finished
	for range t.shutdown {
		<-t.finished
	}
}
