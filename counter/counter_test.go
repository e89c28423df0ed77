// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/autonomy-network/registryd/counter"
)

func TestCounter(t *testing.T) {

	var c counter.Counter

	if !c.IsZero() {
		t.Fatalf("initial counter is not zero: %d", c.Uint64())
	}

	if 1 != c.Increment() {
		t.Errorf("increment expected: 1  actual: %d", c.Uint64())
	}
	c.Increment()
	c.Increment()
	if 3 != c.Uint64() {
		t.Errorf("value expected: 3  actual: %d", c.Uint64())
	}
	if 2 != c.Decrement() {
		t.Errorf("decrement expected: 2  actual: %d", c.Uint64())
	}
}

func TestCounterConcurrent(t *testing.T) {

	var c counter.Counter
	var wg sync.WaitGroup

	loops := 1000
	wg.Add(2)
	go func() {
		for i := 0; i < loops; i += 1 {
			c.Increment()
		}
		wg.Done()
	}()
	go func() {
		for i := 0; i < loops; i += 1 {
			c.Increment()
			c.Decrement()
		}
		wg.Done()
	}()
	wg.Wait()

	if uint64(loops) != c.Uint64() {
		t.Errorf("value expected: %d  actual: %d", loops, c.Uint64())
	}
}
