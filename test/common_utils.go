// Copyright (c) 2023 Contributors to the Eclipse Foundation
//
// See the NOTICE file(s) distributed with this work for additional
// information regarding copyright ownership.
//
// This program and the accompanying materials are made available under the
// terms of the Eclipse Public License 2.0 which is available at
// https://www.eclipse.org/legal/epl-2.0, or the Apache License, Version 2.0
// which is available at https://www.apache.org/licenses/LICENSE-2.0.
//
// SPDX-License-Identifier: EPL-2.0 OR Apache-2.0

package test

import (
	"sync"
	"testing"
	"time"
)

// AssertWithTimeout asserts that an operation is completed within a certain period of time
func AssertWithTimeout(t *testing.T, waitGroup *sync.WaitGroup, testTimeout time.Duration) {
	testWaitChan := make(chan struct{})
	go func() {
		defer close(testWaitChan)
		waitGroup.Wait()
	}()
	select {
	case <-testWaitChan:
		return // completed normally
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for ", testTimeout)
	}
}
