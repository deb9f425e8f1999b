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

package agent

import (
	"reflect"
	"sync"
	"time"

	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/logger"
)

type updateStatusNotifier struct {
	lock          sync.Mutex
	internalTimer *time.Timer
	interval      time.Duration

	agent *fotaAgent

	activityID     string
	status         *types.UpdateStatus
	reportedStatus *types.UpdateStatus
}

func newUpdateStatusNotifier(interval time.Duration, agent *fotaAgent) *updateStatusNotifier {
	return &updateStatusNotifier{
		interval: interval,
		agent:    agent,
	}
}

func (t *updateStatusNotifier) set(activityID string, status *types.UpdateStatus) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.status = status
	if t.internalTimer == nil {
		t.activityID = activityID
		t.reportedStatus = status
		t.agent.publishUpdateStatus(activityID, status)
		t.internalTimer = time.AfterFunc(t.interval, t.notifyEvent)
	}
}

func (t *updateStatusNotifier) stop() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.activityID = ""
	t.status = nil
	t.reportedStatus = nil
	if t.internalTimer != nil {
		t.internalTimer.Stop()
		t.internalTimer = nil
	}
}

func (t *updateStatusNotifier) notifyEvent() {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.internalTimer == nil {
		return
	}
	t.internalTimer = nil
	if reflect.DeepEqual(t.status, t.reportedStatus) {
		return
	}
	t.reportedStatus = t.status
	logger.Trace("reporting coalesced update status '%s' with progress %d", t.status.Status, t.status.Progress)
	t.agent.publishUpdateStatus(t.activityID, t.status)
}
