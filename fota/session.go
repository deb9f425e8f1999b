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

package fota

import (
	"sync"

	"github.com/eclipse-kanto/fota-agent/api"
	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/logger"
)

// updateSession tracks a single firmware update activity from acceptance to its terminal status.
type updateSession struct {
	activityID string
	request    *types.UpdateRequest

	statusLock sync.Mutex
	status     types.UpdateStatusType
	progress   uint8
	message    string

	imagePath string

	done chan struct{}

	statusCallback api.UpdateStatusHandler
}

func newUpdateSession(activityID string, request *types.UpdateRequest, statusCallback api.UpdateStatusHandler) *updateSession {
	return &updateSession{
		activityID:     activityID,
		request:        request,
		status:         types.StatusAccepted,
		done:           make(chan struct{}),
		statusCallback: statusCallback,
	}
}

// notifyStatus updates the session status and reports it through the status callback.
func (session *updateSession) notifyStatus(status types.UpdateStatusType, progress uint8, message string) {
	session.statusLock.Lock()
	session.status = status
	session.progress = progress
	session.message = message
	session.statusLock.Unlock()

	logger.Debug("update session '%s' entered status '%s'", session.activityID, status)
	if session.statusCallback != nil {
		session.statusCallback.HandleUpdateStatusEvent(session.activityID, session.updateStatus())
	}
	if status.IsTerminal() {
		close(session.done)
	}
}

// notifyProgress reports download progress without changing the session status.
func (session *updateSession) notifyProgress(progress uint8) {
	session.statusLock.Lock()
	if progress == session.progress || session.status != types.StatusDownloading {
		session.statusLock.Unlock()
		return
	}
	session.progress = progress
	session.statusLock.Unlock()

	if session.statusCallback != nil {
		session.statusCallback.HandleUpdateStatusEvent(session.activityID, session.updateStatus())
	}
}

func (session *updateSession) updateStatus() *types.UpdateStatus {
	session.statusLock.Lock()
	defer session.statusLock.Unlock()

	return &types.UpdateStatus{
		Status:   session.status,
		Progress: session.progress,
		Message:  session.message,
		Firmware: &types.FirmwareInfo{
			Version: session.request.Version,
			SHA256:  session.request.SHA256,
		},
	}
}

func (session *updateSession) terminated() bool {
	select {
	case <-session.done:
		return true
	default:
		return false
	}
}
