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
	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/logger"
)

// HandleUpdateStatusEvent reports the update session status for the given activity.
// Terminal statuses are published immediately, intermediate statuses are coalesced on the configured report interval.
func (agent *fotaAgent) HandleUpdateStatusEvent(activityID string, status *types.UpdateStatus) {
	logger.Debug("handle update status event for activityId '%s' - '%s'", activityID, status.Status)

	if status.Status.IsTerminal() {
		agent.publishUpdateStatus(activityID, status)
		if agent.updateStatusNotifier != nil {
			agent.updateStatusNotifier.stop()
		}
		return
	}

	if agent.updateStatusReportInterval <= 0 {
		agent.publishUpdateStatus(activityID, status)
		return
	}

	if agent.updateStatusNotifier == nil {
		agent.updateStatusNotifier = newUpdateStatusNotifier(agent.updateStatusReportInterval, agent)
	}
	agent.updateStatusNotifier.set(activityID, status)
}

func (agent *fotaAgent) publishUpdateStatus(activityID string, status *types.UpdateStatus) {
	updateStatusBytes, err := types.ToUpdateStatusBytes(activityID, status)
	if err != nil {
		logger.ErrorErr(err, "cannot create payload for update status.")
		return
	}
	if err := agent.client.PublishUpdateStatus(updateStatusBytes); err != nil {
		logger.ErrorErr(err, "cannot publish update status.")
	}
}
