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
	"time"
)

// WithCurrentStateReportDelay defines option for the agent to delay the current state reporting for the given duration, e.g. if current state changes meanwhile, only the latest current state will be sent
func WithCurrentStateReportDelay(delay time.Duration) fotaAgentOption {
	return func(agent *fotaAgent) {
		agent.currentStateReportDelay = delay
	}
}

// WithUpdateStatusReportInterval defines option for the agent to coalesce intermediate update status reports on the given interval, e.g. if there are newer status updates, only the latest status will be sent
func WithUpdateStatusReportInterval(interval time.Duration) fotaAgentOption {
	return func(agent *fotaAgent) {
		agent.updateStatusReportInterval = interval
	}
}

// WithTelemetryReporter defines option for the agent to periodically publish the device health data on the given telemetry channel
func WithTelemetryReporter(channel string, interval time.Duration, source TelemetrySource) fotaAgentOption {
	return func(agent *fotaAgent) {
		if channel != "" && interval > 0 && source != nil {
			agent.telemetry = newTelemetryReporter(channel, interval, source)
		}
	}
}
