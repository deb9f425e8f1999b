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
	"context"
	"time"

	"github.com/eclipse-kanto/fota-agent/api"
	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/logger"
)

// TelemetrySource provides the data published on each telemetry report.
type TelemetrySource func() interface{}

type telemetryReporter struct {
	channel  string
	interval time.Duration
	source   TelemetrySource
}

func newTelemetryReporter(channel string, interval time.Duration, source TelemetrySource) *telemetryReporter {
	return &telemetryReporter{
		channel:  channel,
		interval: interval,
		source:   source,
	}
}

func (t *telemetryReporter) run(ctx context.Context, client api.DeviceClient) {
	logger.Debug("starting telemetry reporting on channel '%s' each %v", t.channel, t.interval)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Debug("stopped telemetry reporting on channel '%s'", t.channel)
			return
		case <-ticker.C:
			t.report(client)
		}
	}
}

func (t *telemetryReporter) report(client api.DeviceClient) {
	telemetryBytes, err := types.ToTelemetryBytes("", t.source())
	if err != nil {
		logger.ErrorErr(err, "cannot create payload for telemetry data.")
		return
	}
	if err = client.PublishTelemetry(t.channel, telemetryBytes); err != nil {
		logger.ErrorErr(err, "cannot publish telemetry data on channel '%s'", t.channel)
	}
}
