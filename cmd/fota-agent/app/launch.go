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

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse-kanto/fota-agent/api"
	"github.com/eclipse-kanto/fota-agent/api/agent"
	"github.com/eclipse-kanto/fota-agent/api/util"
	"github.com/eclipse-kanto/fota-agent/config"
	"github.com/eclipse-kanto/fota-agent/jobs"
	"github.com/eclipse-kanto/fota-agent/logger"
)

const (
	defaultStatusReportInterval = 60 * time.Second
	defaultCurrentStateDelay    = 30 * time.Second
)

type agentHealth struct {
	Version         string `json:"version"`
	FirmwareVersion string `json:"firmwareVersion,omitempty"`
	UptimeSeconds   int64  `json:"uptimeSeconds"`
}

// Launch is the entry point for launching of the FOTA Agent instance
func Launch(version string, cfg *config.Config, client api.DeviceClient, updateManager api.UpdateManager) error {
	signalChan := make(chan os.Signal, 1)

	fa, err := initComponent(version, cfg, client, updateManager, signalChan)
	if err != nil {
		logger.ErrorErr(err, "failed to init FOTA Agent")
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = startComponent(ctx, fa)
	if err != nil {
		logger.ErrorErr(err, "failed to start FOTA Agent")
		return err
	}
	logger.Debug("successfully started FOTA Agent")

	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGHUP)

	sig := <-signalChan
	cancel()
	logger.Debug("received OS SIGNAL >> %d ! Will exit!", sig)
	stopComponent(fa)

	return nil
}

func startComponent(ctx context.Context, agent api.FotaAgent) error {
	logger.Debug("starting FOTA Agent")
	return agent.Start(ctx)
}

func stopComponent(agent api.FotaAgent) {
	logger.Debug("stopping FOTA Agent")
	agent.Stop()
	logger.Debug("stopping FOTA Agent finished")
}

func initComponent(version string, cfg *config.Config, client api.DeviceClient, manager api.UpdateManager, signalChan chan os.Signal) (api.FotaAgent, error) {
	logger.Debug("creating FOTA Agent instance")

	firmwareVersion := func() string {
		state, err := manager.Get(context.Background(), "")
		if err != nil || state.Firmware == nil {
			return ""
		}
		return state.Firmware.Version
	}
	registry, err := newJobRegistry(firmwareVersion, signalChan)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	health := func() interface{} {
		return &agentHealth{
			Version:         version,
			FirmwareVersion: firmwareVersion(),
			UptimeSeconds:   int64(time.Since(startTime).Seconds()),
		}
	}

	return agent.NewFotaAgent(client, manager, registry,
		agent.WithCurrentStateReportDelay(util.ParseDuration("current-state-delay", cfg.CurrentStateDelay, defaultCurrentStateDelay, 0*time.Minute)),
		agent.WithUpdateStatusReportInterval(util.ParseDuration("status-report-interval", cfg.StatusReportInterval, defaultStatusReportInterval, 0*time.Minute)),
		agent.WithTelemetryReporter(cfg.TelemetryChannel,
			util.ParseDuration("telemetry-interval", cfg.TelemetryInterval, 0*time.Minute, 0*time.Minute), health)), nil
}

func newJobRegistry(firmwareVersion func() string, signalChan chan os.Signal) (*jobs.Registry, error) {
	registry := jobs.NewRegistry()
	if err := registry.Register(jobs.JobFirmwareVersion, jobs.FirmwareVersionJob(firmwareVersion)); err != nil {
		return nil, err
	}
	// the reset job shuts the agent down cleanly, the service supervisor restarts it
	restart := func() {
		signalChan <- syscall.SIGTERM
	}
	if err := registry.Register(jobs.JobReset, jobs.ResetJob(restart)); err != nil {
		return nil, err
	}
	return registry, nil
}
