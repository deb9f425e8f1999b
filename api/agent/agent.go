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
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/eclipse-kanto/fota-agent/api"
	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/jobs"
	"github.com/eclipse-kanto/fota-agent/logger"
)

type fotaAgentOption = func(agent *fotaAgent)

// fotaAgent connects the device client with the update manager and the job registry.
type fotaAgent struct {
	ctx     context.Context
	client  api.DeviceClient
	manager api.UpdateManager
	jobs    *jobs.Registry

	updateStatusReportInterval time.Duration
	currentStateReportDelay    time.Duration

	updateStatusNotifier *updateStatusNotifier
	currentStateNotifier *currentStateNotifier

	telemetry *telemetryReporter

	clientLock       sync.Mutex
	updateStatusLock sync.Mutex
	currentStateLock sync.Mutex
}

// NewFotaAgent instantiates a FOTA Agent instance.
func NewFotaAgent(client api.DeviceClient, manager api.UpdateManager, registry *jobs.Registry, options ...fotaAgentOption) api.FotaAgent {
	fotaAgent := &fotaAgent{
		client:  client,
		manager: manager,
		jobs:    registry,
	}
	for _, option := range options {
		option(fotaAgent)
	}
	return fotaAgent
}

// Start method puts the FOTA Agent into operation.
// It will establish a connection to the MQTT broker and subscribe for incoming requests.
// It will also start the telemetry reporter, if one is configured.
func (agent *fotaAgent) Start(ctx context.Context) error {
	agent.clientLock.Lock()
	defer agent.clientLock.Unlock()

	logger.Debug("starting FOTA agent...")
	agent.manager.SetCallback(agent)

	agent.ctx = ctx
	if err := agent.client.Connect(agent); err != nil {
		return err
	}
	if agent.telemetry != nil {
		go agent.telemetry.run(ctx, agent.client)
	}
	logger.Debug("started FOTA agent.")
	return nil
}

// Stop method terminates the FOTA Agent operation.
func (agent *fotaAgent) Stop() error {
	logger.Debug("stopping FOTA agent...")
	agent.stopCurrentStateNotifier()
	agent.stopUpdateStatusNotifier()

	agent.clientLock.Lock()
	defer agent.clientLock.Unlock()

	if err := agent.manager.Dispose(); err != nil {
		return err
	}
	agent.client.Disconnect()
	logger.Debug("stopped FOTA agent.")
	return nil
}

func (agent *fotaAgent) stopUpdateStatusNotifier() {
	agent.updateStatusLock.Lock()
	defer agent.updateStatusLock.Unlock()

	if agent.updateStatusNotifier != nil {
		agent.updateStatusNotifier.stop()
	}
}

func (agent *fotaAgent) stopCurrentStateNotifier() {
	agent.currentStateLock.Lock()
	defer agent.currentStateLock.Unlock()

	if agent.currentStateNotifier != nil {
		agent.currentStateNotifier.stop()
	}
}

// HandleUpdateRequest decodes an incoming firmware update request and triggers the update session asynchronously.
func (agent *fotaAgent) HandleUpdateRequest(updateRequestBytes []byte) error {
	activityID, updateRequest, err := types.FromUpdateRequestBytes(updateRequestBytes)
	if err != nil {
		if activityID != "" {
			agent.HandleUpdateStatusEvent(activityID, &types.UpdateStatus{Status: types.StatusRefused, Message: err.Error()})
		}
		return err
	}
	logger.Debug("Received update request, activity-id=%s, version=%s", activityID, updateRequest.Version)
	go agent.applyUpdateRequest(activityID, updateRequest)
	return nil
}

// HandleCurrentStateGet reports the current device state for the given activity.
func (agent *fotaAgent) HandleCurrentStateGet(currentStateGetBytes []byte) error {
	activityID, err := types.FromCurrentStateGetBytes(currentStateGetBytes)
	if err != nil {
		return err
	}
	logger.Debug("Received current state get request, activity-id=%s", activityID)
	currentStateBytes, err := agent.GetCurrentState(agent.ctx, activityID)
	if err != nil {
		return err
	}
	if err = agent.client.PublishCurrentState(currentStateBytes); err != nil {
		return errors.Wrap(err, "cannot publish current state.")
	}
	return nil
}

// HandleJobRequest decodes an incoming job request and dispatches it to the job registry asynchronously.
func (agent *fotaAgent) HandleJobRequest(jobRequestBytes []byte) error {
	activityID, jobRequest, err := types.FromJobRequestBytes(jobRequestBytes)
	if err != nil {
		return err
	}
	logger.Debug("Received job request, activity-id=%s, job=%s", activityID, jobRequest.Job)
	go agent.dispatchJobRequest(activityID, jobRequest)
	return nil
}

// GetCurrentState serializes the current device state for the given activity.
func (agent *fotaAgent) GetCurrentState(ctx context.Context, activityID string) ([]byte, error) {
	currentState, err := agent.manager.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	currentStateBytes, err := types.ToCurrentStateBytes(activityID, currentState)
	if err == nil {
		agent.stopCurrentStateNotifier()
	}
	return currentStateBytes, err
}

func (agent *fotaAgent) applyUpdateRequest(activityID string, updateRequest *types.UpdateRequest) {
	agent.clientLock.Lock()
	defer agent.clientLock.Unlock()

	logger.Trace("applying update request...")
	agent.manager.Apply(agent.ctx, activityID, updateRequest)
}

func (agent *fotaAgent) dispatchJobRequest(activityID string, jobRequest *types.JobRequest) {
	response := agent.jobs.Dispatch(agent.ctx, jobRequest)
	jobResponseBytes, err := types.ToJobResponseBytes(activityID, response)
	if err != nil {
		logger.ErrorErr(err, "cannot create payload for job response.")
		return
	}
	if err = agent.client.PublishJobResponse(jobResponseBytes); err != nil {
		logger.ErrorErr(err, "cannot publish job response.")
	}
}
