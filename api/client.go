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

package api

// AgentHandler defines functions for handling the update / job / current state requests received from the device management platform
type AgentHandler interface {
	HandleUpdateRequest([]byte) error
	HandleCurrentStateGet([]byte) error
	HandleJobRequest([]byte) error
}

// DeviceClient defines an interface for interacting with the device management platform
type DeviceClient interface {
	DeviceID() string

	Connect(AgentHandler) error
	Disconnect()

	PublishUpdateStatus([]byte) error
	PublishCurrentState([]byte) error
	PublishJobResponse([]byte) error
	PublishTelemetry(channel string, payload []byte) error
}
