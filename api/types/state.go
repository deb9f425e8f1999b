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

package types

import (
	"github.com/pkg/errors"
)

// DeviceState defines the payload holding the current device state.
type DeviceState struct {
	DeviceID        string        `json:"deviceId,omitempty"`
	Firmware        *FirmwareInfo `json:"firmware,omitempty"`
	PendingFirmware *FirmwareInfo `json:"pendingFirmware,omitempty"`
	LastUpdate      *UpdateStatus `json:"lastUpdate,omitempty"`
}

// FromCurrentStateBytes receives Envelope as raw bytes and converts them to DeviceState instance.
func FromCurrentStateBytes(bytes []byte) (string, *DeviceState, error) {
	payloadCurrentState := &DeviceState{}
	envelope, err := FromEnvelope(bytes, payloadCurrentState)
	if err != nil {
		return "", nil, errors.Wrap(err, "cannot unmarshal current state")
	}
	return envelope.ActivityID, payloadCurrentState, nil
}

// ToCurrentStateBytes returns the Envelope as raw bytes, setting activity ID and payload to the given parameters.
func ToCurrentStateBytes(activityID string, currentState *DeviceState) ([]byte, error) {
	bytes, err := ToEnvelope(activityID, currentState)
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal current state")
	}
	return bytes, nil
}

// FromCurrentStateGetBytes receives Envelope as raw bytes and converts them and returns the activityId.
func FromCurrentStateGetBytes(bytes []byte) (string, error) {
	envelope, err := FromEnvelope(bytes, nil)
	if err != nil {
		return "", errors.Wrap(err, "cannot unmarshal current state get")
	}
	return envelope.ActivityID, nil
}

// ToCurrentStateGetBytes returns the Envelope as raw bytes, setting activity ID to the given parameter.
func ToCurrentStateGetBytes(activityID string) ([]byte, error) {
	bytes, err := ToEnvelope(activityID, nil)
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal current state get")
	}
	return bytes, nil
}

// ToTelemetryBytes returns the Envelope as raw bytes, setting activity ID and the telemetry payload to the given parameters.
func ToTelemetryBytes(activityID string, payload interface{}) ([]byte, error) {
	bytes, err := ToEnvelope(activityID, payload)
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal telemetry data")
	}
	return bytes, nil
}
