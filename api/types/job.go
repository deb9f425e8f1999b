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

// JobRequest defines the payload holding a remote job invocation.
type JobRequest struct {
	Job  string                 `json:"job,omitempty"`
	Args map[string]interface{} `json:"args,omitempty"`
}

// JobResponse defines the payload holding the result of a remote job invocation.
type JobResponse struct {
	Job    string      `json:"job,omitempty"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// FromJobRequestBytes receives Envelope as raw bytes and converts them to JobRequest instance.
func FromJobRequestBytes(bytes []byte) (string, *JobRequest, error) {
	payloadRequest := &JobRequest{}
	envelope, err := FromEnvelope(bytes, payloadRequest)
	if err != nil {
		return "", nil, errors.Wrap(err, "cannot unmarshal job request")
	}
	if payloadRequest.Job == "" {
		return "", nil, errors.New("job request is missing job name")
	}
	return envelope.ActivityID, payloadRequest, nil
}

// ToJobRequestBytes returns the Envelope as raw bytes, setting activity ID and payload to the given parameters.
func ToJobRequestBytes(activityID string, request *JobRequest) ([]byte, error) {
	bytes, err := ToEnvelope(activityID, request)
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal job request")
	}
	return bytes, nil
}

// FromJobResponseBytes receives Envelope as raw bytes and converts them to JobResponse instance.
func FromJobResponseBytes(bytes []byte) (string, *JobResponse, error) {
	payloadResponse := &JobResponse{}
	envelope, err := FromEnvelope(bytes, payloadResponse)
	if err != nil {
		return "", nil, errors.Wrap(err, "cannot unmarshal job response")
	}
	return envelope.ActivityID, payloadResponse, nil
}

// ToJobResponseBytes returns the Envelope as raw bytes, setting activity ID and payload to the given parameters.
func ToJobResponseBytes(activityID string, response *JobResponse) ([]byte, error) {
	bytes, err := ToEnvelope(activityID, response)
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal job response")
	}
	return bytes, nil
}
