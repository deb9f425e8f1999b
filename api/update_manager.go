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

import (
	"context"

	"github.com/eclipse-kanto/fota-agent/api/types"
)

// FotaAgent defines the interface for starting/stopping a FOTA agent.
type FotaAgent interface {
	Start(context.Context) error
	Stop() error
}

// UpdateManager provides the device-side update session management abstraction
type UpdateManager interface {
	SetCallback(callback UpdateManagerCallback)

	Apply(ctx context.Context, activityID string, request *types.UpdateRequest)
	Get(ctx context.Context, activityID string) (*types.DeviceState, error)

	Dispose() error
}

// UpdateConsentHandler defines the callback deciding whether a firmware update request shall be accepted or refused
type UpdateConsentHandler interface {
	UpdateConsent(request *types.UpdateRequest) bool
}

// UpdateStatusHandler defines a callback for handling update status events
type UpdateStatusHandler interface {
	HandleUpdateStatusEvent(activityID string, status *types.UpdateStatus)
}

// CurrentStateHandler defines a callback for handling current state events
type CurrentStateHandler interface {
	HandleCurrentStateEvent(activityID string, currentState *types.DeviceState)
}

// UpdateManagerCallback defines a callback for event handling
type UpdateManagerCallback interface {
	UpdateStatusHandler
	CurrentStateHandler
}

// ConsentFunc adapts an ordinary accept/refuse function to the UpdateConsentHandler interface.
type ConsentFunc func(request *types.UpdateRequest) bool

// UpdateConsent calls the wrapped function.
func (f ConsentFunc) UpdateConsent(request *types.UpdateRequest) bool {
	return f(request)
}
