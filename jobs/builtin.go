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

package jobs

import (
	"context"
)

const (
	jobPing = "ping"
	jobList = "jobs"

	// JobFirmwareVersion is the name of the builtin job reporting the installed firmware version.
	JobFirmwareVersion = "fw_version"
	// JobReset is the name of the builtin job restarting the device.
	JobReset = "reset"
)

func pingJob(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return "pong", nil
}

func (registry *Registry) listJob(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return registry.Jobs(), nil
}

// FirmwareVersionJob creates the handler for the fw_version job using the given version provider.
func FirmwareVersionJob(version func() string) Handler {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return map[string]interface{}{"version": version()}, nil
	}
}

// ResetJob creates the handler for the reset job using the given restart function.
// The restart is triggered asynchronously so that the job response can still be delivered.
func ResetJob(restart func()) Handler {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		go restart()
		return "resetting", nil
	}
}
