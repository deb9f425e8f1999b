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

package test

import (
	"time"

	"github.com/eclipse-kanto/fota-agent/api/types"
)

// ActivityID test constant
const ActivityID = "testActivityId"

// DeviceID test constant
const DeviceID = "test-device"

// Interval test constant
const Interval = 1 * time.Second

// UpdateRequest test constant
var UpdateRequest = &types.UpdateRequest{
	FirmwareID:  "test-firmware",
	Version:     "2.0.0",
	Size:        1024,
	SHA256:      "0000000000000000000000000000000000000000000000000000000000000000",
	ArtifactURL: "http://localhost/firmware/test-firmware-2.0.0.img",
}

// DeviceState test constant
var DeviceState = &types.DeviceState{
	DeviceID: DeviceID,
	Firmware: &types.FirmwareInfo{
		Version: "1.0.0",
	},
}
