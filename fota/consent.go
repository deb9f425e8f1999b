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

package fota

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"time"

	"github.com/eclipse-kanto/fota-agent/api"
	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/logger"
)

type commandConsent struct {
	command string
	timeout time.Duration
}

// NewCommandConsent creates a consent handler delegating the accept/refuse decision
// to an external command. The update request is written as JSON to the standard input
// of the command, a zero exit status accepts the request, any other outcome refuses it.
func NewCommandConsent(command string, timeout time.Duration) api.UpdateConsentHandler {
	return &commandConsent{
		command: command,
		timeout: timeout,
	}
}

// UpdateConsent runs the configured command for the given update request.
func (consent *commandConsent) UpdateConsent(request *types.UpdateRequest) bool {
	requestBytes, err := json.Marshal(request)
	if err != nil {
		logger.ErrorErr(err, "cannot marshal update request for consent command")
		return false
	}

	ctx := context.Background()
	if consent.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, consent.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, consent.command)
	cmd.Stdin = bytes.NewReader(requestBytes)
	if err = cmd.Run(); err != nil {
		logger.Info("consent command '%s' refused update to version '%s': %v", consent.command, request.Version, err)
		return false
	}
	return true
}
