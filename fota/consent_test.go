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

//go:build !windows
// +build !windows

package fota

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eclipse-kanto/fota-agent/api/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConsentScript(t *testing.T, content string) string {
	t.Helper()
	scriptPath := filepath.Join(t.TempDir(), "consent.sh")
	require.NoError(t, os.WriteFile(scriptPath, []byte("#!/bin/sh\n"+content), 0755))
	return scriptPath
}

func TestCommandConsentAccept(t *testing.T) {
	consent := NewCommandConsent(writeConsentScript(t, "exit 0"), time.Minute)
	assert.True(t, consent.UpdateConsent(newTestUpdateRequest()))
}

func TestCommandConsentRefuse(t *testing.T) {
	consent := NewCommandConsent(writeConsentScript(t, "exit 1"), time.Minute)
	assert.False(t, consent.UpdateConsent(newTestUpdateRequest()))
}

func TestCommandConsentReceivesRequest(t *testing.T) {
	recordPath := filepath.Join(t.TempDir(), "request.json")
	consent := NewCommandConsent(writeConsentScript(t, "cat > "+recordPath), time.Minute)

	request := newTestUpdateRequest()
	assert.True(t, consent.UpdateConsent(request))

	recorded, err := os.ReadFile(recordPath)
	require.NoError(t, err)
	received := &types.UpdateRequest{}
	require.NoError(t, json.Unmarshal(recorded, received))
	assert.Equal(t, request, received)
}

func TestCommandConsentTimeout(t *testing.T) {
	consent := NewCommandConsent(writeConsentScript(t, "sleep 10"), 50*time.Millisecond)
	assert.False(t, consent.UpdateConsent(newTestUpdateRequest()))
}

func TestCommandConsentMissingCommand(t *testing.T) {
	consent := NewCommandConsent(filepath.Join(t.TempDir(), "not-existing.sh"), time.Minute)
	assert.False(t, consent.UpdateConsent(newTestUpdateRequest()))
}
