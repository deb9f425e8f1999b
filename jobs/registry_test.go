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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/eclipse-kanto/fota-agent/api/types"
)

func TestRegister(t *testing.T) {
	registry := NewRegistry()

	assert.NoError(t, registry.Register("blink", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return "OK", nil
	}))
	assert.ErrorContains(t, registry.Register("blink", nil), "no handler provided")
	assert.ErrorContains(t, registry.Register("", pingJob), "must not be empty")
	assert.ErrorContains(t, registry.Register("blink", pingJob), "already registered")
	assert.Equal(t, []string{"blink", "jobs", "ping"}, registry.Jobs())
}

func TestDispatchBuiltinJobs(t *testing.T) {
	registry := NewRegistry()

	response := registry.Dispatch(context.Background(), &types.JobRequest{Job: "ping"})
	assert.Equal(t, &types.JobResponse{Job: "ping", Result: "pong"}, response)

	response = registry.Dispatch(context.Background(), &types.JobRequest{Job: "jobs"})
	assert.Equal(t, []string{"jobs", "ping"}, response.Result)
	assert.Empty(t, response.Error)
}

func TestDispatchUnknownJob(t *testing.T) {
	registry := NewRegistry()

	response := registry.Dispatch(context.Background(), &types.JobRequest{Job: "missing"})
	assert.Equal(t, "unknown job 'missing'", response.Error)
	assert.Nil(t, response.Result)
}

func TestDispatchCustomJob(t *testing.T) {
	registry := NewRegistry()
	assert.NoError(t, registry.Register("read_async", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		if args["var"] == "temp" {
			return map[string]interface{}{"temp": 23.5}, nil
		}
		return nil, errors.New("bad args")
	}))

	response := registry.Dispatch(context.Background(), &types.JobRequest{Job: "read_async", Args: map[string]interface{}{"var": "temp"}})
	assert.Empty(t, response.Error)
	assert.Equal(t, map[string]interface{}{"temp": 23.5}, response.Result)

	response = registry.Dispatch(context.Background(), &types.JobRequest{Job: "read_async", Args: map[string]interface{}{"var": "pressure"}})
	assert.Equal(t, "bad args", response.Error)
}

func TestDispatchRecoversPanic(t *testing.T) {
	registry := NewRegistry()
	assert.NoError(t, registry.Register("panicky", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		panic("boom")
	}))

	response := registry.Dispatch(context.Background(), &types.JobRequest{Job: "panicky"})
	assert.Contains(t, response.Error, "job handler panicked: boom")
}

func TestFirmwareVersionJob(t *testing.T) {
	handler := FirmwareVersionJob(func() string { return "1.0.0" })
	result, err := handler(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"version": "1.0.0"}, result)
}

func TestResetJob(t *testing.T) {
	restarted := make(chan struct{})
	handler := ResetJob(func() { close(restarted) })
	result, err := handler(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, "resetting", result)
	<-restarted
}
