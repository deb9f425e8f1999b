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
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/logger"
)

// Handler executes a remote job with the given arguments and returns its result.
type Handler func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Registry holds the named remote job handlers of the device.
type Registry struct {
	lock     sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry instantiates a job registry with the builtin jobs registered.
func NewRegistry() *Registry {
	registry := &Registry{
		handlers: map[string]Handler{},
	}
	registry.handlers[jobPing] = pingJob
	registry.handlers[jobList] = registry.listJob
	return registry
}

// Register adds a custom job handler under the given name.
func (registry *Registry) Register(name string, handler Handler) error {
	if name == "" {
		return errors.New("job name must not be empty")
	}
	if handler == nil {
		return errors.Errorf("no handler provided for job '%s'", name)
	}
	registry.lock.Lock()
	defer registry.lock.Unlock()

	if _, ok := registry.handlers[name]; ok {
		return errors.Errorf("job '%s' is already registered", name)
	}
	registry.handlers[name] = handler
	return nil
}

// Jobs returns the names of all registered jobs, sorted.
func (registry *Registry) Jobs() []string {
	registry.lock.RLock()
	defer registry.lock.RUnlock()

	names := make([]string, 0, len(registry.handlers))
	for name := range registry.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch executes the handler for the requested job and returns the job response.
// An unknown job or a failing handler is reported with the error set in the response.
func (registry *Registry) Dispatch(ctx context.Context, request *types.JobRequest) *types.JobResponse {
	registry.lock.RLock()
	handler, ok := registry.handlers[request.Job]
	registry.lock.RUnlock()

	response := &types.JobResponse{Job: request.Job}
	if !ok {
		logger.Warn("received request for unknown job '%s'", request.Job)
		response.Error = fmt.Sprintf("unknown job '%s'", request.Job)
		return response
	}
	result, err := invoke(ctx, handler, request.Args)
	if err != nil {
		logger.ErrorErr(err, "job '%s' failed", request.Job)
		response.Error = err.Error()
		return response
	}
	logger.Debug("job '%s' completed", request.Job)
	response.Result = result
	return response
}

func invoke(ctx context.Context, handler Handler, args map[string]interface{}) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("job handler panicked: %v", r)
		}
	}()
	return handler(ctx, args)
}
