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

package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/jobs"
	"github.com/eclipse-kanto/fota-agent/test"
	"github.com/eclipse-kanto/fota-agent/test/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFotaAgent(t *testing.T) {
	mockCtr := gomock.NewController(t)
	defer mockCtr.Finish()

	mockClient := mocks.NewMockDeviceClient(mockCtr)
	mockUpdateManager := mocks.NewMockUpdateManager(mockCtr)
	registry := jobs.NewRegistry()

	assert.Equal(t, &fotaAgent{
		client:  mockClient,
		manager: mockUpdateManager,
		jobs:    registry,
	}, NewFotaAgent(mockClient, mockUpdateManager, registry))
}

func TestStart(t *testing.T) {
	mockCtr := gomock.NewController(t)
	defer mockCtr.Finish()

	mockClient := mocks.NewMockDeviceClient(mockCtr)
	mockUpdateManager := mocks.NewMockUpdateManager(mockCtr)

	fotaAgent := &fotaAgent{
		client:  mockClient,
		manager: mockUpdateManager,
		ctx:     nil,
	}
	t.Run("test_start_no_error", func(t *testing.T) {
		mockUpdateManager.EXPECT().SetCallback(fotaAgent)
		mockClient.EXPECT().Connect(gomock.Any()).Return(nil)

		returnErr := fotaAgent.Start(context.Background())

		assert.Equal(t, context.Background(), fotaAgent.ctx)
		assert.NoError(t, returnErr)
	})
	t.Run("test_start_with_error", func(t *testing.T) {
		mockUpdateManager.EXPECT().SetCallback(fotaAgent)
		mockClient.EXPECT().Connect(gomock.Any()).Return(errors.New("connect error"))

		returnErr := fotaAgent.Start(context.Background())

		assert.Equal(t, context.Background(), fotaAgent.ctx)
		assert.Error(t, returnErr)
	})
}

func TestStop(t *testing.T) {
	mockCtr := gomock.NewController(t)
	defer mockCtr.Finish()

	mockClient := mocks.NewMockDeviceClient(mockCtr)
	mockUpdateManager := mocks.NewMockUpdateManager(mockCtr)

	fotaAgent := &fotaAgent{
		client:  mockClient,
		manager: mockUpdateManager,
	}

	t.Run("test_dispose_no_error", func(t *testing.T) {
		mockUpdateManager.EXPECT().Dispose().Return(nil)
		mockClient.EXPECT().Disconnect()

		assert.NoError(t, fotaAgent.Stop())
	})
	t.Run("test_dispose_with_error", func(t *testing.T) {
		mockUpdateManager.EXPECT().Dispose().Return(errors.New("dispose error"))
		assert.Error(t, fotaAgent.Stop())
		assert.Nil(t, fotaAgent.currentStateNotifier)
	})
	t.Run("test_dispose_notifiers_not_nil", func(t *testing.T) {
		fotaAgent.updateStatusNotifier = &updateStatusNotifier{
			internalTimer: time.AfterFunc(time.Millisecond, nil),
		}
		fotaAgent.currentStateNotifier = &currentStateNotifier{
			internalTimer: time.AfterFunc(time.Millisecond, nil),
		}

		mockUpdateManager.EXPECT().Dispose().Return(nil)
		mockClient.EXPECT().Disconnect()

		returnErr := fotaAgent.Stop()

		assert.Equal(t, nil, returnErr)
		assert.NotNil(t, fotaAgent.currentStateNotifier)
		assert.NotNil(t, fotaAgent.updateStatusNotifier)
	})
}

func TestHandleUpdateRequest(t *testing.T) {
	mockCtr := gomock.NewController(t)
	defer mockCtr.Finish()

	mockClient := mocks.NewMockDeviceClient(mockCtr)
	mockUpdateManager := mocks.NewMockUpdateManager(mockCtr)
	fotaAgent := &fotaAgent{
		client:  mockClient,
		manager: mockUpdateManager,
		ctx:     context.Background(),
	}

	t.Run("test_handle_update_request_ok", func(t *testing.T) {
		requestBytes, err := types.ToUpdateRequestBytes(test.ActivityID, test.UpdateRequest)
		require.NoError(t, err)

		ch := make(chan bool, 1)
		mockUpdateManager.EXPECT().Apply(context.Background(), test.ActivityID, test.UpdateRequest).DoAndReturn(
			func(ctx context.Context, activityID string, request *types.UpdateRequest) {
				ch <- true
			})
		assert.NoError(t, fotaAgent.HandleUpdateRequest(requestBytes))
		<-ch
	})

	t.Run("test_handle_update_request_invalid_payload", func(t *testing.T) {
		assert.Error(t, fotaAgent.HandleUpdateRequest([]byte("not-a-json")))
	})
}

func TestHandleCurrentStateGet(t *testing.T) {
	mockCtr := gomock.NewController(t)
	defer mockCtr.Finish()

	mockClient := mocks.NewMockDeviceClient(mockCtr)
	mockUpdateManager := mocks.NewMockUpdateManager(mockCtr)

	fotaAgent := &fotaAgent{
		client:  mockClient,
		manager: mockUpdateManager,
		ctx:     context.Background(),
	}

	currentStateGetBytes, err := types.ToCurrentStateGetBytes(test.ActivityID)
	require.NoError(t, err)

	t.Run("test_handle_current_state_get_error", func(t *testing.T) {
		mockUpdateManager.EXPECT().Get(context.Background(), test.ActivityID).Return(nil, errors.New("get error"))
		assert.Error(t, fotaAgent.HandleCurrentStateGet(currentStateGetBytes))
	})

	t.Run("test_handle_current_state_get_ok", func(t *testing.T) {
		mockUpdateManager.EXPECT().Get(context.Background(), test.ActivityID).Return(test.DeviceState, nil)
		mockClient.EXPECT().PublishCurrentState(gomock.Any()).DoAndReturn(func(currentStateBytes []byte) error {
			activityID, state, err := types.FromCurrentStateBytes(currentStateBytes)
			assert.NoError(t, err)
			assert.Equal(t, test.ActivityID, activityID)
			assert.Equal(t, test.DeviceState, state)
			return nil
		})

		assert.NoError(t, fotaAgent.HandleCurrentStateGet(currentStateGetBytes))
	})

	t.Run("test_handle_current_state_get_publish_err", func(t *testing.T) {
		mockUpdateManager.EXPECT().Get(context.Background(), test.ActivityID).Return(test.DeviceState, nil)
		mockClient.EXPECT().PublishCurrentState(gomock.Any()).Return(errors.New("publish current state error"))

		assert.Error(t, fotaAgent.HandleCurrentStateGet(currentStateGetBytes))
	})
}

func TestHandleJobRequest(t *testing.T) {
	mockCtr := gomock.NewController(t)
	defer mockCtr.Finish()

	mockClient := mocks.NewMockDeviceClient(mockCtr)
	fotaAgent := &fotaAgent{
		client:  mockClient,
		manager: mocks.NewMockUpdateManager(mockCtr),
		jobs:    jobs.NewRegistry(),
		ctx:     context.Background(),
	}

	t.Run("test_handle_job_request_ok", func(t *testing.T) {
		jobRequestBytes, err := types.ToJobRequestBytes(test.ActivityID, &types.JobRequest{Job: "ping"})
		require.NoError(t, err)

		ch := make(chan bool, 1)
		mockClient.EXPECT().PublishJobResponse(gomock.Any()).DoAndReturn(func(jobResponseBytes []byte) error {
			activityID, response, err := types.FromJobResponseBytes(jobResponseBytes)
			assert.NoError(t, err)
			assert.Equal(t, test.ActivityID, activityID)
			assert.Equal(t, "ping", response.Job)
			assert.Empty(t, response.Error)
			ch <- true
			return nil
		})
		assert.NoError(t, fotaAgent.HandleJobRequest(jobRequestBytes))
		<-ch
	})

	t.Run("test_handle_job_request_invalid_payload", func(t *testing.T) {
		assert.Error(t, fotaAgent.HandleJobRequest([]byte("not-a-json")))
	})
}
