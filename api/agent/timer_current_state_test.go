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
	"testing"
	"time"

	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/test"
	"github.com/eclipse-kanto/fota-agent/test/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrentStateNotifier(t *testing.T) {
	mockCtr := gomock.NewController(t)
	defer mockCtr.Finish()

	fotaAgent := &fotaAgent{
		client: mocks.NewMockDeviceClient(mockCtr),
	}
	expectedNotifier := &currentStateNotifier{
		interval: interval,
		agent:    fotaAgent,
	}
	assert.Equal(t, expectedNotifier, newCurrentStateNotifier(interval, fotaAgent))
}

func TestCurrentStateTimerSet(t *testing.T) {
	mockCtr := gomock.NewController(t)
	defer mockCtr.Finish()

	currentStateBytes, err := types.ToCurrentStateBytes("", test.DeviceState)
	require.NoError(t, err)

	t.Run("test_set_internal_timer_not_nil", func(t *testing.T) {
		fotaAgent := &fotaAgent{
			client: mocks.NewMockDeviceClient(mockCtr),
		}

		notifier := newCurrentStateNotifier(interval, fotaAgent)
		notifier.internalTimer = time.AfterFunc(interval, func() {})

		notifier.set(currentStateBytes)

		assert.Equal(t, currentStateBytes, notifier.currentStateBytes)
		stopCurrentStateNotifierInternalTimer(notifier)
	})

	t.Run("test_set_internal_timer_nil", func(t *testing.T) {
		fotaAgent := &fotaAgent{
			client: mocks.NewMockDeviceClient(mockCtr),
		}

		notifier := newCurrentStateNotifier(interval, fotaAgent)

		notifier.set(currentStateBytes)

		assert.Equal(t, currentStateBytes, notifier.currentStateBytes)
		assert.NotNil(t, notifier.internalTimer)
		stopCurrentStateNotifierInternalTimer(notifier)
	})
}

func TestCurrentStateTimerStop(t *testing.T) {
	mockCtr := gomock.NewController(t)
	defer mockCtr.Finish()

	fotaAgent := &fotaAgent{
		client: mocks.NewMockDeviceClient(mockCtr),
	}

	currentStateBytes, err := types.ToCurrentStateBytes("", test.DeviceState)
	require.NoError(t, err)

	notifier := newCurrentStateNotifier(interval, fotaAgent)
	notifier.internalTimer = time.AfterFunc(interval, func() {})
	notifier.currentStateBytes = currentStateBytes

	notifier.stop()

	assert.Nil(t, notifier.currentStateBytes)
	assert.Nil(t, notifier.internalTimer)
}

func TestCurrentStateTimerNotifyEvent(t *testing.T) {
	mockCtr := gomock.NewController(t)
	defer mockCtr.Finish()

	currentStateBytes, err := types.ToCurrentStateBytes("", test.DeviceState)
	require.NoError(t, err)

	t.Run("test_notifyEvent_internal_timer_not_nil", func(t *testing.T) {
		mockClient := mocks.NewMockDeviceClient(mockCtr)
		fotaAgent := &fotaAgent{
			client: mockClient,
		}

		notifier := newCurrentStateNotifier(interval, fotaAgent)
		notifier.internalTimer = time.AfterFunc(interval, func() {})
		notifier.currentStateBytes = currentStateBytes
		mockClient.EXPECT().PublishCurrentState(currentStateBytes).Return(nil)

		notifier.notifyEvent()

		assert.Nil(t, notifier.internalTimer)
		assert.Nil(t, notifier.currentStateBytes)
	})

	t.Run("test_notifyEvent_internal_timer_nil", func(t *testing.T) {
		fotaAgent := &fotaAgent{
			client: mocks.NewMockDeviceClient(mockCtr),
		}

		notifier := newCurrentStateNotifier(interval, fotaAgent)

		notifier.notifyEvent()
	})
}

func stopCurrentStateNotifierInternalTimer(notifier *currentStateNotifier) {
	notifier.lock.Lock()
	defer notifier.lock.Unlock()

	if notifier.internalTimer != nil {
		notifier.internalTimer.Stop()
	}
}
