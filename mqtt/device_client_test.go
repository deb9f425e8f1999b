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

package mqtt

import (
	"fmt"
	"testing"
	"time"

	mqttmocks "github.com/eclipse-kanto/fota-agent/mqtt/mock"
	"github.com/eclipse-kanto/fota-agent/test/mocks"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

const testDeviceID = "test-device"

func TestConnect(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockPaho := mqttmocks.NewMockClient(mockCtrl)
	mockToken := mqttmocks.NewMockToken(mockCtrl)

	client := &mqttClient{
		pahoClient: mockPaho,
		mqttConfig: &ConnectionConfig{
			ConnectTimeout: 5,
		},
	}

	t.Run("test_Connect_waitTimeout_true", func(t *testing.T) {
		deviceClient := &deviceClient{
			deviceID:   testDeviceID,
			mqttClient: client,
		}

		mockHandler := mocks.NewMockAgentHandler(mockCtrl)

		mockPaho.EXPECT().Connect().Return(mockToken).Times(1)
		mockToken.EXPECT().WaitTimeout(time.Duration(5000000)).Return(true).Times(1)
		mockToken.EXPECT().Error().Times(1)

		connectErr := deviceClient.Connect(mockHandler)

		assert.NotNil(t, deviceClient.handler)
		assert.Equal(t, nil, connectErr)
	})

	t.Run("test_Connect_waitTimeout_false", func(t *testing.T) {
		deviceClient := &deviceClient{
			deviceID:   testDeviceID,
			mqttClient: client,
		}

		mockHandler := mocks.NewMockAgentHandler(mockCtrl)

		mockPaho.EXPECT().Connect().Return(mockToken).Times(1)
		mockToken.EXPECT().WaitTimeout(time.Duration(5000000)).Return(false).Times(1)

		connectErr := deviceClient.Connect(mockHandler)

		assert.NotNil(t, deviceClient.handler)
		assert.Equal(t, fmt.Errorf("[test-device] connect timed out"), connectErr)
	})
}

func TestDisconnect(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockPaho := mqttmocks.NewMockClient(mockCtrl)
	mockToken := mqttmocks.NewMockToken(mockCtrl)

	client := &mqttClient{
		mqttPrefix: "testTopic",
		pahoClient: mockPaho,
		mqttConfig: &ConnectionConfig{
			UnsubscribeTimeout: 5,
		},
	}

	t.Run("test_Disconnect_waitTimeout_false_assert_handler_nil", func(t *testing.T) {
		mockHandler := mocks.NewMockAgentHandler(mockCtrl)
		deviceClient := &deviceClient{
			mqttClient: client,
			handler:    mockHandler,
		}

		mockPaho.EXPECT().Unsubscribe("testTopic/update/request", "testTopic/update/get", "testTopic/jobs/request").Return(mockToken).Times(1)
		mockToken.EXPECT().WaitTimeout(time.Duration(5000000)).Return(false)
		mockPaho.EXPECT().Disconnect(uint(10000))

		deviceClient.Disconnect()

		assert.Nil(t, deviceClient.handler)
	})

	t.Run("test_Disconnect_waitTimeout_true_assert_handler_nil", func(t *testing.T) {
		mockHandler := mocks.NewMockAgentHandler(mockCtrl)
		deviceClient := &deviceClient{
			mqttClient: client,
			handler:    mockHandler,
		}

		mockPaho.EXPECT().Unsubscribe("testTopic/update/request", "testTopic/update/get", "testTopic/jobs/request").Return(mockToken).Times(1)
		mockToken.EXPECT().WaitTimeout(time.Duration(5000000)).Return(true)
		mockPaho.EXPECT().Disconnect(uint(10000))
		mockToken.EXPECT().Error()

		deviceClient.Disconnect()

		assert.Nil(t, deviceClient.handler)
	})
}

func TestPublishUpdateStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockPaho := mqttmocks.NewMockClient(mockCtrl)
	mockToken := mqttmocks.NewMockToken(mockCtrl)

	client := &mqttClient{
		mqttPrefix: "testTopic",
		pahoClient: mockPaho,
		mqttConfig: &ConnectionConfig{
			AcknowledgeTimeout: 5,
		},
	}

	deviceClient := &deviceClient{
		mqttClient: client,
	}

	mockPaho.EXPECT().Publish("testTopic/update/status", uint8(1), false, []byte("testupdatestatus")).Return(mockToken).Times(1)
	publishErr := deviceClient.PublishUpdateStatus([]byte("testupdatestatus"))

	assert.Equal(t, nil, publishErr)
}

func TestPublishCurrentState(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockPaho := mqttmocks.NewMockClient(mockCtrl)
	mockToken := mqttmocks.NewMockToken(mockCtrl)

	client := &mqttClient{
		mqttPrefix: "testTopic",
		pahoClient: mockPaho,
		mqttConfig: &ConnectionConfig{
			AcknowledgeTimeout: 5,
		},
	}

	deviceClient := &deviceClient{
		mqttClient: client,
	}
	mockPaho.EXPECT().Publish("testTopic/state", uint8(1), true, []byte("testcurrentstate")).Return(mockToken).Times(1)
	publishErr := deviceClient.PublishCurrentState([]byte("testcurrentstate"))
	assert.Equal(t, nil, publishErr)
}

func TestPublishJobResponse(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockPaho := mqttmocks.NewMockClient(mockCtrl)
	mockToken := mqttmocks.NewMockToken(mockCtrl)

	client := &mqttClient{
		mqttPrefix: "testTopic",
		pahoClient: mockPaho,
		mqttConfig: &ConnectionConfig{},
	}

	deviceClient := &deviceClient{
		mqttClient: client,
	}
	mockPaho.EXPECT().Publish("testTopic/jobs/response", uint8(1), false, []byte("testjobresponse")).Return(mockToken).Times(1)
	publishErr := deviceClient.PublishJobResponse([]byte("testjobresponse"))
	assert.Equal(t, nil, publishErr)
}

func TestPublishTelemetry(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockPaho := mqttmocks.NewMockClient(mockCtrl)
	mockToken := mqttmocks.NewMockToken(mockCtrl)

	client := &mqttClient{
		mqttPrefix: "testTopic",
		pahoClient: mockPaho,
		mqttConfig: &ConnectionConfig{},
	}

	deviceClient := &deviceClient{
		mqttClient: client,
	}

	t.Run("test_PublishTelemetry", func(t *testing.T) {
		mockPaho.EXPECT().Publish("testTopic/data/metrics", uint8(1), false, []byte("testtelemetry")).Return(mockToken).Times(1)
		publishErr := deviceClient.PublishTelemetry("metrics", []byte("testtelemetry"))
		assert.Equal(t, nil, publishErr)
	})

	t.Run("test_PublishTelemetry_emptyChannel", func(t *testing.T) {
		publishErr := deviceClient.PublishTelemetry("", []byte("testtelemetry"))
		assert.EqualError(t, publishErr, "telemetry channel is empty")
	})
}

func TestDeviceIDAsTopic(t *testing.T) {
	t.Run("test_deviceIDAsTopic_plain", func(t *testing.T) {
		assert.Equal(t, "test-device", deviceIDAsTopic("test-device"))
	})

	t.Run("test_deviceIDAsTopic_wildcards", func(t *testing.T) {
		assert.Equal(t, "testdevice", deviceIDAsTopic("test#dev+ice"))
	})
}

func TestOnConnect(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	mockPaho := mqttmocks.NewMockClient(mockCtrl)
	mockToken := mqttmocks.NewMockToken(mockCtrl)

	client := &mqttClient{
		mqttPrefix: "testTopic",
		pahoClient: mockPaho,
		mqttConfig: &ConnectionConfig{
			SubscribeTimeout:   5,
			AcknowledgeTimeout: 5,
		},
	}

	t.Run("test_onConnect_getCurrentState", func(t *testing.T) {
		mockHandler := mocks.NewMockAgentHandler(mockCtrl)
		mockHandler.EXPECT().HandleCurrentStateGet(gomock.Any())
		deviceClient := &deviceClient{
			mqttClient: client,
			handler:    mockHandler,
		}
		topicsMap := map[string]byte{
			"testTopic/update/request": 1,
			"testTopic/update/get":     1,
			"testTopic/jobs/request":   1,
		}
		mockPaho.EXPECT().SubscribeMultiple(topicsMap, gomock.Any()).Return(mockToken)
		mockToken.EXPECT().WaitTimeout(time.Duration(5000000)).Return(false).Times(1)

		deviceClient.onConnect(nil)

		// Wait for go-routine to process event.
		time.Sleep(500 * time.Millisecond)
	})
}

func TestHandleRequest(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	mockPaho := mqttmocks.NewMockClient(mockCtrl)
	mockMessage := mqttmocks.NewMockMessage(mockCtrl)

	client := &mqttClient{
		mqttPrefix: "testTopic",
		pahoClient: mockPaho,
		mqttConfig: &ConnectionConfig{},
	}

	t.Run("test_handleRequest_updateRequest", func(t *testing.T) {
		mockHandler := mocks.NewMockAgentHandler(mockCtrl)
		mockHandler.EXPECT().HandleUpdateRequest([]byte("testUpdateRequestCall"))
		deviceClient := &deviceClient{
			mqttClient: client,
			handler:    mockHandler,
		}
		mockMessage.EXPECT().Payload().Return([]byte("testUpdateRequestCall")).Times(1)
		mockMessage.EXPECT().Topic().Return("testTopic/update/request").Times(1)

		deviceClient.handleRequest(mockPaho, mockMessage)
	})

	t.Run("test_handleRequest_updateRequest_handlerErr_notNil", func(t *testing.T) {
		mockHandler := mocks.NewMockAgentHandler(mockCtrl)
		mockHandler.EXPECT().HandleUpdateRequest([]byte("testUpdateRequestCall")).Return(fmt.Errorf("errNotNil"))
		deviceClient := &deviceClient{
			mqttClient: client,
			handler:    mockHandler,
		}
		mockMessage.EXPECT().Payload().Return([]byte("testUpdateRequestCall")).Times(1)
		mockMessage.EXPECT().Topic().Return("testTopic/update/request").Times(1)

		deviceClient.handleRequest(mockPaho, mockMessage)
	})

	t.Run("test_handleRequest_jobRequest", func(t *testing.T) {
		mockHandler := mocks.NewMockAgentHandler(mockCtrl)
		mockHandler.EXPECT().HandleJobRequest([]byte("testJobRequestCall"))
		deviceClient := &deviceClient{
			mqttClient: client,
			handler:    mockHandler,
		}
		mockMessage.EXPECT().Payload().Return([]byte("testJobRequestCall")).Times(1)
		mockMessage.EXPECT().Topic().Return("testTopic/jobs/request").Times(1)

		deviceClient.handleRequest(mockPaho, mockMessage)
	})

	t.Run("test_handleRequest_currentStateGet", func(t *testing.T) {
		mockHandler := mocks.NewMockAgentHandler(mockCtrl)
		mockHandler.EXPECT().HandleCurrentStateGet([]byte("testCurrentStateGetCall"))
		deviceClient := &deviceClient{
			mqttClient: client,
			handler:    mockHandler,
		}
		mockMessage.EXPECT().Payload().Return([]byte("testCurrentStateGetCall")).Times(1)
		mockMessage.EXPECT().Topic().Return("testTopic/update/get").Times(1)

		deviceClient.handleRequest(mockPaho, mockMessage)
	})
}
