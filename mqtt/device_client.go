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
	"strconv"
	"strings"
	"time"

	"github.com/eclipse-kanto/fota-agent/api"
	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/logger"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const prefixInitCurrentStateID = "initial-current-state-"

const (
	topicPrefix = "zdm/"

	suffixUpdateRequest = "/update/request"
	suffixUpdateGet     = "/update/get"
	suffixUpdateStatus  = "/update/status"
	suffixCurrentState  = "/state"
	suffixJobRequest    = "/jobs/request"
	suffixJobResponse   = "/jobs/response"
	suffixTelemetry     = "/data/"

	disconnectQuiesce uint = 10000
)

type mqttClient struct {
	mqttPrefix string
	mqttConfig *ConnectionConfig
	pahoClient pahomqtt.Client
}

type deviceClient struct {
	*mqttClient
	deviceID string
	handler  api.AgentHandler
}

// NewDeviceClient instantiates a new DeviceClient instance using the provided configuration options.
func NewDeviceClient(deviceID string, config *ConnectionConfig) (api.DeviceClient, error) {
	client := &deviceClient{
		mqttClient: &mqttClient{
			mqttPrefix: topicPrefix + deviceIDAsTopic(deviceID),
			mqttConfig: config,
		},
		deviceID: deviceID,
	}
	pahoClient, err := newClient(deviceID, config, client.onConnect)
	if err != nil {
		return nil, err
	}
	client.pahoClient = pahoClient
	return client, nil
}

func (client *deviceClient) topic(topicSuffix string) string {
	return client.mqttPrefix + topicSuffix
}

// DeviceID returns the identifier of the device that is handled by this client.
func (client *deviceClient) DeviceID() string {
	return client.deviceID
}

// Connect connects the client to the MQTT broker.
func (client *deviceClient) Connect(handler api.AgentHandler) error {
	client.handler = handler
	connectTimeout := convertToMilliseconds(client.mqttConfig.ConnectTimeout)
	token := client.pahoClient.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("[%s] connect timed out", client.DeviceID())
	}
	return token.Error()
}

// Disconnect disconnects the client from the MQTT broker.
func (client *deviceClient) Disconnect() {
	if err := client.unsubscribeRequestTopics(); err != nil {
		logger.WarnErr(err, "[%s] error unsubscribing for UpdateRequest/UpdateGet/JobRequest requests", client.DeviceID())
	} else {
		logger.Debug("[%s] unsubscribed for UpdateRequest/UpdateGet/JobRequest requests", client.DeviceID())
	}
	client.pahoClient.Disconnect(disconnectQuiesce)
	client.handler = nil
}

func (client *deviceClient) onConnect(mqttClient pahomqtt.Client) {
	go client.getAndPublishCurrentState()

	if err := client.subscribeRequestTopics(); err != nil {
		logger.ErrorErr(err, "[%s] error subscribing for UpdateRequest/UpdateGet/JobRequest requests", client.DeviceID())
	} else {
		logger.Debug("[%s] subscribed for UpdateRequest/UpdateGet/JobRequest requests", client.DeviceID())
	}
}

func (client *deviceClient) subscribeRequestTopics() error {
	topicUpdateRequest := client.topic(suffixUpdateRequest)
	topicUpdateGet := client.topic(suffixUpdateGet)
	topicJobRequest := client.topic(suffixJobRequest)
	topics := []string{topicUpdateRequest, topicUpdateGet, topicJobRequest}
	topicsMap := map[string]byte{
		topicUpdateRequest: 1,
		topicUpdateGet:     1,
		topicJobRequest:    1,
	}
	logger.Debug("subscribing for '%s' topics", topics)
	subscribeTimeout := convertToMilliseconds(client.mqttConfig.SubscribeTimeout)
	token := client.pahoClient.SubscribeMultiple(topicsMap, client.handleRequest)
	if !token.WaitTimeout(subscribeTimeout) {
		return fmt.Errorf("cannot subscribe for topics '%s,%s,%s' in '%v' seconds", topicUpdateRequest, topicUpdateGet, topicJobRequest, subscribeTimeout)
	}
	return token.Error()
}

func (client *deviceClient) unsubscribeRequestTopics() error {
	topicUpdateRequest := client.topic(suffixUpdateRequest)
	topicUpdateGet := client.topic(suffixUpdateGet)
	topicJobRequest := client.topic(suffixJobRequest)
	topics := []string{topicUpdateRequest, topicUpdateGet, topicJobRequest}
	logger.Debug("[%s] unsubscribing from '%s' topics", client.DeviceID(), topics)
	token := client.pahoClient.Unsubscribe(topics...)
	unsubscribeTimeout := convertToMilliseconds(client.mqttConfig.UnsubscribeTimeout)
	if !token.WaitTimeout(unsubscribeTimeout) {
		return fmt.Errorf("cannot unsubscribe from topics '%s,%s,%s' in '%v' seconds", topicUpdateRequest, topicUpdateGet, topicJobRequest, unsubscribeTimeout)
	}
	return token.Error()
}

func (client *deviceClient) handleRequest(mqttClient pahomqtt.Client, message pahomqtt.Message) {
	topicUpdateRequest := client.topic(suffixUpdateRequest)
	topic := message.Topic()
	if topic == topicUpdateRequest {
		logger.Debug("[%s] received update request", client.DeviceID())
		updateRequest := message.Payload()
		if err := client.handler.HandleUpdateRequest(updateRequest); err != nil {
			logger.ErrorErr(err, "[%s] error processing update request", client.DeviceID())
		}
		return
	}
	topicJobRequest := client.topic(suffixJobRequest)
	if topic == topicJobRequest {
		logger.Trace("[%s] received job request", client.DeviceID())
		if err := client.handler.HandleJobRequest(message.Payload()); err != nil {
			logger.ErrorErr(err, "[%s] error processing job request", client.DeviceID())
		}
		return
	}
	logger.Trace("[%s] received current state get request", client.DeviceID())
	if err := client.handler.HandleCurrentStateGet(message.Payload()); err != nil {
		logger.ErrorErr(err, "[%s] error processing current state get request", client.DeviceID())
	}
}

func (client *deviceClient) getAndPublishCurrentState() {
	currentTime := time.Now().UnixNano() / int64(time.Millisecond)
	activityID := prefixInitCurrentStateID + strconv.FormatInt(int64(currentTime), 10)
	currentStateGet, err := types.ToCurrentStateGetBytes(activityID)
	if err != nil {
		logger.ErrorErr(err, "[%s] error getting initial current state", client.DeviceID())
		return
	}
	if err := client.handler.HandleCurrentStateGet(currentStateGet); err != nil {
		logger.ErrorErr(err, "[%s] error processing initial current state get request", client.DeviceID())
	} else {
		logger.Debug("[%s] initial current state get request successfully processed", client.DeviceID())
	}
}

// PublishCurrentState makes the client send the given raw bytes as current state message.
// The state is published retained so the platform sees the last reported state even while the device is offline.
func (client *deviceClient) PublishCurrentState(currentState []byte) error {
	if logger.IsTraceEnabled() {
		logger.Trace("[%s] publishing current state '%s'....", client.DeviceID(), currentState)
	} else {
		logger.Debug("[%s] publishing current state...", client.DeviceID())
	}
	return client.publish(client.topic(suffixCurrentState), true, currentState)
}

// PublishUpdateStatus makes the client send the given raw bytes as update status message.
func (client *deviceClient) PublishUpdateStatus(updateStatus []byte) error {
	logger.Debug("[%s] publishing update status '%s'", client.DeviceID(), updateStatus)
	return client.publish(client.topic(suffixUpdateStatus), false, updateStatus)
}

// PublishJobResponse makes the client send the given raw bytes as job response message.
func (client *deviceClient) PublishJobResponse(jobResponse []byte) error {
	logger.Debug("[%s] publishing job response '%s'", client.DeviceID(), jobResponse)
	return client.publish(client.topic(suffixJobResponse), false, jobResponse)
}

// PublishTelemetry makes the client send the given raw bytes to the given telemetry channel.
func (client *deviceClient) PublishTelemetry(channel string, payload []byte) error {
	if channel == "" {
		return newErrorf("telemetry channel is empty")
	}
	logger.Trace("[%s] publishing telemetry data to channel '%s'", client.DeviceID(), channel)
	return client.publish(client.topic(suffixTelemetry+channel), false, payload)
}

func (client *deviceClient) publish(topic string, retained bool, message []byte) error {
	logger.Debug("publishing to topic '%s'", topic)
	client.pahoClient.Publish(topic, 1, retained, message)
	logger.Debug("publishing to topic '%s' sent", topic)
	return nil
}

func deviceIDAsTopic(deviceID string) string {
	deviceID = strings.ReplaceAll(deviceID, "#", "")
	return strings.ReplaceAll(deviceID, "+", "")
}

func convertToMilliseconds(value int64) time.Duration {
	return time.Duration(value) * time.Millisecond
}

func newClient(deviceID string, config *ConnectionConfig, onConnect pahomqtt.OnConnectHandler) (pahomqtt.Client, error) {
	username, password, err := deviceCredentials(deviceID, config)
	if err != nil {
		return nil, err
	}
	clientOptions := pahomqtt.NewClientOptions().
		SetClientID(uuid.New().String()).
		AddBroker(config.BrokerURL).
		SetKeepAlive(convertToMilliseconds(config.KeepAlive)).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetProtocolVersion(4).
		SetConnectTimeout(convertToMilliseconds(config.ConnectTimeout)).
		SetOnConnectHandler(onConnect).
		SetUsername(username).
		SetPassword(password)

	if config.CACert != "" {
		tlsConfig, err := NewTLSConfig(config)
		if err != nil {
			return nil, err
		}
		clientOptions.SetTLSConfig(tlsConfig)
	}
	return pahomqtt.NewClient(clientOptions), nil
}
