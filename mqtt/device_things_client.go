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
	"encoding/json"
	"fmt"

	"github.com/eclipse-kanto/fota-agent/api"
	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/logger"
	"github.com/eclipse-kanto/fota-agent/things"

	"github.com/eclipse/ditto-clients-golang"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	edgeResponseTopic = "edge/thing/response"
	edgeRequestTopic  = "edge/thing/request"
)

// edgeConfiguration represents local Edge Thing configuration. Its device, tenant and policy identifiers.
type edgeConfiguration struct {
	DeviceID string `json:"deviceId"`
	TenantID string `json:"tenantId"`
	PolicyID string `json:"policyId"`
}

type deviceThingsClient struct {
	*deviceClient
	dittoClient ditto.Client
	edgeConfig  *edgeConfiguration
	fuFeature   things.FirmwareUpdateFeature
}

// NewDeviceThingsClient instantiates a new DeviceClient instance that exposes the device state
// as a FirmwareUpdate thing feature additionally to the plain topics.
func NewDeviceThingsClient(deviceID string, config *ConnectionConfig) (api.DeviceClient, error) {
	client := &deviceThingsClient{
		deviceClient: &deviceClient{
			mqttClient: &mqttClient{
				mqttPrefix: topicPrefix + deviceIDAsTopic(deviceID),
				mqttConfig: config,
			},
			deviceID: deviceID,
		},
	}
	pahoClient, err := newClient(deviceID, config, client.onConnect)
	if err != nil {
		return nil, err
	}
	client.pahoClient = pahoClient
	return client, nil
}

// Connect connects the client to the MQTT broker and requests the edge configuration.
func (client *deviceThingsClient) Connect(handler api.AgentHandler) error {
	client.handler = handler
	connectTimeout := convertToMilliseconds(client.mqttConfig.ConnectTimeout)
	token := client.pahoClient.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("[%s] connect timed out", client.DeviceID())
	}
	return token.Error()
}

func (client *deviceThingsClient) onConnect(pahoClient pahomqtt.Client) {
	client.deviceClient.onConnect(pahoClient)

	subscribeTimeout := convertToMilliseconds(client.mqttConfig.SubscribeTimeout)
	token := client.pahoClient.Subscribe(edgeResponseTopic, 1, client.handleEdgeResponse)
	if !token.WaitTimeout(subscribeTimeout) {
		logger.Error("[%s] cannot subscribe for topic '%s' in '%v'", client.DeviceID(), edgeResponseTopic, subscribeTimeout)
		return
	}
	if token.Error() != nil {
		logger.ErrorErr(token.Error(), "[%s] cannot subscribe for topic '%s'", client.DeviceID(), edgeResponseTopic)
		return
	}

	acknowledgeTimeout := convertToMilliseconds(client.mqttConfig.AcknowledgeTimeout)
	token = client.pahoClient.Publish(edgeRequestTopic, 1, false, "")
	if !token.WaitTimeout(acknowledgeTimeout) {
		logger.Error("[%s] cannot publish to topic '%s' in '%v'", client.DeviceID(), edgeRequestTopic, acknowledgeTimeout)
	}
	if token.Error() != nil {
		logger.ErrorErr(token.Error(), "[%s] cannot publish to topic '%s'", client.DeviceID(), edgeRequestTopic)
	}
}

func (client *deviceThingsClient) handleEdgeResponse(_ pahomqtt.Client, message pahomqtt.Message) {
	var (
		localCfg = &edgeConfiguration{}
		err      error
	)

	if err = json.Unmarshal(message.Payload(), localCfg); err != nil {
		logger.ErrorErr(err, "[%s] could not unmarshal edge configuration: %v", client.DeviceID(), message)
		return
	}
	if client.edgeConfig == nil || *localCfg != *client.edgeConfig {
		logger.Info("[%s] applying edge configuration: %v", client.DeviceID(), localCfg)
		if client.edgeConfig != nil {
			client.fuFeature.Deactivate()
			client.dittoClient.Disconnect()
		}

		dittoConfig := ditto.NewConfiguration().
			WithAcknowledgeTimeout(convertToMilliseconds(client.mqttConfig.AcknowledgeTimeout)).
			WithSubscribeTimeout(convertToMilliseconds(client.mqttConfig.SubscribeTimeout)).
			WithUnsubscribeTimeout(convertToMilliseconds(client.mqttConfig.UnsubscribeTimeout)).
			WithConnectHandler(func(dittoClient ditto.Client) {
				if err = client.fuFeature.Activate(); err != nil {
					logger.ErrorErr(err, "[%s] could not activate firmware update feature", client.DeviceID())
				} else {
					go client.getAndPublishCurrentState()
				}
			})

		if client.dittoClient, err = ditto.NewClientMQTT(client.pahoClient, dittoConfig); err != nil {
			logger.ErrorErr(err, "[%s] could not create ditto client", client.DeviceID())
			return
		}
		client.fuFeature = things.NewFirmwareUpdateFeature(localCfg.DeviceID, client.dittoClient, client.handler)

		if err = client.dittoClient.Connect(); err != nil {
			logger.ErrorErr(err, "[%s] could not connect to ditto endpoint", client.DeviceID())
			return
		}
		client.edgeConfig = localCfg
		logger.Info("[%s] edge configuration applied [TenantID: %s, DeviceID: %s, PolicyID: %s]", client.DeviceID(), localCfg.TenantID, localCfg.DeviceID, localCfg.PolicyID)
	}
}

// Disconnect disconnects the client from the MQTT broker and deactivates the feature.
func (client *deviceThingsClient) Disconnect() {
	token := client.pahoClient.Unsubscribe(edgeResponseTopic)
	unsubscribeTimeout := convertToMilliseconds(client.mqttConfig.UnsubscribeTimeout)
	if !token.WaitTimeout(unsubscribeTimeout) {
		logger.Warn("[%s] cannot unsubscribe for topic '%s' in '%v'", client.DeviceID(), edgeResponseTopic, unsubscribeTimeout)
	} else if err := token.Error(); err != nil {
		logger.WarnErr(err, "[%s] error unsubscribing for topic '%s'", client.DeviceID(), edgeResponseTopic)
	}
	if client.fuFeature != nil {
		client.fuFeature.Deactivate()
	}
	if client.dittoClient != nil {
		client.dittoClient.Disconnect()
	}

	client.deviceClient.Disconnect()
}

// PublishCurrentState sends the current state over the plain topic and mirrors it into the feature state property.
func (client *deviceThingsClient) PublishCurrentState(currentState []byte) error {
	if err := client.deviceClient.PublishCurrentState(currentState); err != nil {
		return err
	}
	if client.fuFeature == nil {
		return nil
	}
	activityID, state, err := types.FromCurrentStateBytes(currentState)
	if err != nil {
		return err
	}
	return client.fuFeature.SetState(activityID, state)
}

// PublishUpdateStatus sends the update status over the plain topic and as a feature outbox message.
func (client *deviceThingsClient) PublishUpdateStatus(updateStatus []byte) error {
	if err := client.deviceClient.PublishUpdateStatus(updateStatus); err != nil {
		return err
	}
	if client.fuFeature == nil {
		return nil
	}
	activityID, status, err := types.FromUpdateStatusBytes(updateStatus)
	if err != nil {
		return err
	}
	return client.fuFeature.SendStatus(activityID, status)
}
