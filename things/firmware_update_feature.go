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

package things

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/eclipse-kanto/fota-agent/api"
	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/logger"
	"github.com/eclipse/ditto-clients-golang"
	"github.com/eclipse/ditto-clients-golang/model"
	"github.com/eclipse/ditto-clients-golang/protocol"
	"github.com/eclipse/ditto-clients-golang/protocol/things"
)

const (
	// firmwareUpdateFeatureID is the feature ID of the firmware update feature
	firmwareUpdateFeatureID = "FirmwareUpdate"
	// firmwareUpdateFeatureDefinition is the feature definition of the firmware update feature
	firmwareUpdateFeatureDefinition = "com.bosch.iot.suite.edge.update:FirmwareUpdate:1.0.0"
	// incoming operations
	firmwareUpdateFeatureOperationApply   = "apply"
	firmwareUpdateFeatureOperationRefresh = "refresh"
	// outgoing messages
	firmwareUpdateFeatureMessageStatus = "status"
	// properties
	firmwareUpdateFeaturePropertyDeviceID = "deviceId"

	jsonContent = "application/json"
)

type base struct {
	ActivityID string `json:"activityId"`
	Timestamp  int64  `json:"timestamp"`
}

type statusMessage struct {
	base
	UpdateStatus *types.UpdateStatus `json:"updateStatus,omitempty"`
}

type firmwareUpdateProperties struct {
	base
	DeviceID string             `json:"deviceId"`
	State    *types.DeviceState `json:"state,omitempty"`
}

type applyArgs struct {
	base
	UpdateRequest *types.UpdateRequest `json:"updateRequest"`
}

// FirmwareUpdateFeature describes the firmware update feature representation.
type FirmwareUpdateFeature interface {
	Activate() error
	Deactivate()
	SetState(activityID string, currentState *types.DeviceState) error
	SendStatus(activityID string, updateStatus *types.UpdateStatus) error
}

type firmwareUpdateFeature struct {
	sync.Mutex
	active      bool
	thingID     *model.NamespacedID
	dittoClient ditto.Client
	deviceID    string
	handler     api.AgentHandler
}

// NewFirmwareUpdateFeature creates a new firmware update feature representation.
func NewFirmwareUpdateFeature(deviceID string, dittoClient ditto.Client, handler api.AgentHandler) FirmwareUpdateFeature {
	return &firmwareUpdateFeature{
		deviceID:    deviceID,
		thingID:     model.NewNamespacedIDFrom(deviceID),
		dittoClient: dittoClient,
		handler:     handler,
	}
}

// Activate subscribes for incoming Ditto messages and registers the FirmwareUpdate feature.
func (fu *firmwareUpdateFeature) Activate() error {
	fu.Lock()
	defer fu.Unlock()

	if fu.active {
		return nil
	}

	feature := (&model.Feature{}).
		WithDefinition(model.NewDefinitionIDFrom(firmwareUpdateFeatureDefinition)).
		WithProperty(firmwareUpdateFeaturePropertyDeviceID, fu.deviceID)
	event := things.NewCommand(fu.thingID).Feature(firmwareUpdateFeatureID).Modify(feature).Twin()

	// Add the FirmwareUpdate feature.
	fu.dittoClient.Subscribe(fu.messagesHandler)
	if err := fu.dittoClient.Send(event.Envelope(protocol.WithResponseRequired(false))); err != nil {
		fu.dittoClient.Unsubscribe()
		return err
	}
	fu.active = true
	return nil
}

// Deactivate unsubscribes from incoming Ditto messages.
func (fu *firmwareUpdateFeature) Deactivate() {
	fu.Lock()
	defer fu.Unlock()
	if !fu.active {
		return
	}

	fu.dittoClient.Unsubscribe()
	fu.active = false
}

// SetState modifies the state property of the feature.
func (fu *firmwareUpdateFeature) SetState(activityID string, currentState *types.DeviceState) error {
	fu.Lock()
	defer fu.Unlock()

	if !fu.active {
		return nil
	}
	properties := &firmwareUpdateProperties{
		base:     base{ActivityID: activityID, Timestamp: time.Now().UnixNano() / int64(time.Millisecond)},
		DeviceID: fu.deviceID,
		State:    currentState,
	}
	cmd := things.NewCommand(fu.thingID).FeatureProperties(firmwareUpdateFeatureID).Twin().Modify(properties)
	return fu.dittoClient.Send(cmd.Envelope(protocol.WithResponseRequired(false), protocol.WithContentType(jsonContent)))
}

// SendStatus issues an update status message to the cloud.
func (fu *firmwareUpdateFeature) SendStatus(activityID string, updateStatus *types.UpdateStatus) error {
	fu.Lock()
	defer fu.Unlock()

	if !fu.active {
		return nil
	}
	status := &statusMessage{
		base:         base{ActivityID: activityID, Timestamp: time.Now().UnixNano() / int64(time.Millisecond)},
		UpdateStatus: updateStatus,
	}
	message := things.NewMessage(fu.thingID).Feature(firmwareUpdateFeatureID).Outbox(firmwareUpdateFeatureMessageStatus).WithPayload(status)
	return fu.dittoClient.Send(message.Envelope(protocol.WithResponseRequired(false), protocol.WithContentType(jsonContent)))
}

func (fu *firmwareUpdateFeature) messagesHandler(requestID string, msg *protocol.Envelope) {
	fu.Lock()
	defer fu.Unlock()

	if !fu.active {
		return
	}
	logger.Trace("[%s][%s] received message with request id '%s': %v", firmwareUpdateFeatureID, fu.deviceID, requestID, msg)
	if msg.Topic.Namespace == fu.thingID.Namespace && msg.Topic.EntityName == fu.thingID.Name {
		if msg.Path == fmt.Sprintf("/features/%s/inbox/messages/%s", firmwareUpdateFeatureID, firmwareUpdateFeatureOperationApply) {
			fu.processApply(requestID, msg)
		} else if msg.Path == fmt.Sprintf("/features/%s/inbox/messages/%s", firmwareUpdateFeatureID, firmwareUpdateFeatureOperationRefresh) {
			fu.processRefresh(requestID, msg)
		} else {
			logger.Debug("There is no handler for a message - skipping processing")
		}
	} else {
		logger.Debug("[%s][%s] skipping processing of unexpected message with request id '%s': %v", firmwareUpdateFeatureID, fu.deviceID, requestID, msg)
	}
}

func (fu *firmwareUpdateFeature) processApply(requestID string, msg *protocol.Envelope) {
	args := &applyArgs{}
	if fu.prepare(requestID, msg, firmwareUpdateFeatureOperationApply, args) {
		if args.UpdateRequest != nil {
			fu.replySuccess(requestID, msg, firmwareUpdateFeatureOperationApply)
			go func(handler api.AgentHandler) {
				logger.Trace("[%s][%s] processing apply operation", firmwareUpdateFeatureID, fu.deviceID)
				requestBytes, err := types.ToUpdateRequestBytes(args.ActivityID, args.UpdateRequest)
				if err == nil {
					err = handler.HandleUpdateRequest(requestBytes)
				}
				if err != nil {
					logger.ErrorErr(err, "[%s][%s] error processing apply operation", firmwareUpdateFeatureID, fu.deviceID)
				}
			}(fu.handler)
		} else {
			fu.replyError("update request is missing", requestID, msg, firmwareUpdateFeatureOperationApply)
		}
	}
}

func (fu *firmwareUpdateFeature) processRefresh(requestID string, msg *protocol.Envelope) {
	args := &base{}
	if fu.prepare(requestID, msg, firmwareUpdateFeatureOperationRefresh, args) {
		fu.replySuccess(requestID, msg, firmwareUpdateFeatureOperationRefresh)
		go func(handler api.AgentHandler) {
			logger.Trace("[%s][%s] processing refresh operation", firmwareUpdateFeatureID, fu.deviceID)
			getBytes, err := types.ToCurrentStateGetBytes(args.ActivityID)
			if err == nil {
				err = handler.HandleCurrentStateGet(getBytes)
			}
			if err != nil {
				logger.ErrorErr(err, "[%s][%s] error processing refresh operation", firmwareUpdateFeatureID, fu.deviceID)
			}
		}(fu.handler)
	}
}

func (fu *firmwareUpdateFeature) prepare(requestID string, msg *protocol.Envelope, operation string, to interface{}) bool {
	logger.Trace("[%s][%s] parse message value: %v", firmwareUpdateFeatureID, fu.deviceID, msg.Value)

	bytes, err := json.Marshal(msg.Value)
	if err == nil {
		if err = json.Unmarshal(bytes, to); err == nil {
			logger.Debug("[%s][%s] execute '%s' operation with correlation id '%s'", firmwareUpdateFeatureID, fu.deviceID, operation, msg.Headers.CorrelationID())
			return true
		}
	}
	fu.replyError(err.Error(), requestID, msg, operation)
	return false
}

func (fu *firmwareUpdateFeature) replySuccess(requestID string, msg *protocol.Envelope, operation string) {
	if msg.Headers.IsResponseRequired() {
		fu.reply(requestID, msg.Headers.CorrelationID(), operation, 204, nil)
	}
}

func (fu *firmwareUpdateFeature) replyError(errMsg string, requestID string, msg *protocol.Envelope, operation string) {
	if msg.Headers.IsResponseRequired() {
		thingErr := newMessagesParameterInvalidError(errMsg)
		logger.ErrorErr(thingErr, "[%s][%s] invalid request", firmwareUpdateFeatureID, fu.deviceID)
		fu.reply(requestID, msg.Headers.CorrelationID(), operation, thingErr.Status, thingErr)
	}
}

func (fu *firmwareUpdateFeature) reply(requestID string, cid string, cmd string, status int, payload interface{}) {
	bHeadersOpts := [3]protocol.HeaderOpt{protocol.WithCorrelationID(cid), protocol.WithResponseRequired(false)}
	headerOpts := bHeadersOpts[:2]
	response := things.NewMessage(fu.thingID).Feature(firmwareUpdateFeatureID).Outbox(cmd)
	if payload != nil {
		response.WithPayload(payload)
		headerOpts = append(headerOpts, protocol.WithContentType(jsonContent))
	}
	responseMsg := response.Envelope(headerOpts...)
	responseMsg.Status = status

	if err := fu.dittoClient.Reply(requestID, responseMsg); err != nil {
		logger.ErrorErr(err, "[%s][%s] failed to send error response for request id '%s'", firmwareUpdateFeatureID, fu.deviceID, requestID)
	} else {
		logger.Debug("[%s][%s] sent reply for request id '%s': %v", firmwareUpdateFeatureID, fu.deviceID, requestID, responseMsg)
	}
}
