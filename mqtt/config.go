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

const (
	// default mqtt connection config
	defaultBroker             = "tcp://localhost:1883"
	defaultKeepAlive          = int64(20000)
	defaultDisconnectTimeout  = int64(250)
	defaultUsername           = ""
	defaultPassword           = ""
	defaultConnectTimeout     = int64(30000)
	defaultAcknowledgeTimeout = int64(15000)
	defaultSubscribeTimeout   = int64(15000)
	defaultUnsubscribeTimeout = int64(5000)
	defaultTokenExpiry        = int64(3600000)
	defaultCACert             = ""
	defaultCert               = ""
	defaultKey                = ""
)

// ConnectionConfig represents the mqtt client connection config, timeouts and durations are in milliseconds
type ConnectionConfig struct {
	BrokerURL          string `json:"broker,omitempty"`
	KeepAlive          int64  `json:"keepAlive,omitempty"`
	DisconnectTimeout  int64  `json:"disconnectTimeout,omitempty"`
	ClientUsername     string `json:"username,omitempty"`
	ClientPassword     string `json:"password,omitempty"`
	ConnectTimeout     int64  `json:"connectTimeout,omitempty"`
	AcknowledgeTimeout int64  `json:"acknowledgeTimeout,omitempty"`
	SubscribeTimeout   int64  `json:"subscribeTimeout,omitempty"`
	UnsubscribeTimeout int64  `json:"unsubscribeTimeout,omitempty"`
	DeviceKey          string `json:"deviceKey,omitempty"`
	TokenExpiry        int64  `json:"tokenExpiry,omitempty"`
	CACert             string `json:"caCert"`
	Cert               string `json:"cert"`
	Key                string `json:"key"`
}

// NewDefaultConfig returns a default mqtt client connection config instance
func NewDefaultConfig() *ConnectionConfig {
	return &ConnectionConfig{
		BrokerURL:          defaultBroker,
		KeepAlive:          defaultKeepAlive,
		DisconnectTimeout:  defaultDisconnectTimeout,
		ClientUsername:     defaultUsername,
		ClientPassword:     defaultPassword,
		ConnectTimeout:     defaultConnectTimeout,
		AcknowledgeTimeout: defaultAcknowledgeTimeout,
		SubscribeTimeout:   defaultSubscribeTimeout,
		UnsubscribeTimeout: defaultUnsubscribeTimeout,
		TokenExpiry:        defaultTokenExpiry,
		CACert:             defaultCACert,
		Cert:               defaultCert,
		Key:                defaultKey,
	}
}
