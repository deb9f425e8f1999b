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
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	minTokenExpiry = int64(60000)
	maxTokenExpiry = int64(86400000)
)

// deviceCredentials produces the MQTT broker credentials for the given device.
// If a device key is configured, the password is a signed token carrying the device identity,
// otherwise the plain username/password pair from the connection config is used.
func deviceCredentials(deviceID string, config *ConnectionConfig) (string, string, error) {
	if config.DeviceKey == "" {
		return config.ClientUsername, config.ClientPassword, nil
	}
	token, err := deviceToken(deviceID, config.DeviceKey, config.TokenExpiry)
	if err != nil {
		return "", "", err
	}
	return deviceID, token, nil
}

func deviceToken(deviceID, deviceKey string, expiry int64) (string, error) {
	if expiry < minTokenExpiry {
		expiry = minTokenExpiry
	}
	if expiry > maxTokenExpiry {
		expiry = maxTokenExpiry
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   deviceID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiry) * time.Millisecond)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(deviceKey))
	if err != nil {
		return "", errors.Wrap(err, "cannot sign device token")
	}
	return token, nil
}
