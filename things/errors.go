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

import "fmt"

const (
	messagesParameterInvalidError = "messages:parameter.invalid"
)

type thingError struct {
	ErrorCode string `json:"error"`
	Status    int    `json:"status"`
	Message   string `json:"message"`
}

func (e *thingError) Error() string {
	return fmt.Sprintf("[%d][%s] %s", e.Status, e.ErrorCode, e.Message)
}

func newMessagesParameterInvalidError(messageFormat string, args ...interface{}) *thingError {
	return &thingError{
		ErrorCode: messagesParameterInvalidError,
		Status:    400,
		Message:   fmt.Sprintf(messageFormat, args...),
	}
}
