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

package types

import (
	"github.com/pkg/errors"
)

// UpdateStatusType defines values for status within the update status feedback
type UpdateStatusType string

const (
	// StatusAccepted denotes that the update request has been accepted by the device.
	StatusAccepted UpdateStatusType = "ACCEPTED"
	// StatusRefused denotes that the update request has been refused by the device. Terminal status.
	StatusRefused UpdateStatusType = "REFUSED"
	// StatusDownloading denotes that the firmware artifact is currently being downloaded.
	StatusDownloading UpdateStatusType = "DOWNLOADING"
	// StatusDownloadSuccess denotes that the firmware artifact has been downloaded and verified successfully.
	StatusDownloadSuccess UpdateStatusType = "DOWNLOAD_SUCCESS"
	// StatusDownloadFailure denotes that the firmware artifact could not be downloaded or failed verification. Terminal status.
	StatusDownloadFailure UpdateStatusType = "DOWNLOAD_FAILURE"
	// StatusInstalling denotes that the firmware is currently being installed.
	StatusInstalling UpdateStatusType = "INSTALLING"
	// StatusInstallSuccess denotes that the firmware has been installed successfully.
	StatusInstallSuccess UpdateStatusType = "INSTALL_SUCCESS"
	// StatusInstallFailure denotes that the firmware could not be installed.
	StatusInstallFailure UpdateStatusType = "INSTALL_FAILURE"
	// StatusActivating denotes that the new firmware is being activated, possibly restarting the device.
	StatusActivating UpdateStatusType = "ACTIVATING"
	// StatusRollback denotes that a rollback to the previous firmware is in progress.
	StatusRollback UpdateStatusType = "ROLLBACK"
	// StatusRollbackSuccess denotes that the previous firmware has been restored. Terminal status.
	StatusRollbackSuccess UpdateStatusType = "ROLLBACK_SUCCESS"
	// StatusRollbackFailure denotes that the previous firmware could not be restored. Terminal status.
	StatusRollbackFailure UpdateStatusType = "ROLLBACK_FAILURE"
	// StatusCompleted denotes that the update session completed successfully. Terminal status.
	StatusCompleted UpdateStatusType = "COMPLETED"
	// StatusIncomplete denotes that the update session did not complete successfully. Terminal status.
	StatusIncomplete UpdateStatusType = "INCOMPLETE"
)

// UpdateRequest defines the payload holding a firmware update request.
type UpdateRequest struct {
	FirmwareID  string `json:"firmwareId,omitempty"`
	Version     string `json:"version,omitempty"`
	Size        int64  `json:"size,omitempty"`
	SHA256      string `json:"sha256,omitempty"`
	ArtifactURL string `json:"artifactUrl,omitempty"`
	Force       bool   `json:"force,omitempty"`
}

// UpdateStatus defines the payload holding update status feedback for an update session.
type UpdateStatus struct {
	Status   UpdateStatusType `json:"status,omitempty"`
	Progress uint8            `json:"progress,omitempty"`
	Message  string           `json:"message,omitempty"`
	Firmware *FirmwareInfo    `json:"firmware,omitempty"`
}

// FirmwareInfo identifies an installed or pending firmware image.
type FirmwareInfo struct {
	Version string `json:"version,omitempty"`
	SHA256  string `json:"sha256,omitempty"`
}

// Validate checks that the update request holds the properties required to start an update session.
func (request *UpdateRequest) Validate() error {
	if request.Version == "" {
		return errors.New("update request is missing firmware version")
	}
	if request.ArtifactURL == "" {
		return errors.New("update request is missing artifact URL")
	}
	if request.SHA256 == "" {
		return errors.New("update request is missing SHA-256 checksum")
	}
	if request.Size < 0 {
		return errors.Errorf("update request holds negative artifact size %d", request.Size)
	}
	return nil
}

// IsTerminal returns true if the status denotes the end of an update session.
func (status UpdateStatusType) IsTerminal() bool {
	switch status {
	case StatusRefused, StatusDownloadFailure, StatusRollbackSuccess, StatusRollbackFailure, StatusCompleted, StatusIncomplete:
		return true
	default:
		return false
	}
}

// FromUpdateRequestBytes receives Envelope as raw bytes and converts them to UpdateRequest instance.
func FromUpdateRequestBytes(bytes []byte) (string, *UpdateRequest, error) {
	payloadRequest := &UpdateRequest{}
	envelope, err := FromEnvelope(bytes, payloadRequest)
	if err != nil {
		return "", nil, errors.Wrap(err, "cannot unmarshal update request")
	}
	return envelope.ActivityID, payloadRequest, nil
}

// ToUpdateRequestBytes returns the Envelope as raw bytes, setting activity ID and payload to the given parameters.
func ToUpdateRequestBytes(activityID string, request *UpdateRequest) ([]byte, error) {
	bytes, err := ToEnvelope(activityID, request)
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal update request")
	}
	return bytes, nil
}

// FromUpdateStatusBytes receives Envelope as raw bytes and converts them to UpdateStatus instance.
func FromUpdateStatusBytes(bytes []byte) (string, *UpdateStatus, error) {
	payloadStatus := &UpdateStatus{}
	envelope, err := FromEnvelope(bytes, payloadStatus)
	if err != nil {
		return "", nil, errors.Wrap(err, "cannot unmarshal update status")
	}
	return envelope.ActivityID, payloadStatus, nil
}

// ToUpdateStatusBytes returns the Envelope as raw bytes, setting activity ID and payload to the given parameters.
func ToUpdateStatusBytes(activityID string, status *UpdateStatus) ([]byte, error) {
	bytes, err := ToEnvelope(activityID, status)
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal update status")
	}
	return bytes, nil
}
