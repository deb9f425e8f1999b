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

package config

const (
	// default log config
	logFileDefault       = ""
	logLevelDefault      = "INFO"
	logFileSizeDefault   = 2
	logFileCountDefault  = 5
	logFileMaxAgeDefault = 28

	deviceIDDefault = "device"

	downloadDirDefault    = "/var/lib/fota-agent/downloads"
	firmwarePathDefault   = "/var/lib/fota-agent/firmware.img"
	versionFileDefault    = "/var/lib/fota-agent/version"
	journalFileDefault    = "/var/lib/fota-agent/journal.json"
	initialVersionDefault = "0.0.0"

	rebootEnabledDefault         = true
	rebootAfterDefault           = "30s"
	consentCommandDefault        = ""
	consentTimeoutDefault        = "30s"
	statusReportIntervalDefault  = "1m"
	currentStateDelayDefault     = "30s"
	phaseTimeoutDefault          = "10m"
	downloadRetryCountDefault    = 3
	downloadRetryIntervalDefault = "5s"

	telemetryChannelDefault  = "metrics"
	telemetryIntervalDefault = ""
)

// FotaConfig represents the update session engine configuration.
type FotaConfig struct {
	DownloadDir           string `json:"downloadDir"`
	FirmwarePath          string `json:"firmwarePath"`
	VersionFile           string `json:"versionFile"`
	JournalFile           string `json:"journalFile"`
	InitialVersion        string `json:"initialVersion"`
	PhaseTimeout          string `json:"phaseTimeout"`
	DownloadRetryCount    int    `json:"downloadRetryCount"`
	DownloadRetryInterval string `json:"downloadRetryInterval"`
	RebootEnabled         bool   `json:"rebootEnabled"`
	RebootAfter           string `json:"rebootAfter"`
	ConsentCommand        string `json:"consentCommand,omitempty"`
	ConsentTimeout        string `json:"consentTimeout"`
}

// Config represents the FOTA agent configuration.
type Config struct {
	*BaseConfig
	Fota                 *FotaConfig `json:"fota,omitempty"`
	StatusReportInterval string      `json:"statusReportInterval"`
	CurrentStateDelay    string      `json:"currentStateDelay"`
	TelemetryChannel     string      `json:"telemetryChannel"`
	TelemetryInterval    string      `json:"telemetryInterval"`
}

func newDefaultConfig() *Config {
	return &Config{
		BaseConfig: DefaultDeviceConfig(deviceIDDefault),
		Fota: &FotaConfig{
			DownloadDir:           downloadDirDefault,
			FirmwarePath:          firmwarePathDefault,
			VersionFile:           versionFileDefault,
			JournalFile:           journalFileDefault,
			InitialVersion:        initialVersionDefault,
			PhaseTimeout:          phaseTimeoutDefault,
			DownloadRetryCount:    downloadRetryCountDefault,
			DownloadRetryInterval: downloadRetryIntervalDefault,
			RebootEnabled:         rebootEnabledDefault,
			RebootAfter:           rebootAfterDefault,
			ConsentCommand:        consentCommandDefault,
			ConsentTimeout:        consentTimeoutDefault,
		},
		StatusReportInterval: statusReportIntervalDefault,
		CurrentStateDelay:    currentStateDelayDefault,
		TelemetryChannel:     telemetryChannelDefault,
		TelemetryInterval:    telemetryIntervalDefault,
	}
}

// LoadConfig loads a new configuration instance using flags and config file (if set).
func LoadConfig(version string) (*Config, error) {
	configFilePath := ParseConfigFilePath()
	config := newDefaultConfig()
	if configFilePath != "" {
		if err := LoadConfigFromFile(configFilePath, config); err != nil {
			return nil, err
		}
	}
	parseFlags(config, version)
	return config, nil
}
