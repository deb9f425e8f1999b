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

package main

import (
	"log"
	"os"
	"time"

	"github.com/eclipse-kanto/fota-agent/api"
	"github.com/eclipse-kanto/fota-agent/api/util"
	"github.com/eclipse-kanto/fota-agent/cmd/fota-agent/app"
	"github.com/eclipse-kanto/fota-agent/config"
	"github.com/eclipse-kanto/fota-agent/fota"
	"github.com/eclipse-kanto/fota-agent/logger"
	"github.com/eclipse-kanto/fota-agent/mqtt"
)

var (
	version = "development"
)

const (
	defaultPhaseTimeout          = 10 * time.Minute
	defaultDownloadRetryInterval = 5 * time.Second
	defaultRebootAfter           = 30 * time.Second
	defaultConsentTimeout        = 30 * time.Second
)

func main() {
	cfg, err := config.LoadConfig(version)
	if err != nil {
		log.Fatal("failed to load local configuration: ", err)
	}

	loggerOut, err := logger.SetupLogger(cfg.Log, "[fota-agent]")
	if err != nil {
		log.Fatal("failed to initialize logger: ", err)
		return
	}
	defer loggerOut.Close()

	var client api.DeviceClient
	if cfg.ThingsEnabled {
		client, err = mqtt.NewDeviceThingsClient(cfg.DeviceID, cfg.MQTT)
	} else {
		client, err = mqtt.NewDeviceClient(cfg.DeviceID, cfg.MQTT)
	}
	if err == nil {
		var updateManager api.UpdateManager
		updateManager, err = fota.NewUpdateManager(newFotaConfig(cfg), newManagerOptions(cfg)...)
		if err == nil {
			err = app.Launch(version, cfg, client, updateManager)
		}
	}

	if err != nil {
		logger.Error("failed to init FOTA Agent", err, nil)
		loggerOut.Close()
		os.Exit(1)
	}
}

func newManagerOptions(cfg *config.Config) []fota.UpdateManagerOption {
	if cfg.Fota.ConsentCommand == "" {
		return nil
	}
	consent := fota.NewCommandConsent(cfg.Fota.ConsentCommand,
		util.ParseDuration("consent-timeout", cfg.Fota.ConsentTimeout, defaultConsentTimeout, defaultConsentTimeout))
	return []fota.UpdateManagerOption{fota.WithConsentHandler(consent)}
}

func newFotaConfig(cfg *config.Config) *fota.Config {
	return &fota.Config{
		DeviceID:              cfg.DeviceID,
		DownloadDir:           cfg.Fota.DownloadDir,
		FirmwarePath:          cfg.Fota.FirmwarePath,
		VersionFile:           cfg.Fota.VersionFile,
		JournalFile:           cfg.Fota.JournalFile,
		InitialVersion:        cfg.Fota.InitialVersion,
		PhaseTimeout:          util.ParseDuration("phase-timeout", cfg.Fota.PhaseTimeout, defaultPhaseTimeout, defaultPhaseTimeout),
		DownloadRetryCount:    cfg.Fota.DownloadRetryCount,
		DownloadRetryInterval: util.ParseDuration("download-retry-interval", cfg.Fota.DownloadRetryInterval, defaultDownloadRetryInterval, defaultDownloadRetryInterval),
		RebootEnabled:         cfg.Fota.RebootEnabled,
		RebootAfter:           util.ParseDuration("reboot-after", cfg.Fota.RebootAfter, defaultRebootAfter, defaultRebootAfter),
	}
}
