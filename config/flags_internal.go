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

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/eclipse-kanto/fota-agent/logger"
)

// SetupAllFotaAgentFlags adds all flags for the configuration of the FOTA agent
func SetupAllFotaAgentFlags(flagSet *flag.FlagSet, cfg *Config) {
	SetupFlags(flagSet, cfg.BaseConfig)

	flagSet.BoolVar(&cfg.Fota.RebootEnabled, "reboot-enabled", EnvToBool("REBOOT_ENABLED", cfg.Fota.RebootEnabled), "Specify a flag that controls the enabling/disabling of the reboot process after successful firmware installation")
	flagSet.StringVar(&cfg.Fota.RebootAfter, "reboot-after", EnvToString("REBOOT_AFTER", cfg.Fota.RebootAfter), "Specify the timeout to wait before a reboot process is initiated after successful firmware installation. Value should be a positive integer number followed by a unit suffix, such as '60s', '10m', etc")

	flagSet.StringVar(&cfg.Fota.DownloadDir, "download-dir", EnvToString("DOWNLOAD_DIR", cfg.Fota.DownloadDir), "Specify the directory where firmware artifacts are downloaded to")
	flagSet.StringVar(&cfg.Fota.FirmwarePath, "firmware-path", EnvToString("FIRMWARE_PATH", cfg.Fota.FirmwarePath), "Specify the path of the active firmware image")
	flagSet.StringVar(&cfg.Fota.VersionFile, "version-file", EnvToString("VERSION_FILE", cfg.Fota.VersionFile), "Specify the file where the installed firmware version is persisted")
	flagSet.StringVar(&cfg.Fota.JournalFile, "journal-file", EnvToString("JOURNAL_FILE", cfg.Fota.JournalFile), "Specify the file where the in-flight update session is journaled")
	flagSet.StringVar(&cfg.Fota.InitialVersion, "initial-version", EnvToString("INITIAL_VERSION", cfg.Fota.InitialVersion), "Specify the firmware version reported when no version has been persisted yet")
	flagSet.StringVar(&cfg.Fota.PhaseTimeout, "phase-timeout", EnvToString("PHASE_TIMEOUT", cfg.Fota.PhaseTimeout), "Specify the timeout for completing an update session phase. Value should be a positive integer number followed by a unit suffix, such as '60s', '10m', etc")
	flagSet.IntVar(&cfg.Fota.DownloadRetryCount, "download-retry-count", int(EnvToInt("DOWNLOAD_RETRY_COUNT", int64(cfg.Fota.DownloadRetryCount))), "Specify the number of retries for downloading the firmware artifact")
	flagSet.StringVar(&cfg.Fota.DownloadRetryInterval, "download-retry-interval", EnvToString("DOWNLOAD_RETRY_INTERVAL", cfg.Fota.DownloadRetryInterval), "Specify the interval between firmware artifact download retries. Value should be a positive integer number followed by a unit suffix, such as '60s', '10m', etc")

	flagSet.StringVar(&cfg.Fota.ConsentCommand, "consent-command", EnvToString("CONSENT_COMMAND", cfg.Fota.ConsentCommand), "Specify a command asked for consent before each update session. The update request is provided as JSON on its standard input, a zero exit status accepts the request. Empty value accepts every valid update request")
	flagSet.StringVar(&cfg.Fota.ConsentTimeout, "consent-timeout", EnvToString("CONSENT_TIMEOUT", cfg.Fota.ConsentTimeout), "Specify the timeout to wait for the consent command decision. Value should be a positive integer number followed by a unit suffix, such as '60s', '10m', etc")

	flagSet.StringVar(&cfg.StatusReportInterval, "status-report-interval", EnvToString("STATUS_REPORT_INTERVAL", cfg.StatusReportInterval), "Specify the time interval for reporting intermediate update status messages during an active update session. Value should be a positive integer number followed by a unit suffix, such as '60s', '10m', etc")
	flagSet.StringVar(&cfg.CurrentStateDelay, "current-state-delay", EnvToString("CURRENT_STATE_DELAY", cfg.CurrentStateDelay), "Specify the time delay for reporting current state messages. Value should be a positive integer number followed by a unit suffix, such as '60s', '10m', etc")
	flagSet.StringVar(&cfg.TelemetryChannel, "telemetry-channel", EnvToString("TELEMETRY_CHANNEL", cfg.TelemetryChannel), "Specify the telemetry channel the agent health data is published on")
	flagSet.StringVar(&cfg.TelemetryInterval, "telemetry-interval", EnvToString("TELEMETRY_INTERVAL", cfg.TelemetryInterval), "Specify the time interval for publishing agent health data. Empty value disables telemetry. Value should be a positive integer number followed by a unit suffix, such as '60s', '10m', etc")
}

func parseFlags(cfg *Config, version string) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagSet := flag.CommandLine

	SetupAllFotaAgentFlags(flagSet, cfg)

	fVersion := flagSet.Bool("version", false, "Prints current version and exits")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		logger.ErrorErr(err, "Cannot parse command flags")
	}

	if *fVersion {
		fmt.Println(version)
		os.Exit(0)
	}
}

func getFlagArgs(flag string) []string {
	args := os.Args[1:]
	flag1 := "-" + flag
	flag2 := "--" + flag
	for index, arg := range args {
		if strings.HasPrefix(arg, flag1+"=") || strings.HasPrefix(arg, flag2+"=") {
			return []string{arg}
		}
		if (arg == flag1 || arg == flag2) && index < len(args)-1 {
			return args[index : index+2]
		}
	}
	return []string{}
}
