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

package fota

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/eclipse-kanto/fota-agent/api"
	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/api/util"
	"github.com/eclipse-kanto/fota-agent/logger"
)

// Config holds the properties of the update session engine.
type Config struct {
	DeviceID              string
	DownloadDir           string
	FirmwarePath          string
	VersionFile           string
	JournalFile           string
	InitialVersion        string
	PhaseTimeout          time.Duration
	DownloadRetryCount    int
	DownloadRetryInterval time.Duration
	RebootEnabled         bool
	RebootAfter           time.Duration
}

// UpdateManagerOption adjusts the update manager configuration on creation.
type UpdateManagerOption = func(manager *fotaUpdateManager)

type fotaUpdateManager struct {
	cfg *Config

	downloader     Downloader
	installer      FirmwareInstaller
	rebootManager  RebootManager
	consentHandler api.UpdateConsentHandler

	journal  *journal
	versions *versionStore

	callback api.UpdateManagerCallback

	sessionLock   sync.Mutex
	session       *updateSession
	sessionCancel context.CancelFunc
	lastUpdate    *types.UpdateStatus

	resumeOnce sync.Once
}

// NewUpdateManager instantiates the device-side update manager for the given configuration.
func NewUpdateManager(cfg *Config, options ...UpdateManagerOption) (api.UpdateManager, error) {
	if cfg.DeviceID == "" {
		return nil, errors.New("device ID must not be empty")
	}
	if cfg.FirmwarePath == "" {
		return nil, errors.New("firmware path must not be empty")
	}
	manager := &fotaUpdateManager{
		cfg:      cfg,
		journal:  newJournal(cfg.JournalFile),
		versions: newVersionStore(cfg.VersionFile, cfg.InitialVersion),
	}
	for _, option := range options {
		option(manager)
	}
	if manager.downloader == nil {
		manager.downloader = NewHTTPDownloader(cfg.DownloadDir, cfg.DownloadRetryCount, cfg.DownloadRetryInterval)
	}
	if manager.installer == nil {
		manager.installer = NewFileInstaller(cfg.FirmwarePath)
	}
	if manager.rebootManager == nil {
		manager.rebootManager = &rebootManager{}
	}
	return manager, nil
}

// WithConsentHandler defines option for the accept/refuse decision callback invoked on each update request.
func WithConsentHandler(handler api.UpdateConsentHandler) UpdateManagerOption {
	return func(manager *fotaUpdateManager) {
		manager.consentHandler = handler
	}
}

// WithDownloader defines option for a custom firmware artifact downloader.
func WithDownloader(downloader Downloader) UpdateManagerOption {
	return func(manager *fotaUpdateManager) {
		manager.downloader = downloader
	}
}

// WithInstaller defines option for a custom firmware installer.
func WithInstaller(installer FirmwareInstaller) UpdateManagerOption {
	return func(manager *fotaUpdateManager) {
		manager.installer = installer
	}
}

// WithRebootManager defines option for a custom reboot mechanism used during firmware activation.
func WithRebootManager(rebootManager RebootManager) UpdateManagerOption {
	return func(manager *fotaUpdateManager) {
		manager.rebootManager = rebootManager
	}
}

// SetCallback sets the callback for update status and current state events.
func (manager *fotaUpdateManager) SetCallback(callback api.UpdateManagerCallback) {
	manager.callback = callback
}

// Apply validates the incoming update request, asks the consent callback for an accept/refuse
// decision and on acceptance runs the update session through its phases.
func (manager *fotaUpdateManager) Apply(ctx context.Context, activityID string, request *types.UpdateRequest) {
	manager.resumeOnce.Do(manager.resume)

	if err := request.Validate(); err != nil {
		manager.refuse(activityID, request, err.Error())
		return
	}
	if request.Version == manager.versions.current() && !request.Force {
		manager.refuse(activityID, request, "firmware version "+request.Version+" is already installed")
		return
	}

	manager.sessionLock.Lock()
	if manager.session != nil && !manager.session.terminated() {
		manager.sessionLock.Unlock()
		manager.refuse(activityID, request, "another update session is currently running")
		return
	}
	session := newUpdateSession(activityID, request, manager)
	sessionCtx, cancel := context.WithCancel(ctx)
	manager.session = session
	manager.sessionCancel = cancel
	manager.sessionLock.Unlock()

	if manager.consentHandler != nil && !manager.consentHandler.UpdateConsent(request) {
		logger.Info("update request to version '%s' refused by the device", request.Version)
		manager.finishSession(session, types.StatusRefused, "update request refused by the device")
		return
	}
	logger.Info("update request to version '%s' accepted, starting update session '%s'", request.Version, activityID)
	session.notifyStatus(types.StatusAccepted, 0, "")

	manager.runSession(sessionCtx, session)
}

func (manager *fotaUpdateManager) runSession(ctx context.Context, session *updateSession) {
	request := session.request

	// download phase
	manager.saveJournal(session, types.StatusDownloading)
	session.notifyStatus(types.StatusDownloading, 0, "")
	downloadCtx, cancelDownload := manager.phaseContext(ctx)
	imagePath, err := manager.downloader.Download(downloadCtx, request, func(written, total int64) {
		session.notifyProgress(util.ProgressPercent(written, total))
	})
	cancelDownload()
	if err != nil {
		manager.finishSession(session, types.StatusDownloadFailure, err.Error())
		return
	}
	session.imagePath = imagePath
	session.notifyStatus(types.StatusDownloadSuccess, 100, "")

	// install phase
	manager.saveJournal(session, types.StatusInstalling)
	session.notifyStatus(types.StatusInstalling, 100, "")
	installCtx, cancelInstall := manager.phaseContext(ctx)
	err = manager.installer.Install(installCtx, imagePath)
	cancelInstall()
	if err != nil {
		logger.ErrorErr(err, "cannot install firmware version '%s'", request.Version)
		session.notifyStatus(types.StatusInstallFailure, 100, err.Error())
		manager.rollbackSession(session, err.Error())
		return
	}
	session.notifyStatus(types.StatusInstallSuccess, 100, "")

	// activation phase
	if manager.cfg.RebootEnabled {
		manager.saveJournal(session, types.StatusActivating)
		session.notifyStatus(types.StatusActivating, 100, "restarting to activate firmware version "+request.Version)
		go func() {
			if err := manager.rebootManager.Reboot(manager.cfg.RebootAfter); err != nil {
				logger.ErrorErr(err, "cannot restart to activate firmware version '%s'", request.Version)
			}
		}()
		return
	}
	manager.confirmSession(session)
}

func (manager *fotaUpdateManager) confirmSession(session *updateSession) {
	request := session.request
	if err := manager.versions.set(request.Version); err != nil {
		logger.ErrorErr(err, "cannot persist firmware version '%s'", request.Version)
	}
	if err := manager.installer.Commit(); err != nil {
		logger.ErrorErr(err, "cannot commit firmware version '%s'", request.Version)
	}
	if session.imagePath != "" {
		os.Remove(session.imagePath)
	}
	manager.finishSession(session, types.StatusCompleted, "")
}

func (manager *fotaUpdateManager) rollbackSession(session *updateSession, reason string) {
	session.notifyStatus(types.StatusRollback, 100, reason)
	if err := manager.installer.Rollback(); err != nil {
		logger.ErrorErr(err, "cannot roll back firmware update session '%s'", session.activityID)
		manager.finishSession(session, types.StatusRollbackFailure, err.Error())
		return
	}
	manager.finishSession(session, types.StatusRollbackSuccess, reason)
}

func (manager *fotaUpdateManager) finishSession(session *updateSession, status types.UpdateStatusType, message string) {
	if err := manager.journal.clear(); err != nil {
		logger.WarnErr(err, "cannot clear update journal for session '%s'", session.activityID)
	}
	session.notifyStatus(status, session.updateStatus().Progress, message)

	manager.sessionLock.Lock()
	manager.lastUpdate = session.updateStatus()
	manager.sessionLock.Unlock()

	manager.notifyStateChanged()
}

// Get reports the current device state, resuming a pending firmware activation on first access.
func (manager *fotaUpdateManager) Get(ctx context.Context, activityID string) (*types.DeviceState, error) {
	manager.resumeOnce.Do(manager.resume)
	return manager.deviceState(), nil
}

func (manager *fotaUpdateManager) deviceState() *types.DeviceState {
	manager.sessionLock.Lock()
	defer manager.sessionLock.Unlock()

	state := &types.DeviceState{
		DeviceID: manager.cfg.DeviceID,
		Firmware: &types.FirmwareInfo{Version: manager.versions.current()},
	}
	if manager.session != nil && !manager.session.terminated() {
		state.PendingFirmware = &types.FirmwareInfo{
			Version: manager.session.request.Version,
			SHA256:  manager.session.request.SHA256,
		}
		state.LastUpdate = manager.session.updateStatus()
	} else {
		state.LastUpdate = manager.lastUpdate
	}
	return state
}

// Dispose cancels a running update session.
func (manager *fotaUpdateManager) Dispose() error {
	manager.sessionLock.Lock()
	defer manager.sessionLock.Unlock()

	if manager.sessionCancel != nil {
		manager.sessionCancel()
		manager.sessionCancel = nil
	}
	return nil
}

// HandleUpdateStatusEvent forwards session status events to the configured callback.
func (manager *fotaUpdateManager) HandleUpdateStatusEvent(activityID string, status *types.UpdateStatus) {
	if manager.callback != nil {
		manager.callback.HandleUpdateStatusEvent(activityID, status)
	}
}

func (manager *fotaUpdateManager) refuse(activityID string, request *types.UpdateRequest, message string) {
	logger.Info("refusing update request '%s': %s", activityID, message)
	status := &types.UpdateStatus{
		Status:  types.StatusRefused,
		Message: message,
		Firmware: &types.FirmwareInfo{
			Version: request.Version,
			SHA256:  request.SHA256,
		},
	}
	manager.sessionLock.Lock()
	manager.lastUpdate = status
	manager.sessionLock.Unlock()

	manager.HandleUpdateStatusEvent(activityID, status)
}

func (manager *fotaUpdateManager) notifyStateChanged() {
	if manager.callback == nil {
		return
	}
	manager.callback.HandleCurrentStateEvent("", manager.deviceState())
}

func (manager *fotaUpdateManager) saveJournal(session *updateSession, status types.UpdateStatusType) {
	entry := &journalEntry{
		ActivityID: session.activityID,
		Request:    session.request,
		Status:     status,
		ImagePath:  session.imagePath,
	}
	if err := manager.journal.save(entry); err != nil {
		logger.WarnErr(err, "cannot persist update journal for session '%s'", session.activityID)
	}
}

func (manager *fotaUpdateManager) phaseContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if manager.cfg.PhaseTimeout > 0 {
		return context.WithTimeout(ctx, manager.cfg.PhaseTimeout)
	}
	return context.WithCancel(ctx)
}

// resume inspects the persisted journal after a restart. A session recorded in activation is
// validated and confirmed or rolled back, any other recorded session is reported as incomplete.
func (manager *fotaUpdateManager) resume() {
	entry, err := manager.journal.load()
	if err != nil {
		logger.WarnErr(err, "cannot load update journal")
		return
	}
	if entry == nil {
		return
	}
	logger.Info("found persisted update session '%s' in status '%s'", entry.ActivityID, entry.Status)

	session := newUpdateSession(entry.ActivityID, entry.Request, manager)
	session.imagePath = entry.ImagePath

	if entry.Status != types.StatusActivating {
		manager.finishSession(session, types.StatusIncomplete, "update session interrupted by device restart")
		return
	}

	if err = verifyImage(manager.cfg.FirmwarePath, entry.Request); err != nil {
		logger.ErrorErr(err, "activated firmware for session '%s' failed validation", entry.ActivityID)
		manager.rollbackSession(session, err.Error())
		return
	}
	logger.Info("firmware version '%s' activated successfully, confirming update session '%s'", entry.Request.Version, entry.ActivityID)
	manager.confirmSession(session)
}
