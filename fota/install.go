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
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/eclipse-kanto/fota-agent/logger"
)

// FirmwareInstaller applies a verified firmware image to the device.
// Install must leave enough state behind for Rollback to restore the previous firmware,
// Commit finalizes the installation and drops the rollback state.
type FirmwareInstaller interface {
	Install(ctx context.Context, imagePath string) error
	Commit() error
	Rollback() error
}

const backupSuffix = ".bak"

type fileInstaller struct {
	firmwarePath string
}

// NewFileInstaller instantiates an installer swapping a firmware image file on the local filesystem,
// keeping the previous image as backup until the installation is committed.
func NewFileInstaller(firmwarePath string) FirmwareInstaller {
	return &fileInstaller{firmwarePath: firmwarePath}
}

func (installer *fileInstaller) Install(ctx context.Context, imagePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(installer.firmwarePath), 0755); err != nil {
		return errors.Wrap(err, "cannot create firmware directory")
	}
	newPath := installer.firmwarePath + ".new"
	if err := copyFile(imagePath, newPath); err != nil {
		return errors.Wrap(err, "cannot stage new firmware image")
	}
	if _, err := os.Stat(installer.firmwarePath); err == nil {
		if err = os.Rename(installer.firmwarePath, installer.firmwarePath+backupSuffix); err != nil {
			os.Remove(newPath)
			return errors.Wrap(err, "cannot back up current firmware image")
		}
	}
	if err := os.Rename(newPath, installer.firmwarePath); err != nil {
		return errors.Wrap(err, "cannot activate new firmware image")
	}
	logger.Debug("installed firmware image from '%s' to '%s'", imagePath, installer.firmwarePath)
	return nil
}

func (installer *fileInstaller) Commit() error {
	if err := os.Remove(installer.firmwarePath + backupSuffix); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "cannot remove firmware backup")
	}
	return nil
}

func (installer *fileInstaller) Rollback() error {
	backupPath := installer.firmwarePath + backupSuffix
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return errors.New("no firmware backup available for rollback")
		}
		return errors.Wrap(err, "cannot access firmware backup")
	}
	if err := os.Rename(backupPath, installer.firmwarePath); err != nil {
		return errors.Wrap(err, "cannot restore firmware backup")
	}
	logger.Debug("restored previous firmware image at '%s'", installer.firmwarePath)
	return nil
}

func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
