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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, dir, name string, content []byte) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestInstall(t *testing.T) {
	dir := t.TempDir()
	firmwarePath := filepath.Join(dir, "firmware", "firmware.img")
	installer := NewFileInstaller(firmwarePath)

	imagePath := writeTestImage(t, dir, "image-v2.img", []byte("firmware v2"))

	t.Run("test_install_no_previous_firmware", func(t *testing.T) {
		require.NoError(t, installer.Install(context.Background(), imagePath))

		content, err := os.ReadFile(firmwarePath)
		require.NoError(t, err)
		assert.Equal(t, []byte("firmware v2"), content)
		// nothing to back up on first installation
		_, err = os.Stat(firmwarePath + backupSuffix)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("test_install_keeps_backup", func(t *testing.T) {
		imagePathV3 := writeTestImage(t, dir, "image-v3.img", []byte("firmware v3"))
		require.NoError(t, installer.Install(context.Background(), imagePathV3))

		content, err := os.ReadFile(firmwarePath)
		require.NoError(t, err)
		assert.Equal(t, []byte("firmware v3"), content)

		backup, err := os.ReadFile(firmwarePath + backupSuffix)
		require.NoError(t, err)
		assert.Equal(t, []byte("firmware v2"), backup)
	})

	t.Run("test_install_missing_image", func(t *testing.T) {
		assert.Error(t, installer.Install(context.Background(), filepath.Join(dir, "no-such-image.img")))
	})

	t.Run("test_install_context_canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(t, installer.Install(ctx, imagePath))
	})
}

func TestCommit(t *testing.T) {
	dir := t.TempDir()
	firmwarePath := filepath.Join(dir, "firmware.img")
	installer := NewFileInstaller(firmwarePath)

	t.Run("test_commit_removes_backup", func(t *testing.T) {
		writeTestImage(t, dir, "firmware.img"+backupSuffix, []byte("firmware v1"))

		require.NoError(t, installer.Commit())
		_, err := os.Stat(firmwarePath + backupSuffix)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("test_commit_without_backup", func(t *testing.T) {
		assert.NoError(t, installer.Commit())
	})
}

func TestRollback(t *testing.T) {
	dir := t.TempDir()
	firmwarePath := filepath.Join(dir, "firmware.img")
	installer := NewFileInstaller(firmwarePath)

	t.Run("test_rollback_without_backup", func(t *testing.T) {
		assert.Error(t, installer.Rollback())
	})

	t.Run("test_rollback_restores_backup", func(t *testing.T) {
		writeTestImage(t, dir, "firmware.img", []byte("firmware v2"))
		writeTestImage(t, dir, "firmware.img"+backupSuffix, []byte("firmware v1"))

		require.NoError(t, installer.Rollback())

		content, err := os.ReadFile(firmwarePath)
		require.NoError(t, err)
		assert.Equal(t, []byte("firmware v1"), content)
		_, err = os.Stat(firmwarePath + backupSuffix)
		assert.True(t, os.IsNotExist(err))
	})
}
