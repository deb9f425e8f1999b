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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionStore(t *testing.T) {
	t.Run("test_current_not_existing", func(t *testing.T) {
		store := newVersionStore(filepath.Join(t.TempDir(), "version"), "1.0.0")
		assert.Equal(t, "1.0.0", store.current())
	})

	t.Run("test_current_empty_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "version")
		require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))

		store := newVersionStore(path, "1.0.0")
		assert.Equal(t, "1.0.0", store.current())
	})

	t.Run("test_set_and_current", func(t *testing.T) {
		store := newVersionStore(filepath.Join(t.TempDir(), "nested", "version"), "1.0.0")

		require.NoError(t, store.set("2.0.0"))
		assert.Equal(t, "2.0.0", store.current())
	})

	t.Run("test_current_trims_whitespace", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "version")
		require.NoError(t, os.WriteFile(path, []byte(" 2.0.0 \n"), 0644))

		store := newVersionStore(path, "1.0.0")
		assert.Equal(t, "2.0.0", store.current())
	})
}
