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
	"strings"

	"github.com/pkg/errors"
)

// versionStore persists the installed firmware version in a plain text file.
type versionStore struct {
	path     string
	fallback string
}

func newVersionStore(path, fallback string) *versionStore {
	return &versionStore{path: path, fallback: fallback}
}

func (store *versionStore) current() string {
	bytes, err := os.ReadFile(store.path)
	if err != nil {
		return store.fallback
	}
	version := strings.TrimSpace(string(bytes))
	if version == "" {
		return store.fallback
	}
	return version
}

func (store *versionStore) set(version string) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0755); err != nil {
		return errors.Wrap(err, "cannot create firmware version directory")
	}
	return os.WriteFile(store.path, []byte(version+"\n"), 0644)
}
