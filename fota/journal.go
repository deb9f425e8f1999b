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
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/eclipse-kanto/fota-agent/api/types"
)

// journalEntry records an in-flight update session so that it survives a device restart.
type journalEntry struct {
	ActivityID string                 `json:"activityId"`
	Request    *types.UpdateRequest   `json:"request"`
	Status     types.UpdateStatusType `json:"status"`
	ImagePath  string                 `json:"imagePath,omitempty"`
	Timestamp  int64                  `json:"timestamp"`
}

type journal struct {
	path string
}

func newJournal(path string) *journal {
	return &journal{path: path}
}

// load reads the persisted journal entry, returning nil if no session is recorded.
func (j *journal) load() (*journalEntry, error) {
	bytes, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "cannot read update journal")
	}
	entry := &journalEntry{}
	if err = json.Unmarshal(bytes, entry); err != nil {
		return nil, errors.Wrap(err, "cannot parse update journal")
	}
	return entry, nil
}

// save writes the journal entry atomically using a rename over a temporary file.
func (j *journal) save(entry *journalEntry) error {
	entry.Timestamp = time.Now().UnixNano() / int64(time.Millisecond)
	bytes, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "cannot marshal update journal")
	}
	if err = os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return errors.Wrap(err, "cannot create update journal directory")
	}
	tmp := j.path + ".tmp"
	if err = os.WriteFile(tmp, bytes, 0644); err != nil {
		return errors.Wrap(err, "cannot write update journal")
	}
	return os.Rename(tmp, j.path)
}

// clear removes the persisted journal entry, if any.
func (j *journal) clear() error {
	if err := os.Remove(j.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "cannot remove update journal")
	}
	return nil
}
