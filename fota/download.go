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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/eclipse-kanto/fota-agent/api/types"
	"github.com/eclipse-kanto/fota-agent/logger"
)

// Downloader transfers the firmware artifact of an update request to the local filesystem
// and verifies its integrity. The returned path points to the verified image.
type Downloader interface {
	Download(ctx context.Context, request *types.UpdateRequest, progress func(written, total int64)) (string, error)
}

type httpDownloader struct {
	downloadDir   string
	retryCount    int
	retryInterval time.Duration
	client        *http.Client
}

// NewHTTPDownloader instantiates a downloader retrieving firmware artifacts over HTTP(S),
// resuming partial transfers with range requests on retry.
func NewHTTPDownloader(downloadDir string, retryCount int, retryInterval time.Duration) Downloader {
	return &httpDownloader{
		downloadDir:   downloadDir,
		retryCount:    retryCount,
		retryInterval: retryInterval,
		client:        &http.Client{},
	}
}

func (d *httpDownloader) Download(ctx context.Context, request *types.UpdateRequest, progress func(written, total int64)) (string, error) {
	if err := os.MkdirAll(d.downloadDir, 0755); err != nil {
		return "", errors.Wrap(err, "cannot create download directory")
	}
	targetPath := filepath.Join(d.downloadDir, imageFileName(request))

	var err error
	for attempt := 0; ; attempt++ {
		if err = d.transfer(ctx, request, targetPath, progress); err == nil {
			break
		}
		if attempt >= d.retryCount || ctx.Err() != nil {
			return "", err
		}
		logger.WarnErr(err, "download attempt %d for firmware '%s' failed, retrying in %v", attempt+1, request.Version, d.retryInterval)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(d.retryInterval):
		}
	}

	if err = verifyImage(targetPath, request); err != nil {
		os.Remove(targetPath)
		return "", err
	}
	return targetPath, nil
}

func (d *httpDownloader) transfer(ctx context.Context, request *types.UpdateRequest, targetPath string, progress func(written, total int64)) error {
	file, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "cannot open download target file")
	}
	defer file.Close()

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return errors.Wrap(err, "cannot seek download target file")
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, request.ArtifactURL, nil)
	if err != nil {
		return errors.Wrap(err, "cannot create artifact request")
	}
	if offset > 0 {
		httpRequest.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	response, err := d.client.Do(httpRequest)
	if err != nil {
		return errors.Wrap(err, "cannot request firmware artifact")
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
		// server ignored the range request, restart from the beginning
		if offset > 0 {
			if err = file.Truncate(0); err != nil {
				return errors.Wrap(err, "cannot truncate partial download")
			}
			if offset, err = file.Seek(0, io.SeekStart); err != nil {
				return errors.Wrap(err, "cannot rewind partial download")
			}
		}
	case http.StatusPartialContent:
	case http.StatusRequestedRangeNotSatisfiable:
		// the server cannot resume from the requested offset, drop the stale file and restart
		if offset == 0 {
			return errors.Errorf("unexpected status code %d requesting firmware artifact", response.StatusCode)
		}
		if err = file.Truncate(0); err != nil {
			return errors.Wrap(err, "cannot truncate partial download")
		}
		return d.transfer(ctx, request, targetPath, progress)
	default:
		return errors.Errorf("unexpected status code %d requesting firmware artifact", response.StatusCode)
	}

	total := request.Size
	if total == 0 && response.ContentLength > 0 {
		total = offset + response.ContentLength
	}
	written := offset
	buffer := make([]byte, 32*1024)
	for {
		n, readErr := response.Body.Read(buffer)
		if n > 0 {
			if _, writeErr := file.Write(buffer[:n]); writeErr != nil {
				return errors.Wrap(writeErr, "cannot write firmware artifact")
			}
			written += int64(n)
			if progress != nil {
				progress(written, total)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return errors.Wrap(readErr, "cannot read firmware artifact")
		}
	}
}

func verifyImage(imagePath string, request *types.UpdateRequest) error {
	file, err := os.Open(imagePath)
	if err != nil {
		return errors.Wrap(err, "cannot open downloaded firmware image")
	}
	defer file.Close()

	if request.Size > 0 {
		info, err := file.Stat()
		if err != nil {
			return errors.Wrap(err, "cannot stat downloaded firmware image")
		}
		if info.Size() != request.Size {
			return errors.Errorf("downloaded firmware image size %d does not match expected size %d", info.Size(), request.Size)
		}
	}

	hash := sha256.New()
	if _, err = io.Copy(hash, file); err != nil {
		return errors.Wrap(err, "cannot hash downloaded firmware image")
	}
	digest := hex.EncodeToString(hash.Sum(nil))
	if !strings.EqualFold(digest, request.SHA256) {
		return errors.Errorf("downloaded firmware image checksum %s does not match expected checksum %s", digest, request.SHA256)
	}
	return nil
}

func imageFileName(request *types.UpdateRequest) string {
	id := request.FirmwareID
	if id == "" {
		id = "firmware"
	}
	return fmt.Sprintf("%s-%s.img", id, request.Version)
}
