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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/eclipse-kanto/fota-agent/api/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testImageContent = []byte("this is the firmware image used by the download tests")

func testImageRequest(t *testing.T, artifactURL string) *types.UpdateRequest {
	digest := sha256.Sum256(testImageContent)
	return &types.UpdateRequest{
		FirmwareID:  "test-firmware",
		Version:     "2.0.0",
		Size:        int64(len(testImageContent)),
		SHA256:      hex.EncodeToString(digest[:]),
		ArtifactURL: artifactURL,
	}
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write(testImageContent)
	}))
	defer server.Close()

	downloadDir := filepath.Join(t.TempDir(), "downloads")
	downloader := NewHTTPDownloader(downloadDir, 0, time.Millisecond)

	var lastWritten, lastTotal int64
	imagePath, err := downloader.Download(context.Background(), testImageRequest(t, server.URL), func(written, total int64) {
		lastWritten, lastTotal = written, total
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(downloadDir, "test-firmware-2.0.0.img"), imagePath)
	content, err := os.ReadFile(imagePath)
	require.NoError(t, err)
	assert.Equal(t, testImageContent, content)
	assert.Equal(t, int64(len(testImageContent)), lastWritten)
	assert.Equal(t, int64(len(testImageContent)), lastTotal)
}

func TestDownloadChecksumMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write(testImageContent)
	}))
	defer server.Close()

	downloadDir := t.TempDir()
	downloader := NewHTTPDownloader(downloadDir, 0, time.Millisecond)

	request := testImageRequest(t, server.URL)
	request.SHA256 = strings.Repeat("0", 64)

	_, err := downloader.Download(context.Background(), request, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
	// the corrupted image is not left behind
	entries, err := os.ReadDir(downloadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownloadSizeMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write(testImageContent)
	}))
	defer server.Close()

	downloader := NewHTTPDownloader(t.TempDir(), 0, time.Millisecond)

	request := testImageRequest(t, server.URL)
	request.Size = request.Size + 1

	_, err := downloader.Download(context.Background(), request, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size")
}

func TestDownloadRetry(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if atomic.AddInt32(&requests, 1) == 1 {
			writer.WriteHeader(http.StatusInternalServerError)
			return
		}
		writer.Write(testImageContent)
	}))
	defer server.Close()

	downloader := NewHTTPDownloader(t.TempDir(), 2, time.Millisecond)

	imagePath, err := downloader.Download(context.Background(), testImageRequest(t, server.URL), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))

	content, err := os.ReadFile(imagePath)
	require.NoError(t, err)
	assert.Equal(t, testImageContent, content)
}

func TestDownloadRetriesExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	downloader := NewHTTPDownloader(t.TempDir(), 1, time.Millisecond)

	_, err := downloader.Download(context.Background(), testImageRequest(t, server.URL), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code 404")
}

func TestDownloadResumePartial(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		rangeHeader := request.Header.Get("Range")
		assert.True(t, strings.HasPrefix(rangeHeader, "bytes="))
		offset, err := strconv.ParseInt(strings.TrimSuffix(strings.TrimPrefix(rangeHeader, "bytes="), "-"), 10, 64)
		assert.NoError(t, err)

		writer.Header().Set("Content-Range",
			fmt.Sprintf("bytes %d-%d/%d", offset, len(testImageContent)-1, len(testImageContent)))
		writer.WriteHeader(http.StatusPartialContent)
		writer.Write(testImageContent[offset:])
	}))
	defer server.Close()

	downloadDir := t.TempDir()
	// a previous transfer left the first half of the image behind
	partialPath := filepath.Join(downloadDir, "test-firmware-2.0.0.img")
	require.NoError(t, os.WriteFile(partialPath, testImageContent[:20], 0644))

	downloader := NewHTTPDownloader(downloadDir, 0, time.Millisecond)

	imagePath, err := downloader.Download(context.Background(), testImageRequest(t, server.URL), nil)
	require.NoError(t, err)

	content, err := os.ReadFile(imagePath)
	require.NoError(t, err)
	assert.Equal(t, testImageContent, content)
}

func TestDownloadRangeNotSatisfiable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("Range") != "" {
			writer.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
			return
		}
		writer.Write(testImageContent)
	}))
	defer server.Close()

	downloadDir := t.TempDir()
	// a crashed session left a full-size stale image behind
	stalePath := filepath.Join(downloadDir, "test-firmware-2.0.0.img")
	require.NoError(t, os.WriteFile(stalePath, []byte(strings.Repeat("x", len(testImageContent))), 0644))

	downloader := NewHTTPDownloader(downloadDir, 0, time.Millisecond)

	imagePath, err := downloader.Download(context.Background(), testImageRequest(t, server.URL), nil)
	require.NoError(t, err)

	content, err := os.ReadFile(imagePath)
	require.NoError(t, err)
	assert.Equal(t, testImageContent, content)
}

func TestDownloadRangeIgnored(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		// full content regardless of the requested range
		writer.Write(testImageContent)
	}))
	defer server.Close()

	downloadDir := t.TempDir()
	partialPath := filepath.Join(downloadDir, "test-firmware-2.0.0.img")
	require.NoError(t, os.WriteFile(partialPath, testImageContent[:20], 0644))

	downloader := NewHTTPDownloader(downloadDir, 0, time.Millisecond)

	imagePath, err := downloader.Download(context.Background(), testImageRequest(t, server.URL), nil)
	require.NoError(t, err)

	content, err := os.ReadFile(imagePath)
	require.NoError(t, err)
	assert.Equal(t, testImageContent, content)
}

func TestDownloadContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write(testImageContent)
	}))
	defer server.Close()

	downloader := NewHTTPDownloader(t.TempDir(), 3, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := downloader.Download(ctx, testImageRequest(t, server.URL), nil)
	assert.Error(t, err)
}
