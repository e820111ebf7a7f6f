// Copyright (c) 2015-2024 MinIO, Inc.
//
// This file is part of MinIO Object Storage stack
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
package cmd

import (
	"context"
	"io"
	"time"

	"github.com/minio/quickstart/pkg/probe"
)

// Client - storage operations the commands drive. Each method is a
// single request to the storage service.
type Client interface {
	// Bucket operations
	MakeBucket(ctx context.Context, bucket, location string) *probe.Error
	ListBuckets(ctx context.Context) ([]BucketInfo, *probe.Error)
	RemoveBucket(ctx context.Context, bucket string) *probe.Error

	// Object operations
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, *probe.Error)
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, contentType string, progress io.Reader) (int64, *probe.Error)
	RemoveObject(ctx context.Context, bucket, object string) *probe.Error
}

// BucketInfo - a bucket as described by a listing.
type BucketInfo struct {
	Name    string    `json:"name"`
	Created time.Time `json:"created,omitempty"`
}

// ObjectInfo - an object as described by a listing.
type ObjectInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"lastModified,omitempty"`
	ETag     string    `json:"etag,omitempty"`
}

// Config - resolved storage backend configuration.
type Config struct {
	Backend   string
	ProjectID string
	Location  string
	Endpoint  string

	// gcs credentials
	CredentialsFile string
	Anonymous       bool

	// s3 credentials
	AccessKey string
	SecretKey string
	Region    string

	AppName       string
	AppVersion    string
	Debug         bool
	Insecure      bool
	UploadLimit   uint64
	DownloadLimit uint64
}

// newClient returns the storage client for the configured backend.
// Tests replace it to run commands against an in-memory store.
var newClient = func(ctx context.Context, config *Config) (Client, *probe.Error) {
	switch config.Backend {
	case backendGCS:
		return gcsNew(ctx, config)
	case backendS3:
		return s3New(config)
	default:
		return nil, errInvalidBackend(config.Backend).Trace(config.Backend)
	}
}

// getClient resolves the storage config and connects to the backend.
func getClient(ctx context.Context) (Client, *probe.Error) {
	config, err := getStorageConfig()
	if err != nil {
		return nil, err.Trace()
	}
	return newClient(ctx, config)
}
