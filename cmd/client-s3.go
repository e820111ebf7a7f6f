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
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/quickstart/pkg/probe"
)

// s3Client construct
type s3Client struct {
	api      *minio.Client
	hostURL  *url.URL
	location string
}

// s3New returns an initialized s3Client structure.
func s3New(config *Config) (Client, *probe.Error) {
	hostURL, e := url.Parse(config.Endpoint)
	if e != nil || hostURL.Host == "" {
		return nil, errInvalidURL(config.Endpoint).Trace(config.Endpoint)
	}
	if hostURL.Path != "" && hostURL.Path != "/" {
		return nil, errInvalidURL(config.Endpoint).Trace(config.Endpoint)
	}

	options := minio.Options{
		Creds:     credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure:    hostURL.Scheme == "https",
		Region:    config.Region,
		Transport: newTransport(config),
	}

	api, e := minio.New(hostURL.Host, &options)
	if e != nil {
		return nil, probe.NewError(e)
	}

	// Set app info.
	api.SetAppInfo(config.AppName, config.AppVersion)

	return &s3Client{api: api, hostURL: hostURL, location: override(config.Location, config.Region)}, nil
}

// MakeBucket - make a new bucket, location defaults to the configured region.
func (c *s3Client) MakeBucket(ctx context.Context, bucket, location string) *probe.Error {
	if bucket == "" {
		return probe.NewError(BucketNameEmpty{})
	}
	if location == "" {
		location = c.location
	}
	if e := c.api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: location}); e != nil {
		return probe.NewError(e).Trace(bucket, location)
	}
	return nil
}

// ListBuckets - list all buckets owned by the credentials.
func (c *s3Client) ListBuckets(ctx context.Context) ([]BucketInfo, *probe.Error) {
	buckets, e := c.api.ListBuckets(ctx)
	if e != nil {
		return nil, probe.NewError(e).Trace(c.hostURL.String())
	}
	infos := make([]BucketInfo, 0, len(buckets))
	for _, b := range buckets {
		infos = append(infos, BucketInfo{Name: b.Name, Created: b.CreationDate})
	}
	return infos, nil
}

// RemoveBucket - remove an empty bucket.
func (c *s3Client) RemoveBucket(ctx context.Context, bucket string) *probe.Error {
	if bucket == "" {
		return probe.NewError(BucketNameEmpty{})
	}
	if e := c.api.RemoveBucket(ctx, bucket); e != nil {
		return probe.NewError(e).Trace(bucket)
	}
	return nil
}

// ListObjects - list all objects in bucket whose names begin with prefix.
func (c *s3Client) ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, *probe.Error) {
	if bucket == "" {
		return nil, probe.NewError(BucketNameEmpty{})
	}

	// Stop the listing goroutine when returning early on error.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var objects []ObjectInfo
	for object := range c.api.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, probe.NewError(object.Err).Trace(bucket, prefix)
		}
		objects = append(objects, ObjectInfo{
			Name:     object.Key,
			Size:     object.Size,
			Modified: object.LastModified,
			ETag:     object.ETag,
		})
	}
	return objects, nil
}

// PutObject - upload an object, progress receives every byte sent.
func (c *s3Client) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, contentType string, progress io.Reader) (int64, *probe.Error) {
	if bucket == "" {
		return 0, probe.NewError(BucketNameEmpty{})
	}
	if object == "" {
		return 0, probe.NewError(ObjectNameEmpty{})
	}

	info, e := c.api.PutObject(ctx, bucket, object, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
		Progress:    progress,
	})
	if e != nil {
		return 0, probe.NewError(e).Trace(bucket, object)
	}
	return info.Size, nil
}

// RemoveObject - remove an object from bucket.
func (c *s3Client) RemoveObject(ctx context.Context, bucket, object string) *probe.Error {
	if bucket == "" {
		return probe.NewError(BucketNameEmpty{})
	}
	if object == "" {
		return probe.NewError(ObjectNameEmpty{})
	}
	if e := c.api.RemoveObject(ctx, bucket, object, minio.RemoveObjectOptions{}); e != nil {
		return probe.NewError(e).Trace(bucket, object)
	}
	return nil
}
