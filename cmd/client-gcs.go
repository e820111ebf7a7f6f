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
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/minio/quickstart/pkg/hookreader"
	"github.com/minio/quickstart/pkg/probe"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"
)

// gcsClient - Google Cloud Storage JSON API client.
type gcsClient struct {
	projectID string
	location  string
	service   *storage.Service
}

// gcsHTTPClient returns an http client authorized for full control
// of the project buckets, sending every request through base.
func gcsHTTPClient(ctx context.Context, config *Config, base *http.Client) (*http.Client, *probe.Error) {
	if config.Anonymous {
		return base, nil
	}

	// Token requests go through the same transport as storage requests.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	var (
		creds *google.Credentials
		e     error
	)
	if config.CredentialsFile != "" {
		data, rerr := os.ReadFile(config.CredentialsFile)
		if rerr != nil {
			return nil, probe.NewError(rerr).Trace(config.CredentialsFile)
		}
		creds, e = google.CredentialsFromJSON(ctx, data, storage.DevstorageFullControlScope)
		if e != nil {
			return nil, probe.NewError(e).Trace(config.CredentialsFile)
		}
	} else {
		creds, e = google.FindDefaultCredentials(ctx, storage.DevstorageFullControlScope)
		if e != nil {
			return nil, probe.NewError(e)
		}
	}
	return oauth2.NewClient(ctx, creds.TokenSource), nil
}

// gcsNew returns an initialized gcsClient.
func gcsNew(ctx context.Context, config *Config) (Client, *probe.Error) {
	base := &http.Client{Transport: newTransport(config)}

	httpClient, err := gcsHTTPClient(ctx, config, base)
	if err != nil {
		return nil, err.Trace()
	}

	opts := []option.ClientOption{
		option.WithHTTPClient(httpClient),
		option.WithUserAgent(config.AppName + "/" + config.AppVersion),
	}
	if config.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(gcsEndpoint(config.Endpoint)))
	}

	service, e := storage.NewService(ctx, opts...)
	if e != nil {
		return nil, probe.NewError(e)
	}
	return &gcsClient{projectID: config.ProjectID, location: config.Location, service: service}, nil
}

// gcsEndpoint turns a bare host url into the JSON API base path.
func gcsEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasSuffix(endpoint, "/storage/v1") {
		endpoint += "/storage/v1"
	}
	return endpoint + "/"
}

// parseRFC3339 parses timestamps reported by the JSON API, zero on failure.
func parseRFC3339(value string) time.Time {
	t, e := time.Parse(time.RFC3339, value)
	if e != nil {
		return time.Time{}
	}
	return t
}

// MakeBucket - create a new bucket in the project. An empty location
// falls back to the configured one, then to the service default.
func (c *gcsClient) MakeBucket(ctx context.Context, bucket, location string) *probe.Error {
	if bucket == "" {
		return probe.NewError(BucketNameEmpty{})
	}
	if location == "" {
		location = c.location
	}
	_, e := c.service.Buckets.Insert(c.projectID, &storage.Bucket{
		Name:     bucket,
		Location: location,
	}).Context(ctx).Do()
	if e != nil {
		return probe.NewError(e).Trace(bucket)
	}
	return nil
}

// ListBuckets - list all buckets of the project.
func (c *gcsClient) ListBuckets(ctx context.Context) ([]BucketInfo, *probe.Error) {
	var buckets []BucketInfo
	e := c.service.Buckets.List(c.projectID).Pages(ctx, func(page *storage.Buckets) error {
		for _, b := range page.Items {
			buckets = append(buckets, BucketInfo{
				Name:    b.Name,
				Created: parseRFC3339(b.TimeCreated),
			})
		}
		return nil
	})
	if e != nil {
		return nil, probe.NewError(e).Trace(c.projectID)
	}
	return buckets, nil
}

// RemoveBucket - remove an empty bucket.
func (c *gcsClient) RemoveBucket(ctx context.Context, bucket string) *probe.Error {
	if bucket == "" {
		return probe.NewError(BucketNameEmpty{})
	}
	if e := c.service.Buckets.Delete(bucket).Context(ctx).Do(); e != nil {
		return probe.NewError(e).Trace(bucket)
	}
	return nil
}

// ListObjects - list all objects in bucket whose names begin with prefix.
func (c *gcsClient) ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, *probe.Error) {
	if bucket == "" {
		return nil, probe.NewError(BucketNameEmpty{})
	}
	call := c.service.Objects.List(bucket)
	if prefix != "" {
		call = call.Prefix(prefix)
	}

	var objects []ObjectInfo
	e := call.Pages(ctx, func(page *storage.Objects) error {
		for _, o := range page.Items {
			objects = append(objects, ObjectInfo{
				Name:     o.Name,
				Size:     int64(o.Size),
				Modified: parseRFC3339(o.Updated),
				ETag:     o.Etag,
			})
		}
		return nil
	})
	if e != nil {
		return nil, probe.NewError(e).Trace(bucket, prefix)
	}
	return objects, nil
}

// PutObject - upload reader as object, reporting progress through progress.
func (c *gcsClient) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, contentType string, progress io.Reader) (int64, *probe.Error) {
	if bucket == "" {
		return 0, probe.NewError(BucketNameEmpty{})
	}
	if object == "" {
		return 0, probe.NewError(ObjectNameEmpty{})
	}

	obj, e := c.service.Objects.Insert(bucket, &storage.Object{
		Name:        object,
		ContentType: contentType,
	}).Media(hookreader.NewHook(reader, progress), googleapi.ContentType(contentType)).Context(ctx).Do()
	if e != nil {
		return 0, probe.NewError(e).Trace(bucket, object)
	}
	if obj.Size == 0 && size > 0 {
		return size, nil
	}
	return int64(obj.Size), nil
}

// RemoveObject - remove object from bucket.
func (c *gcsClient) RemoveObject(ctx context.Context, bucket, object string) *probe.Error {
	if bucket == "" {
		return probe.NewError(BucketNameEmpty{})
	}
	if object == "" {
		return probe.NewError(ObjectNameEmpty{})
	}
	if e := c.service.Objects.Delete(bucket, object).Context(ctx).Do(); e != nil {
		return probe.NewError(e).Trace(bucket, object)
	}
	return nil
}
