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

// Package limiter implements throughput upload and download limits via http.RoundTripper
package limiter

import (
	"errors"
	"io"
	"net/http"

	"github.com/juju/ratelimit"
)

var errNoTransport = errors.New("limiter: no transport to limit")

type limiter struct {
	upload    *ratelimit.Bucket
	download  *ratelimit.Bucket
	transport http.RoundTripper // HTTP transport that needs to be intercepted
}

type readCloser struct {
	io.Reader
	io.Closer
}

func limitReadCloser(rc io.ReadCloser, b *ratelimit.Bucket) io.ReadCloser {
	if rc == nil || b == nil {
		return rc
	}
	return &readCloser{Reader: ratelimit.Reader(rc, b), Closer: rc}
}

// RoundTrip throttles the request body on its way out and the
// response body on its way in.
func (l limiter) RoundTrip(req *http.Request) (*http.Response, error) {
	if l.transport == nil {
		return nil, errNoTransport
	}

	if req.Body != nil && l.upload != nil {
		// Clone so the caller's request is left untouched.
		req = req.Clone(req.Context())
		req.Body = limitReadCloser(req.Body, l.upload)
	}

	res, err := l.transport.RoundTrip(req)
	if res != nil {
		res.Body = limitReadCloser(res.Body, l.download)
	}
	return res, err
}

// New returns a ratelimited transport, limits are in bytes per second.
// A zero limit leaves that direction unthrottled.
func New(uploadLimit, downloadLimit uint64, transport http.RoundTripper) http.RoundTripper {
	if uploadLimit == 0 && downloadLimit == 0 {
		return transport
	}

	l := limiter{transport: transport}
	if uploadLimit > 0 {
		l.upload = ratelimit.NewBucketWithRate(float64(uploadLimit), int64(uploadLimit))
	}
	if downloadLimit > 0 {
		l.download = ratelimit.NewBucketWithRate(float64(downloadLimit), int64(downloadLimit))
	}
	return l
}
