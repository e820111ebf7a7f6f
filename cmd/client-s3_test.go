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
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	. "gopkg.in/check.v1"
)

// s3Handler is an http.Handler that serves path style bucket and
// object requests from memory and validates incoming requests.
type s3Handler struct {
	mu      sync.Mutex
	buckets map[string]map[string]int64
}

func newS3Handler() *s3Handler {
	return &s3Handler{buckets: make(map[string]map[string]int64)}
}

type s3ErrorResponse struct {
	XMLName xml.Name `xml:"Error"`
	Code    string
	Message string
}

type s3Bucket struct {
	Name         string
	CreationDate string
}

type s3ListAllMyBucketsResult struct {
	XMLName xml.Name   `xml:"ListAllMyBucketsResult"`
	Buckets []s3Bucket `xml:"Buckets>Bucket"`
}

type s3Contents struct {
	Key          string
	LastModified string
	ETag         string
	Size         int64
	StorageClass string
}

type s3ListBucketResult struct {
	XMLName     xml.Name `xml:"ListBucketResult"`
	Name        string
	Prefix      string
	KeyCount    int
	MaxKeys     int
	IsTruncated bool
	Contents    []s3Contents
}

func (h *s3Handler) writeXML(w http.ResponseWriter, status int, v interface{}) {
	response, e := xml.Marshal(v)
	if e != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Length", strconv.Itoa(len(response)))
	w.WriteHeader(status)
	w.Write(response)
}

func (h *s3Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	if r.Method == http.MethodHead {
		w.WriteHeader(status)
		return
	}
	h.writeXML(w, status, s3ErrorResponse{Code: code, Message: message})
}

func (h *s3Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if r.URL.Path == "/" {
		if r.Method != http.MethodGet {
			h.writeError(w, r, http.StatusMethodNotAllowed, "MethodNotAllowed", "The specified method is not allowed.")
			return
		}
		// Handler for incoming ListBuckets request.
		var names []string
		for name := range h.buckets {
			names = append(names, name)
		}
		sort.Strings(names)
		result := s3ListAllMyBucketsResult{}
		for _, name := range names {
			result.Buckets = append(result.Buckets, s3Bucket{Name: name, CreationDate: "2015-05-20T23:05:09.230Z"})
		}
		h.writeXML(w, http.StatusOK, result)
		return
	}

	bucket, object, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if object == "" {
		h.serveBucket(w, r, bucket)
		return
	}
	h.serveObject(w, r, bucket, object)
}

func (h *s3Handler) serveBucket(w http.ResponseWriter, r *http.Request, bucket string) {
	objects, ok := h.buckets[bucket]
	if r.Method == http.MethodPut {
		// Handler for incoming MakeBucket request.
		if ok {
			h.writeError(w, r, http.StatusConflict, "BucketAlreadyOwnedByYou", "Your previous request to create the named bucket succeeded and you already own it.")
			return
		}
		io.Copy(io.Discard, r.Body)
		h.buckets[bucket] = make(map[string]int64)
		w.WriteHeader(http.StatusOK)
		return
	}
	if !ok {
		h.writeError(w, r, http.StatusNotFound, "NoSuchBucket", "The specified bucket does not exist")
		return
	}

	switch r.Method {
	case http.MethodGet:
		// Handler for get bucket location request.
		if _, ok := r.URL.Query()["location"]; ok {
			response := []byte("<LocationConstraint xmlns=\"http://doc.s3.amazonaws.com/2006-03-01\"></LocationConstraint>")
			w.Header().Set("Content-Length", strconv.Itoa(len(response)))
			w.Write(response)
			return
		}
		// Handler for incoming ListObjects request.
		prefix := r.URL.Query().Get("prefix")
		var keys []string
		for key := range objects {
			if strings.HasPrefix(key, prefix) {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		result := s3ListBucketResult{Name: bucket, Prefix: prefix, KeyCount: len(keys), MaxKeys: 1000}
		for _, key := range keys {
			result.Contents = append(result.Contents, s3Contents{
				Key:          key,
				LastModified: "2015-05-21T18:24:21.097Z",
				ETag:         "\"259d04a13802ae09c7e41be50ccc6baa\"",
				Size:         objects[key],
				StorageClass: "STANDARD",
			})
		}
		h.writeXML(w, http.StatusOK, result)
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		if len(objects) > 0 {
			h.writeError(w, r, http.StatusConflict, "BucketNotEmpty", "The bucket you tried to delete is not empty")
			return
		}
		delete(h.buckets, bucket)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, r, http.StatusMethodNotAllowed, "MethodNotAllowed", "The specified method is not allowed.")
	}
}

func (h *s3Handler) serveObject(w http.ResponseWriter, r *http.Request, bucket, object string) {
	objects, ok := h.buckets[bucket]
	if !ok {
		h.writeError(w, r, http.StatusNotFound, "NoSuchBucket", "The specified bucket does not exist")
		return
	}

	switch r.Method {
	case http.MethodPut:
		// Handler for PUT object request, the body may be aws-chunked.
		length := r.Header.Get("X-Amz-Decoded-Content-Length")
		if length == "" {
			length = r.Header.Get("Content-Length")
		}
		size, e := strconv.ParseInt(length, 10, 64)
		if e != nil {
			h.writeError(w, r, http.StatusBadRequest, "MissingContentLength", "You must provide the Content-Length HTTP header.")
			return
		}
		if _, e = io.Copy(io.Discard, r.Body); e != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		objects[object] = size
		w.Header().Set("ETag", "\"9af2f8218b150c351ad802c6f3d66abe\"")
		w.WriteHeader(http.StatusOK)
	case http.MethodHead:
		// Handler for Stat object request.
		size, ok := objects[object]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		w.Header().Set("ETag", "\"9af2f8218b150c351ad802c6f3d66abe\"")
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(objects, object)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, r, http.StatusMethodNotAllowed, "MethodNotAllowed", "The specified method is not allowed.")
	}
}

func newTestS3Client(c *C, handler http.Handler) (Client, func()) {
	server := httptest.NewServer(handler)
	clnt, err := s3New(&Config{
		Backend:    backendS3,
		Endpoint:   server.URL,
		AccessKey:  "WLGDGYAQYIGI833EV05A",
		SecretKey:  "BYvgJM101sHngl2uzjXS/OBF/aMxAN06JrJ3qJlF",
		Region:     defaultS3Region,
		AppName:    appName,
		AppVersion: Version,
	})
	c.Assert(err, IsNil)
	return clnt, server.Close
}

// Test bucket operations.
func (s *TestSuite) TestS3BucketOperations(c *C) {
	handler := newS3Handler()
	clnt, closer := newTestS3Client(c, handler)
	defer closer()
	ctx := context.Background()

	c.Assert(clnt.MakeBucket(ctx, "beta", ""), IsNil)
	c.Assert(clnt.MakeBucket(ctx, "alpha", ""), IsNil)

	err := clnt.MakeBucket(ctx, "alpha", "")
	c.Assert(err, NotNil)
	c.Assert(serviceExitStatus(err), Equals, http.StatusConflict)

	buckets, err := clnt.ListBuckets(ctx)
	c.Assert(err, IsNil)
	c.Assert(buckets, HasLen, 2)
	c.Assert(buckets[0].Name, Equals, "alpha")
	c.Assert(buckets[1].Name, Equals, "beta")

	c.Assert(clnt.RemoveBucket(ctx, "alpha"), IsNil)
	err = clnt.RemoveBucket(ctx, "alpha")
	c.Assert(serviceExitStatus(err), Equals, http.StatusNotFound)

	c.Assert(clnt.MakeBucket(ctx, "", ""), NotNil)
}

// Test all object operations.
func (s *TestSuite) TestS3ObjectOperations(c *C) {
	handler := newS3Handler()
	clnt, closer := newTestS3Client(c, handler)
	defer closer()
	ctx := context.Background()

	c.Assert(clnt.MakeBucket(ctx, "bucket", ""), IsNil)

	data := "Hello, World"
	progress := &countingReader{}
	n, err := clnt.PutObject(ctx, "bucket", "dir/hello.txt", strings.NewReader(data), int64(len(data)), "text/plain", progress)
	c.Assert(err, IsNil)
	c.Assert(n, Equals, int64(len(data)))
	c.Assert(progress.n, Equals, int64(len(data)))
	c.Assert(handler.buckets["bucket"]["dir/hello.txt"], Equals, int64(len(data)))

	_, err = clnt.PutObject(ctx, "bucket", "other.bin", strings.NewReader("xy"), 2, "application/octet-stream", nil)
	c.Assert(err, IsNil)

	objects, err := clnt.ListObjects(ctx, "bucket", "")
	c.Assert(err, IsNil)
	c.Assert(objects, HasLen, 2)

	objects, err = clnt.ListObjects(ctx, "bucket", "dir/")
	c.Assert(err, IsNil)
	c.Assert(objects, HasLen, 1)
	c.Assert(objects[0].Name, Equals, "dir/hello.txt")
	c.Assert(objects[0].Size, Equals, int64(len(data)))

	err = clnt.RemoveBucket(ctx, "bucket")
	c.Assert(serviceExitStatus(err), Equals, http.StatusConflict)

	c.Assert(clnt.RemoveObject(ctx, "bucket", "dir/hello.txt"), IsNil)
	c.Assert(handler.buckets["bucket"], HasLen, 1)

	_, err = clnt.ListObjects(ctx, "missing", "")
	c.Assert(serviceExitStatus(err), Equals, http.StatusNotFound)

	c.Assert(clnt.RemoveObject(ctx, "bucket", ""), NotNil)
}

func (s *TestSuite) TestS3InvalidEndpoint(c *C) {
	for _, endpoint := range []string{"", "not a url", "http://localhost:9000/bucket"} {
		_, err := s3New(&Config{Backend: backendS3, Endpoint: endpoint, Region: defaultS3Region})
		c.Assert(err, NotNil, Commentf("endpoint %q", endpoint))
	}
}
