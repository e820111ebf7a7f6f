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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	. "gopkg.in/check.v1"
)

// gcsObject is an object stored by gcsHandler.
type gcsObject struct {
	data        []byte
	contentType string
}

// gcsHandler is an http.Handler emulating the bucket and object
// resources of the Cloud Storage JSON API.
type gcsHandler struct {
	mu        sync.Mutex
	project   string
	buckets   map[string]map[string]gcsObject
	locations map[string]string
}

func newGCSHandler(project string) *gcsHandler {
	return &gcsHandler{
		project:   project,
		buckets:   make(map[string]map[string]gcsObject),
		locations: make(map[string]string),
	}
}

func (h *gcsHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *gcsHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    status,
			"message": message,
			"errors":  []map[string]string{{"message": message, "reason": http.StatusText(status)}},
		},
	})
}

// resource splits the request path below /storage/v1/ into unescaped segments.
func (h *gcsHandler) resource(r *http.Request) []string {
	p := r.URL.EscapedPath()
	idx := strings.Index(p, "/storage/v1/")
	if idx < 0 {
		return nil
	}
	var segments []string
	for _, s := range strings.Split(strings.Trim(p[idx+len("/storage/v1/"):], "/"), "/") {
		u, e := url.PathUnescape(s)
		if e != nil {
			return nil
		}
		segments = append(segments, u)
	}
	return segments
}

func (h *gcsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	segments := h.resource(r)
	switch {
	case len(segments) == 1 && segments[0] == "b":
		h.serveBuckets(w, r)
	case len(segments) == 2 && segments[0] == "b":
		h.serveBucket(w, r, segments[1])
	case len(segments) == 3 && segments[0] == "b" && segments[2] == "o":
		h.serveObjects(w, r, segments[1])
	case len(segments) >= 4 && segments[0] == "b" && segments[2] == "o":
		h.serveObject(w, r, segments[1], strings.Join(segments[3:], "/"))
	default:
		h.writeError(w, http.StatusNotFound, "Not Found")
	}
}

func (h *gcsHandler) serveBuckets(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("project") != h.project {
		h.writeError(w, http.StatusBadRequest, "Invalid project")
		return
	}
	switch r.Method {
	case http.MethodPost:
		var bucket struct {
			Name     string `json:"name"`
			Location string `json:"location"`
		}
		if e := json.NewDecoder(r.Body).Decode(&bucket); e != nil {
			h.writeError(w, http.StatusBadRequest, e.Error())
			return
		}
		if _, ok := h.buckets[bucket.Name]; ok {
			h.writeError(w, http.StatusConflict, "You already own this bucket. Please select another name.")
			return
		}
		h.buckets[bucket.Name] = make(map[string]gcsObject)
		h.locations[bucket.Name] = bucket.Location
		h.writeJSON(w, http.StatusOK, map[string]string{
			"kind":        "storage#bucket",
			"name":        bucket.Name,
			"location":    bucket.Location,
			"timeCreated": "2024-05-20T23:05:09.230Z",
		})
	case http.MethodGet:
		var names []string
		for name := range h.buckets {
			names = append(names, name)
		}
		sort.Strings(names)
		items := []map[string]string{}
		for _, name := range names {
			items = append(items, map[string]string{"name": name, "timeCreated": "2024-05-20T23:05:09.230Z"})
		}
		h.writeJSON(w, http.StatusOK, map[string]interface{}{"kind": "storage#buckets", "items": items})
	default:
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *gcsHandler) serveBucket(w http.ResponseWriter, r *http.Request, bucket string) {
	objects, ok := h.buckets[bucket]
	if !ok {
		h.writeError(w, http.StatusNotFound, "The specified bucket does not exist.")
		return
	}
	if r.Method != http.MethodDelete {
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if len(objects) > 0 {
		h.writeError(w, http.StatusConflict, "The bucket you tried to delete is not empty.")
		return
	}
	delete(h.buckets, bucket)
	w.WriteHeader(http.StatusNoContent)
}

func (h *gcsHandler) serveObjects(w http.ResponseWriter, r *http.Request, bucket string) {
	objects, ok := h.buckets[bucket]
	if !ok {
		h.writeError(w, http.StatusNotFound, "The specified bucket does not exist.")
		return
	}
	switch r.Method {
	case http.MethodGet:
		prefix := r.URL.Query().Get("prefix")
		var names []string
		for name := range objects {
			if strings.HasPrefix(name, prefix) {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		items := []map[string]string{}
		for _, name := range names {
			items = append(items, map[string]string{
				"name":    name,
				"size":    strconv.Itoa(len(objects[name].data)),
				"updated": "2024-05-21T18:24:21.097Z",
				"etag":    "CJDG2Pz6nNUCEAE=",
			})
		}
		h.writeJSON(w, http.StatusOK, map[string]interface{}{"kind": "storage#objects", "items": items})
	case http.MethodPost:
		name, object, e := h.parseUpload(r)
		if e != nil {
			h.writeError(w, http.StatusBadRequest, e.Error())
			return
		}
		objects[name] = object
		h.writeJSON(w, http.StatusOK, map[string]string{
			"kind":        "storage#object",
			"name":        name,
			"bucket":      bucket,
			"size":        strconv.Itoa(len(object.data)),
			"contentType": object.contentType,
		})
	default:
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// parseUpload reads a multipart/related upload: object metadata then media.
func (h *gcsHandler) parseUpload(r *http.Request) (string, gcsObject, error) {
	_, params, e := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if e != nil {
		return "", gcsObject{}, e
	}
	mr := multipart.NewReader(r.Body, params["boundary"])

	metaPart, e := mr.NextPart()
	if e != nil {
		return "", gcsObject{}, e
	}
	var meta struct {
		Name        string `json:"name"`
		ContentType string `json:"contentType"`
	}
	if e = json.NewDecoder(metaPart).Decode(&meta); e != nil {
		return "", gcsObject{}, e
	}

	mediaPart, e := mr.NextPart()
	if e != nil {
		return "", gcsObject{}, e
	}
	var buf bytes.Buffer
	if _, e = io.Copy(&buf, mediaPart); e != nil {
		return "", gcsObject{}, e
	}
	return meta.Name, gcsObject{data: buf.Bytes(), contentType: mediaPart.Header.Get("Content-Type")}, nil
}

func (h *gcsHandler) serveObject(w http.ResponseWriter, r *http.Request, bucket, object string) {
	objects, ok := h.buckets[bucket]
	if !ok {
		h.writeError(w, http.StatusNotFound, "The specified bucket does not exist.")
		return
	}
	if _, ok := objects[object]; !ok {
		h.writeError(w, http.StatusNotFound, "No such object: "+bucket+"/"+object)
		return
	}
	if r.Method != http.MethodDelete {
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	delete(objects, object)
	w.WriteHeader(http.StatusNoContent)
}

func newTestGCSClient(c *C, handler *gcsHandler) (Client, func()) {
	server := httptest.NewServer(handler)
	clnt, err := gcsNew(context.Background(), &Config{
		Backend:    backendGCS,
		ProjectID:  handler.project,
		Endpoint:   server.URL,
		Anonymous:  true,
		AppName:    appName,
		AppVersion: Version,
	})
	c.Assert(err, IsNil)
	return clnt, server.Close
}

// Test bucket operations.
func (s *TestSuite) TestGCSBucketOperations(c *C) {
	handler := newGCSHandler("my-project")
	clnt, closer := newTestGCSClient(c, handler)
	defer closer()
	ctx := context.Background()

	c.Assert(clnt.MakeBucket(ctx, "beta", "EU"), IsNil)
	c.Assert(clnt.MakeBucket(ctx, "alpha", ""), IsNil)
	c.Assert(handler.locations["beta"], Equals, "EU")

	err := clnt.MakeBucket(ctx, "alpha", "")
	c.Assert(err, NotNil)
	c.Assert(serviceExitStatus(err), Equals, http.StatusConflict)

	buckets, err := clnt.ListBuckets(ctx)
	c.Assert(err, IsNil)
	c.Assert(buckets, HasLen, 2)
	c.Assert(buckets[0].Name, Equals, "alpha")
	c.Assert(buckets[1].Name, Equals, "beta")
	c.Assert(buckets[0].Created.IsZero(), Equals, false)

	c.Assert(clnt.RemoveBucket(ctx, "alpha"), IsNil)
	err = clnt.RemoveBucket(ctx, "alpha")
	c.Assert(serviceExitStatus(err), Equals, http.StatusNotFound)

	c.Assert(clnt.MakeBucket(ctx, "", ""), NotNil)
}

// Test all object operations.
func (s *TestSuite) TestGCSObjectOperations(c *C) {
	handler := newGCSHandler("my-project")
	clnt, closer := newTestGCSClient(c, handler)
	defer closer()
	ctx := context.Background()

	c.Assert(clnt.MakeBucket(ctx, "bucket", ""), IsNil)

	data := []byte("Hello, World")
	progress := &countingReader{}
	n, err := clnt.PutObject(ctx, "bucket", "dir/hello.txt", bytes.NewReader(data), int64(len(data)), "text/plain", progress)
	c.Assert(err, IsNil)
	c.Assert(n, Equals, int64(len(data)))
	c.Assert(progress.n, Equals, int64(len(data)))
	c.Assert(handler.buckets["bucket"]["dir/hello.txt"].data, DeepEquals, data)
	c.Assert(handler.buckets["bucket"]["dir/hello.txt"].contentType, Equals, "text/plain")

	n, err = clnt.PutObject(ctx, "bucket", "other.bin", bytes.NewReader([]byte{1, 2}), 2, "application/octet-stream", nil)
	c.Assert(err, IsNil)
	c.Assert(n, Equals, int64(2))

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
	err = clnt.RemoveObject(ctx, "bucket", "dir/hello.txt")
	c.Assert(serviceExitStatus(err), Equals, http.StatusNotFound)

	_, err = clnt.ListObjects(ctx, "missing", "")
	c.Assert(serviceExitStatus(err), Equals, http.StatusNotFound)

	_, err = clnt.PutObject(ctx, "bucket", "", bytes.NewReader(data), int64(len(data)), "text/plain", nil)
	c.Assert(err, NotNil)
	_, ok := err.ToGoError().(ObjectNameEmpty)
	c.Assert(ok, Equals, true)
}

func (s *TestSuite) TestGCSEndpoint(c *C) {
	c.Assert(gcsEndpoint("http://localhost:4443"), Equals, "http://localhost:4443/storage/v1/")
	c.Assert(gcsEndpoint("http://localhost:4443/"), Equals, "http://localhost:4443/storage/v1/")
	c.Assert(gcsEndpoint("https://storage.googleapis.com/storage/v1/"), Equals, "https://storage.googleapis.com/storage/v1/")
}

// countingReader counts the bytes reported as progress.
type countingReader struct {
	n int64
}

func (r *countingReader) Read(b []byte) (int, error) {
	r.n += int64(len(b))
	return len(b), nil
}
