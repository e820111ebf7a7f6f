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
	"net/http"
	"net/http/httputil"
	"regexp"
	"strings"

	"github.com/minio/pkg/v3/console"
	"github.com/minio/quickstart/pkg/httptracer"
)

var (
	// Authorization: AWS4-HMAC-SHA256 Credential=<access-key-id>/<date>/<aws-region>/<aws-service>/aws4_request, SignedHeaders=..., Signature=<256-bit signature>
	regCred = regexp.MustCompile("Credential=([A-Za-z0-9]+)/")
	regSign = regexp.MustCompile("Signature=([0-9a-f]+)")
	// Authorization: Bearer <oauth2 access token>
	regBearer = regexp.MustCompile("(?i)^Bearer\\s+.+$")
)

// redactAuthorization hides credentials carried by an Authorization header.
func redactAuthorization(auth string) string {
	if regBearer.MatchString(auth) {
		return "Bearer **REDACTED**"
	}
	auth = regCred.ReplaceAllString(auth, "Credential=**REDACTED**/")
	return regSign.ReplaceAllString(auth, "Signature=**REDACTED**")
}

// traceRedacted - tracing structure printing requests with credentials hidden.
type traceRedacted struct{}

// newTraceRedacted - initialize Trace structure
func newTraceRedacted() httptracer.HTTPTracer {
	return traceRedacted{}
}

// Request - Trace HTTP Request
func (t traceRedacted) Request(req *http.Request) (err error) {
	origAuth := req.Header.Get("Authorization")

	printTrace := func() error {
		reqTrace, rerr := httputil.DumpRequestOut(req, false) // Only display header
		if rerr == nil {
			console.Debug(string(reqTrace))
		}
		return rerr
	}

	if strings.TrimSpace(origAuth) == "" {
		return printTrace()
	}

	// Set a temporary redacted auth
	req.Header.Set("Authorization", redactAuthorization(origAuth))
	err = printTrace()

	// Undo
	req.Header.Set("Authorization", origAuth)
	return err
}

// Response - Trace HTTP Response
func (t traceRedacted) Response(resp *http.Response) (err error) {
	var respTrace []byte
	// For errors we make sure to dump response body as well.
	if resp.StatusCode != http.StatusOK &&
		resp.StatusCode != http.StatusPartialContent &&
		resp.StatusCode != http.StatusNoContent {
		respTrace, err = httputil.DumpResponse(resp, true)
	} else {
		respTrace, err = httputil.DumpResponse(resp, false)
	}
	if err == nil {
		console.Debug(string(respTrace))
	}

	if globalInsecure && resp.TLS != nil {
		dumpTLSCertificates(resp.TLS)
	}

	return err
}
