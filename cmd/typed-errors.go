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
	"errors"
	"fmt"

	"github.com/minio/quickstart/pkg/probe"
)

type invalidArgumentErr error

var errInvalidArgument = func() *probe.Error {
	msg := "Invalid arguments provided, please refer " + "`quickstart <command> -h` for relevant documentation."
	return probe.NewError(invalidArgumentErr(errors.New(msg))).Untrace()
}

type invalidBackendErr error

var errInvalidBackend = func(backend string) *probe.Error {
	msg := "Unrecognized storage backend `" + backend + "`. Valid options are `[" + backendGCS + ", " + backendS3 + "]`."
	return probe.NewError(invalidBackendErr(errors.New(msg))).Untrace()
}

type invalidURLErr error

var errInvalidURL = func(URL string) *probe.Error {
	msg := "URL `" + URL + "` for the storage endpoint should be of the form scheme://host[:port]/ without resource component."
	return probe.NewError(invalidURLErr(errors.New(msg)))
}

type projectIDEmptyErr error

var errProjectIDEmpty = func() *probe.Error {
	msg := "Project id cannot be empty, set `projectId` in config.json or " + envProjectID + "."
	return probe.NewError(projectIDEmptyErr(errors.New(msg))).Untrace()
}

type bucketNameGenerateErr error

var errBucketNameGenerate = func(e error) *probe.Error {
	return probe.NewError(bucketNameGenerateErr(fmt.Errorf("Unable to generate a bucket name: %w", e)))
}
