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
	"encoding/json"
	"errors"

	"github.com/minio/quickstart/pkg/bucketname"
	. "gopkg.in/check.v1"
)

func (s *TestSuite) TestCreateNamedBucket(c *C) {
	clnt := newFakeClient()
	c.Assert(s.run(clnt, "create", "mybucket"), Equals, 0)
	_, ok := clnt.buckets["mybucket"]
	c.Assert(ok, Equals, true)
}

func (s *TestSuite) TestCreateGeneratedBucket(c *C) {
	clnt := newFakeClient()
	c.Assert(s.run(clnt, "create"), Equals, 0)
	c.Assert(clnt.buckets, HasLen, 1)
	for name := range clnt.buckets {
		c.Assert(bucketname.IsLegal(name), Equals, true, Commentf("generated %q", name))
	}
}

func (s *TestSuite) TestCreateLocation(c *C) {
	clnt := newFakeClient()
	c.Assert(s.run(clnt, "create", "--location", "EU", "eubucket"), Equals, 0)
	c.Assert(clnt.locations["eubucket"], Equals, "EU")
}

func (s *TestSuite) TestCreateServiceError(c *C) {
	clnt := newFakeClient("taken")
	c.Assert(s.run(clnt, "create", "taken"), Equals, 409)
}

func (s *TestSuite) TestCreateUsage(c *C) {
	c.Assert(s.run(newFakeClient(), "create", "one", "two"), Equals, globalUsageExitStatus)
}

func (s *TestSuite) TestCreateEntropyFailure(c *C) {
	errEntropy := errors.New("entropy source unavailable")
	saved := generateBucketName
	generateBucketName = func() (string, error) { return "", errEntropy }
	defer func() { generateBucketName = saved }()

	clnt := newFakeClient()
	c.Assert(s.run(clnt, "create"), Equals, globalErrorExitStatus)
	c.Assert(clnt.buckets, HasLen, 0)

	_, err := resolveBucketName(nil)
	c.Assert(err, NotNil)
	c.Assert(errors.Is(err.ToGoError(), errEntropy), Equals, true)
}

func (s *TestSuite) TestCreateEmptyName(c *C) {
	clnt := newFakeClient()
	c.Assert(s.run(clnt, "create", ""), Equals, globalErrorExitStatus)
	c.Assert(clnt.buckets, HasLen, 0)

	_, err := resolveBucketName([]string{""})
	c.Assert(err, NotNil)
	_, ok := err.ToGoError().(BucketNameEmpty)
	c.Assert(ok, Equals, true)
}

func (s *TestSuite) TestResolveBucketName(c *C) {
	name, err := resolveBucketName([]string{"given"})
	c.Assert(err, IsNil)
	c.Assert(name, Equals, "given")

	name, err = resolveBucketName(nil)
	c.Assert(err, IsNil)
	c.Assert(name, Matches, "^[a-fh-z]{12}$")
}

func (s *TestSuite) TestCreateMessage(c *C) {
	msg := createMessage{Status: "success", Bucket: "mybucket"}
	c.Assert(msg.String(), Equals, "Created mybucket.")

	var decoded createMessage
	c.Assert(json.Unmarshal([]byte(msg.JSON()), &decoded), IsNil)
	c.Assert(decoded, DeepEquals, msg)
}
