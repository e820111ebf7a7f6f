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
	"time"

	"github.com/fatih/color"
	"github.com/minio/cli"
	"github.com/minio/pkg/v3/console"
)

// list buckets or objects.
var listCmd = cli.Command{
	Name:         "list",
	Usage:        "list buckets of the project, or objects of a bucket",
	Action:       mainList,
	Before:       setGlobalsFromContext,
	OnUsageError: onUsageError,
	Flags:        globalFlags,
	CustomHelpTemplate: `NAME:
  {{.HelpName}} - {{.Usage}}

USAGE:
  {{.HelpName}} [FLAGS] [BUCKET-NAME [PREFIX]]
{{if .VisibleFlags}}
FLAGS:
  {{range .VisibleFlags}}{{.}}
  {{end}}{{end}}
EXAMPLES:
  1. List buckets of the configured project.
     {{.Prompt}} {{.HelpName}}

  2. List all objects of the bucket 'mybucket'.
     {{.Prompt}} {{.HelpName}} mybucket

  3. List objects of the bucket 'mybucket' whose names begin with 'photos/'.
     {{.Prompt}} {{.HelpName}} mybucket photos/
`,
}

// bucketMessage container for a listed bucket.
type bucketMessage struct {
	Status  string    `json:"status"`
	Bucket  string    `json:"bucket"`
	Created time.Time `json:"created,omitempty"`
}

// String colorized bucket name.
func (b bucketMessage) String() string {
	return console.Colorize("Bucket", b.Bucket)
}

// JSON jsonified bucket message.
func (b bucketMessage) JSON() string {
	return jsonMessage(b)
}

// objectMessage container for a listed object.
type objectMessage struct {
	Status       string    `json:"status"`
	Bucket       string    `json:"bucket"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified,omitempty"`
	ETag         string    `json:"etag,omitempty"`
}

// String colorized object name.
func (o objectMessage) String() string {
	return console.Colorize("Object", o.Key)
}

// JSON jsonified object message.
func (o objectMessage) JSON() string {
	return jsonMessage(o)
}

// listBuckets prints every bucket of the project.
func listBuckets(ctx context.Context, clnt Client) error {
	buckets, err := clnt.ListBuckets(ctx)
	if err != nil {
		return serviceFailure(err.Trace(), "Unable to list buckets.")
	}
	for _, b := range buckets {
		printMsg(bucketMessage{Status: "success", Bucket: b.Name, Created: b.Created})
	}
	return nil
}

// listObjects prints every object of bucket whose name begins with prefix.
func listObjects(ctx context.Context, clnt Client, bucket, prefix string) error {
	objects, err := clnt.ListObjects(ctx, bucket, prefix)
	if err != nil {
		return serviceFailure(err.Trace(bucket, prefix), "Unable to list objects of `%s`.", bucket)
	}
	for _, o := range objects {
		printMsg(objectMessage{
			Status:       "success",
			Bucket:       bucket,
			Key:          o.Name,
			Size:         o.Size,
			LastModified: o.Modified,
			ETag:         o.ETag,
		})
	}
	return nil
}

// mainList is the entry point for list command.
func mainList(cliCtx *cli.Context) error {
	args := cliCtx.Args()
	if len(args) > 2 {
		return usageFailure(cliCtx)
	}

	// Additional command specific theme customization.
	console.SetColor("Bucket", color.New(color.FgBlue, color.Bold))
	console.SetColor("Object", color.New(color.Bold))

	ctx, cancelList := context.WithCancel(globalContext)
	defer cancelList()

	clnt, err := getClient(ctx)
	fatalIf(err.Trace(), "Unable to initialize the storage client.")

	if len(args) == 0 {
		return listBuckets(ctx, clnt)
	}
	// The prefix is the argument following the bucket name.
	return listObjects(ctx, clnt, args.Get(0), args.Get(1))
}
