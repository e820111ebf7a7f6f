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

	"github.com/fatih/color"
	"github.com/minio/cli"
	"github.com/minio/pkg/v3/console"
)

// delete a bucket or an object.
var deleteCmd = cli.Command{
	Name:         "delete",
	Usage:        "delete an empty bucket, or an object from a bucket",
	Action:       mainDelete,
	Before:       setGlobalsFromContext,
	OnUsageError: onUsageError,
	Flags:        globalFlags,
	CustomHelpTemplate: `NAME:
  {{.HelpName}} - {{.Usage}}

USAGE:
  {{.HelpName}} [FLAGS] BUCKET-NAME [OBJECT-NAME]
{{if .VisibleFlags}}
FLAGS:
  {{range .VisibleFlags}}{{.}}
  {{end}}{{end}}
EXAMPLES:
  1. Delete the empty bucket 'mybucket'.
     {{.Prompt}} {{.HelpName}} mybucket

  2. Delete the object 'photos/cat.jpg' from the bucket 'mybucket'.
     {{.Prompt}} {{.HelpName}} mybucket photos/cat.jpg
`,
}

// deleteMessage container for delete success messages.
type deleteMessage struct {
	Status string `json:"status"`
	Bucket string `json:"bucket"`
	Key    string `json:"key,omitempty"`
}

// String colorized delete message.
func (d deleteMessage) String() string {
	if d.Key == "" {
		return console.Colorize("Delete", "Deleted "+d.Bucket+".")
	}
	return console.Colorize("Delete", "Deleted "+d.Bucket+"/"+d.Key+".")
}

// JSON jsonified delete message.
func (d deleteMessage) JSON() string {
	return jsonMessage(d)
}

// mainDelete is the entry point for delete command.
func mainDelete(cliCtx *cli.Context) error {
	args := cliCtx.Args()
	if len(args) < 1 || len(args) > 2 {
		return usageFailure(cliCtx)
	}

	// Additional command specific theme customization.
	console.SetColor("Delete", color.New(color.FgGreen, color.Bold))

	ctx, cancelDelete := context.WithCancel(globalContext)
	defer cancelDelete()

	clnt, err := getClient(ctx)
	fatalIf(err.Trace(), "Unable to initialize the storage client.")

	bucket, object := args.Get(0), args.Get(1)
	if len(args) == 1 {
		if err = clnt.RemoveBucket(ctx, bucket); err != nil {
			return serviceFailure(err.Trace(bucket), "Unable to delete bucket `%s`.", bucket)
		}
	} else {
		if err = clnt.RemoveObject(ctx, bucket, object); err != nil {
			return serviceFailure(err.Trace(bucket, object), "Unable to delete `%s/%s`.", bucket, object)
		}
	}

	printMsg(deleteMessage{Status: "success", Bucket: bucket, Key: object})
	return nil
}
