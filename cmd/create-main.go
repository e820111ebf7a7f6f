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
	"github.com/minio/quickstart/pkg/bucketname"
	"github.com/minio/quickstart/pkg/probe"
)

var createFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "location, l",
		Usage: "bucket location or region; defaults to the configured location",
	},
}

// create a bucket.
var createCmd = cli.Command{
	Name:         "create",
	Usage:        "create a bucket, named randomly when no name is given",
	Action:       mainCreate,
	Before:       setGlobalsFromContext,
	OnUsageError: onUsageError,
	Flags:        append(createFlags, globalFlags...),
	CustomHelpTemplate: `NAME:
  {{.HelpName}} - {{.Usage}}

USAGE:
  {{.HelpName}} [FLAGS] [NEW-BUCKET-NAME]
{{if .VisibleFlags}}
FLAGS:
  {{range .VisibleFlags}}{{.}}
  {{end}}{{end}}
EXAMPLES:
  1. Create a bucket with a random twelve letter name.
     {{.Prompt}} {{.HelpName}}

  2. Create the bucket 'mynewbucket'.
     {{.Prompt}} {{.HelpName}} mynewbucket

  3. Create the bucket 'mynewbucket' in the 'EU' multi-region.
     {{.Prompt}} {{.HelpName}} --location=EU mynewbucket
`,
}

// generateBucketName picks a random legal bucket name.
var generateBucketName = bucketname.Generate

// createMessage is container for create bucket success messages.
type createMessage struct {
	Status   string `json:"status"`
	Bucket   string `json:"bucket"`
	Location string `json:"location,omitempty"`
}

// String colorized create bucket message.
func (s createMessage) String() string {
	return console.Colorize("Create", "Created "+s.Bucket+".")
}

// JSON jsonified create bucket message.
func (s createMessage) JSON() string {
	return jsonMessage(s)
}

// resolveBucketName returns the bucket name given on the command line,
// or a generated one when none is given. An explicit empty name is an error.
func resolveBucketName(args []string) (string, *probe.Error) {
	if len(args) > 0 {
		if args[0] == "" {
			return "", probe.NewError(BucketNameEmpty{})
		}
		return args[0], nil
	}
	generated, e := generateBucketName()
	if e != nil {
		return "", errBucketNameGenerate(e).Trace()
	}
	return generated, nil
}

// mainCreate is entry point for create command.
func mainCreate(cliCtx *cli.Context) error {
	if len(cliCtx.Args()) > 1 {
		return usageFailure(cliCtx)
	}

	// Additional command specific theme customization.
	console.SetColor("Create", color.New(color.FgGreen, color.Bold))

	bucket, err := resolveBucketName(cliCtx.Args())
	if err != nil {
		errorIf(err.Trace(), "Unable to create bucket.")
		return exitStatus(globalErrorExitStatus)
	}

	ctx, cancelCreate := context.WithCancel(globalContext)
	defer cancelCreate()

	clnt, err := getClient(ctx)
	fatalIf(err.Trace(), "Unable to initialize the storage client.")

	location := cliCtx.String("location")
	if err = clnt.MakeBucket(ctx, bucket, location); err != nil {
		return serviceFailure(err.Trace(bucket), "Unable to create bucket `%s`.", bucket)
	}

	printMsg(createMessage{
		Status:   "success",
		Bucket:   bucket,
		Location: location,
	})
	return nil
}
