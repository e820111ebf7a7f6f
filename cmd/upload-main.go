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
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/minio/cli"
	"github.com/minio/pkg/v3/console"
	"github.com/minio/pkg/v3/mimedb"
	"github.com/minio/quickstart/pkg/probe"
)

var uploadFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "content-type",
		Usage: "content type of the object; detected from the file extension by default",
	},
}

// upload a local file.
var uploadCmd = cli.Command{
	Name:         "upload",
	Usage:        "upload a local file, named after its base name",
	Action:       mainUpload,
	Before:       setGlobalsFromContext,
	OnUsageError: onUsageError,
	Flags:        append(uploadFlags, globalFlags...),
	CustomHelpTemplate: `NAME:
  {{.HelpName}} - {{.Usage}}

USAGE:
  {{.HelpName}} [FLAGS] BUCKET-NAME LOCAL-FILE-PATH
{{if .VisibleFlags}}
FLAGS:
  {{range .VisibleFlags}}{{.}}
  {{end}}{{end}}
EXAMPLES:
  1. Upload 'report.pdf' as the object 'report.pdf' of the bucket 'mybucket'.
     {{.Prompt}} {{.HelpName}} mybucket /home/user/report.pdf

  2. Upload a file without extension as plain text.
     {{.Prompt}} {{.HelpName}} --content-type=text/plain mybucket ./NOTES
`,
}

// uploadMessage container for upload success messages.
type uploadMessage struct {
	Status      string `json:"status"`
	Source      string `json:"source"`
	Bucket      string `json:"bucket"`
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// String colorized upload message.
func (u uploadMessage) String() string {
	return console.Colorize("Upload", "Uploaded "+u.Source+" to "+u.Bucket+"/"+u.Key+
		" ("+humanize.IBytes(uint64(u.Size))+").")
}

// JSON jsonified upload message.
func (u uploadMessage) JSON() string {
	return jsonMessage(u)
}

// uploadObjectName returns the object name a local path is uploaded as.
func uploadObjectName(path string) string {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// uploadContentType returns the user supplied content type, else the
// one registered for the file extension.
func uploadContentType(path, contentType string) string {
	if contentType != "" {
		return contentType
	}
	return mimedb.TypeByExtension(filepath.Ext(path))
}

// openUploadSource opens path for reading, verifying it is a regular file.
func openUploadSource(path string) (*os.File, int64, *probe.Error) {
	f, e := os.Open(path)
	if e != nil {
		switch {
		case errors.Is(e, fs.ErrNotExist):
			return nil, 0, probe.NewError(PathNotFound{Path: path})
		case errors.Is(e, fs.ErrPermission):
			return nil, 0, probe.NewError(PathInsufficientPermission{Path: path})
		}
		return nil, 0, probe.NewError(e)
	}
	st, e := f.Stat()
	if e != nil {
		f.Close()
		return nil, 0, probe.NewError(e)
	}
	if !st.Mode().IsRegular() {
		f.Close()
		return nil, 0, probe.NewError(PathIsNotRegular{Path: path})
	}
	return f, st.Size(), nil
}

// uploadFile sends path to bucket, drawing a progress bar when showProgress is set.
func uploadFile(ctx context.Context, clnt Client, bucket, path, contentType string, showProgress bool) (uploadMessage, *probe.Error) {
	msg := uploadMessage{
		Status:      "success",
		Source:      path,
		Bucket:      bucket,
		Key:         uploadObjectName(path),
		ContentType: uploadContentType(path, contentType),
	}

	f, size, err := openUploadSource(path)
	if err != nil {
		return msg, err.Trace(path)
	}
	defer f.Close()

	var progress io.Reader
	if showProgress {
		bar := newUploadBar(msg.Key, size)
		defer bar.Finish()
		progress = bar
	}

	n, err := clnt.PutObject(ctx, bucket, msg.Key, f, size, msg.ContentType, progress)
	if err != nil {
		return msg, err.Trace(bucket, msg.Key)
	}
	msg.Size = n
	return msg, nil
}

// mainUpload is the entry point for upload command.
func mainUpload(cliCtx *cli.Context) error {
	args := cliCtx.Args()
	if len(args) != 2 {
		return usageFailure(cliCtx)
	}

	// Additional command specific theme customization.
	console.SetColor("Upload", color.New(color.FgGreen, color.Bold))

	ctx, cancelUpload := context.WithCancel(globalContext)
	defer cancelUpload()

	clnt, err := getClient(ctx)
	fatalIf(err.Trace(), "Unable to initialize the storage client.")

	bucket, path := args.Get(0), args.Get(1)
	showProgress := !globalQuiet && !globalJSON

	msg, err := uploadFile(ctx, clnt, bucket, path, cliCtx.String("content-type"), showProgress)
	if err != nil {
		return serviceFailure(err.Trace(path), "Unable to upload `%s` to `%s`.", path, bucket)
	}

	printMsg(msg)
	return nil
}
