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
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/minio/cli"
	"github.com/minio/pkg/v3/console"
)

// Print version.
var versionCmd = cli.Command{
	Name:         "version",
	Usage:        "show version info",
	Action:       mainVersion,
	Before:       setGlobalsFromContext,
	OnUsageError: onUsageError,
	Flags:        globalFlags,
	CustomHelpTemplate: `NAME:
  {{.HelpName}} - {{.Usage}}

USAGE:
  {{.HelpName}}{{if .VisibleFlags}} [FLAGS]{{end}}
{{if .VisibleFlags}}
FLAGS:
  {{range .VisibleFlags}}{{.}}
  {{end}}{{end}}
EXAMPLES:
  1. Prints the quickstart version:
     {{.Prompt}} {{.HelpName}}
`,
}

// Structured message depending on the type of console.
type versionMessage struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	ReleaseTag string `json:"releaseTag"`
	CommitID   string `json:"commitID"`
	Runtime    string `json:"runtime"`
}

// Colorized message for console printing.
func (v versionMessage) String() string {
	return console.Colorize("Version", fmt.Sprintf("%s version %s\n", appName, v.Version)) +
		console.Colorize("ReleaseTag", fmt.Sprintf("Release-tag: %s\n", v.ReleaseTag)) +
		console.Colorize("CommitID", fmt.Sprintf("Commit-id: %s\n", v.CommitID)) +
		console.Colorize("Runtime", fmt.Sprintf("Runtime: %s", v.Runtime))
}

// JSON'ified message for scripting.
func (v versionMessage) JSON() string {
	return jsonMessage(v)
}

func mainVersion(ctx *cli.Context) error {
	if ctx.Args().Present() {
		return usageFailure(ctx)
	}

	// Additional command specific theme customization.
	console.SetColor("Version", color.New(color.FgGreen, color.Bold))
	console.SetColor("ReleaseTag", color.New(color.FgGreen))
	console.SetColor("CommitID", color.New(color.FgGreen))
	console.SetColor("Runtime", color.New(color.FgGreen))

	printMsg(versionMessage{
		Status:     "success",
		Version:    Version,
		ReleaseTag: ReleaseTag,
		CommitID:   CommitID,
		Runtime:    fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	})
	return nil
}
