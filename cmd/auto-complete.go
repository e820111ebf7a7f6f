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
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minio/cli"
	"github.com/posener/complete"
)

// fsComplete knows how to complete local file names.
type fsComplete struct{}

func (fs fsComplete) Predict(a complete.Args) []string {
	return complete.PredictFiles("*").Predict(a)
}

// bucketComplete completes bucket names of the configured project.
type bucketComplete struct{}

func (b bucketComplete) Predict(a complete.Args) (prediction []string) {
	defer func() {
		sort.Strings(prediction)
	}()

	// The bucket is always the first argument.
	if len(a.Completed) > 0 {
		return nil
	}

	clnt, err := getClient(globalContext)
	if err != nil {
		return nil
	}
	buckets, err := clnt.ListBuckets(globalContext)
	if err != nil {
		return nil
	}
	for _, bucket := range buckets {
		if strings.HasPrefix(bucket.Name, a.Last) {
			prediction = append(prediction, bucket.Name)
		}
	}
	return prediction
}

var (
	fsCompleter     = fsComplete{}
	bucketCompleter = bucketComplete{}
)

// The list of all commands supported by quickstart with their mapping
// with their bash completer function
var completeCmds = map[string]complete.Predictor{
	"/create":  complete.PredictNothing,
	"/list":    bucketCompleter,
	"/upload":  complete.PredictOr(bucketCompleter, fsCompleter),
	"/delete":  bucketCompleter,
	"/version": nil,
}

// flagsToCompleteFlags transforms a cli.Flag to complete.Flags
// understood by posener/complete library.
func flagsToCompleteFlags(flags []cli.Flag) complete.Flags {
	complFlags := make(complete.Flags)
	for _, f := range flags {
		for _, s := range strings.Split(f.GetName(), ",") {
			var flagName string
			s = strings.TrimSpace(s)
			if len(s) == 1 {
				flagName = "-" + s
			} else {
				flagName = "--" + s
			}
			complFlags[flagName] = complete.PredictNothing
		}
	}
	return complFlags
}

// cmdToCompleteCmd transforms a cli.Command to complete.Command.
func cmdToCompleteCmd(cmd cli.Command) complete.Command {
	return complete.Command{
		Flags: flagsToCompleteFlags(cmd.Flags),
		Args:  completeCmds["/"+cmd.Name],
	}
}

// quickstartCompleteCmd describes every command and flag to posener/complete.
func quickstartCompleteCmd() complete.Command {
	complCmds := make(complete.Commands)
	for _, cmd := range appCmds {
		complCmds[cmd.Name] = cmdToCompleteCmd(cmd)
	}
	return complete.Command{
		Sub:         complCmds,
		GlobalFlags: flagsToCompleteFlags(globalFlags),
	}
}

// Main function to answer to bash completion calls
func mainComplete() bool {
	return complete.New(filepath.Base(os.Args[0]), quickstartCompleteCmd()).Complete()
}
