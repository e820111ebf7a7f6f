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
	"strings"

	"github.com/minio/cli"
)

// Collection of quickstart flags currently supported
var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config-dir, C",
		Value: mustGetQuickstartConfigDir(),
		Usage: "path to configuration folder",
	},
	cli.StringFlag{
		Name:  "backend",
		Usage: "storage backend to use, one of 'gcs' or 's3'",
	},
	cli.StringFlag{
		Name:  "project",
		Usage: "Google Cloud project id owning the buckets",
	},
	cli.StringFlag{
		Name:  "endpoint",
		Usage: "override the storage service endpoint",
	},
	cli.BoolFlag{
		Name:  "quiet, q",
		Usage: "disable progress bar display",
	},
	cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable color theme",
	},
	cli.BoolFlag{
		Name:  "json",
		Usage: "enable JSON lines formatted output",
	},
	cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug output",
	},
	cli.BoolFlag{
		Name:  "insecure",
		Usage: "disable SSL certificate verification",
	},
	cli.StringFlag{
		Name:  "limit-upload",
		Usage: "limits uploads to a maximum rate in KiB/s, MiB/s, GiB/s. (default: unlimited)",
	},
	cli.StringFlag{
		Name:  "limit-download",
		Usage: "limits downloads to a maximum rate in KiB/s, MiB/s, GiB/s. (default: unlimited)",
	},
}

// valueFlagNames returns every name, short forms included, of the
// global flags that consume the following argument.
func valueFlagNames() map[string]bool {
	names := make(map[string]bool)
	for _, flag := range globalFlags {
		if _, ok := flag.(cli.StringFlag); !ok {
			continue
		}
		for _, name := range strings.Split(flag.GetName(), ",") {
			names[strings.TrimSpace(name)] = true
		}
	}
	return names
}

// normalizeArgs lower-cases the command word so that 'LIST' and 'list'
// run the same command. Flag values preceding the command are left as is.
func normalizeArgs(args []string) []string {
	valueFlags := valueFlagNames()
	normalized := append([]string{}, args...)
	for i := 1; i < len(normalized); i++ {
		arg := normalized[i]
		if arg == "--" {
			if i+1 < len(normalized) {
				normalized[i+1] = strings.ToLower(normalized[i+1])
			}
			break
		}
		if strings.HasPrefix(arg, "-") {
			name := strings.TrimLeft(arg, "-")
			if !strings.Contains(name, "=") && valueFlags[name] {
				i++ // skip the flag value.
			}
			continue
		}
		normalized[i] = strings.ToLower(arg)
		break
	}
	return normalized
}
