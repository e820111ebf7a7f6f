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
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/minio/quickstart/pkg/probe"
	"github.com/mitchellh/go-homedir"
)

// quickstartCustomConfigDir contains the whole path to config dir. Only access via get/set functions.
var quickstartCustomConfigDir string

// setQuickstartConfigDir - set a custom config folder.
func setQuickstartConfigDir(configDir string) {
	quickstartCustomConfigDir = configDir
}

// getQuickstartConfigDir - construct config folder.
func getQuickstartConfigDir() (string, *probe.Error) {
	if quickstartCustomConfigDir != "" {
		return quickstartCustomConfigDir, nil
	}
	homeDir, e := homedir.Dir()
	if e != nil {
		return "", probe.NewError(e)
	}
	return filepath.Join(homeDir, defaultQuickstartConfigDir()), nil
}

// Return default config directory.
// Generally you want to use getQuickstartConfigDir which returns custom overrides.
func defaultQuickstartConfigDir() string {
	if runtime.GOOS == "windows" {
		// For windows the path is slightly different
		cmd := filepath.Base(os.Args[0])
		if strings.HasSuffix(strings.ToLower(cmd), ".exe") {
			cmd = cmd[:strings.LastIndex(cmd, ".")]
		}
		return fmt.Sprintf("%s\\", cmd)
	}
	return fmt.Sprintf(".%s/", filepath.Base(os.Args[0]))
}

// mustGetQuickstartConfigDir - construct config folder or fail
func mustGetQuickstartConfigDir() (configDir string) {
	configDir, err := getQuickstartConfigDir()
	fatalIf(err.Trace(), "Unable to get config folder.")

	return configDir
}

// createQuickstartConfigDir - create config folder
func createQuickstartConfigDir() *probe.Error {
	p, err := getQuickstartConfigDir()
	if err != nil {
		return err.Trace()
	}
	if e := os.MkdirAll(p, 0o700); e != nil {
		return probe.NewError(e)
	}
	return nil
}

// getQuickstartConfigPath - construct configuration path
func getQuickstartConfigPath() (string, *probe.Error) {
	dir, err := getQuickstartConfigDir()
	if err != nil {
		return "", err.Trace()
	}
	return filepath.Join(dir, globalQuickstartConfigFile), nil
}

// mustGetQuickstartConfigPath - similar to getQuickstartConfigPath, fails on errors
func mustGetQuickstartConfigPath() string {
	path, err := getQuickstartConfigPath()
	fatalIf(err.Trace(), "Unable to get config path.")

	return path
}

// newQuickstartConfig - initializes a new version '1' config.
func newQuickstartConfig() *configV1 {
	cfg := newConfigV1()
	cfg.loadDefaults()
	return cfg
}

// loadQuickstartConfig - reads configuration file and returns config.
func loadQuickstartConfig() (*configV1, *probe.Error) {
	path, err := getQuickstartConfigPath()
	if err != nil {
		return nil, err.Trace()
	}
	cfg, err := loadConfigV1(path)
	if err != nil {
		return nil, err.Trace(path)
	}
	return cfg, nil
}

// saveQuickstartConfig - saves configuration file and returns error if any.
func saveQuickstartConfig(config *configV1) *probe.Error {
	if config == nil {
		return errInvalidArgument().Trace()
	}

	if err := createQuickstartConfigDir(); err != nil {
		return err.Trace()
	}

	path, err := getQuickstartConfigPath()
	if err != nil {
		return err.Trace()
	}
	return saveConfigV1(path, config).Trace(path)
}

// isQuickstartConfigExists returns false if config doesn't exist.
func isQuickstartConfigExists() bool {
	configFile, err := getQuickstartConfigPath()
	if err != nil {
		return false
	}
	if _, e := os.Stat(configFile); e != nil {
		return false
	}
	return true
}
