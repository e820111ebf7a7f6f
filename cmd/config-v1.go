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
	"strings"
	"sync"

	"github.com/minio/pkg/v3/quick"
	"github.com/minio/quickstart/pkg/probe"
)

const (
	backendGCS = "gcs"
	backendS3  = "s3"

	defaultProjectID = "YOUR-PROJECT-ID"
	defaultAccessKey = "YOUR-ACCESS-KEY-HERE"
	defaultSecretKey = "YOUR-SECRET-KEY-HERE"
	defaultS3URL     = "https://storage.googleapis.com"
	defaultS3Region  = "us-east-1"
)

// Environment variables overriding config.json entries.
const (
	envBackend   = "QUICKSTART_BACKEND"
	envProjectID = "QUICKSTART_PROJECT_ID"
	envEndpoint  = "QUICKSTART_ENDPOINT"
	envAccessKey = "QUICKSTART_ACCESS_KEY"
	envSecretKey = "QUICKSTART_SECRET_KEY"
)

// All access to the config file should be synchronized.
var cfgMutex = &sync.RWMutex{}

// gcsConfigV1 settings of the Google Cloud Storage JSON API backend.
type gcsConfigV1 struct {
	Endpoint        string `json:"endpoint,omitempty"`
	CredentialsFile string `json:"credentialsFile,omitempty"`
	Anonymous       bool   `json:"anonymous,omitempty"`
}

// s3ConfigV1 settings of the S3 compatible backend.
type s3ConfigV1 struct {
	URL       string `json:"url"`
	AccessKey string `json:"accessKey"`
	SecretKey string `json:"secretKey"`
	Region    string `json:"region"`
}

// configV1 config version.
type configV1 struct {
	Version   string      `json:"version"`
	Backend   string      `json:"backend"`
	ProjectID string      `json:"projectId"`
	Location  string      `json:"location,omitempty"`
	GCS       gcsConfigV1 `json:"gcs"`
	S3        s3ConfigV1  `json:"s3"`
}

// newConfigV1 - new config version.
func newConfigV1() *configV1 {
	cfg := new(configV1)
	cfg.Version = globalQuickstartConfigVersion
	return cfg
}

// load default values for missing entries.
func (c *configV1) loadDefaults() {
	if c.Backend == "" {
		c.Backend = backendGCS
	}
	if c.ProjectID == "" {
		c.ProjectID = defaultProjectID
	}
	if c.S3.URL == "" {
		c.S3.URL = defaultS3URL
	}
	if c.S3.AccessKey == "" {
		c.S3.AccessKey = defaultAccessKey
	}
	if c.S3.SecretKey == "" {
		c.S3.SecretKey = defaultSecretKey
	}
	if c.S3.Region == "" {
		c.S3.Region = defaultS3Region
	}
}

// loadConfigV1 - loads the config at path.
func loadConfigV1(path string) (*configV1, *probe.Error) {
	cfgMutex.RLock()
	defer cfgMutex.RUnlock()

	// Initialize a new config loader.
	qc, e := quick.NewConfig(newConfigV1(), nil)
	if e != nil {
		return nil, probe.NewError(e)
	}

	// Load config at configPath, fails if config is not
	// accessible, malformed or version missing.
	if e = qc.Load(path); e != nil {
		return nil, probe.NewError(e)
	}

	cfg := qc.Data().(*configV1)
	cfg.loadDefaults()
	return cfg, nil
}

// saveConfigV1 - saves an updated config.
func saveConfigV1(path string, cfg *configV1) *probe.Error {
	cfgMutex.Lock()
	defer cfgMutex.Unlock()

	qs, e := quick.NewConfig(cfg, nil)
	if e != nil {
		return probe.NewError(e)
	}
	if e = qs.Save(path); e != nil {
		return probe.NewError(e)
	}
	return nil
}

// initQuickstartConfig writes a default config file on first run.
func initQuickstartConfig() {
	if isQuickstartConfigExists() {
		return
	}
	err := saveQuickstartConfig(newQuickstartConfig())
	fatalIf(err.Trace(), "Unable to save new quickstart configuration file.")
}

// resolveStorageConfig merges the config file with environment
// variables and command line overrides, in increasing order of
// precedence, into a client Config.
func resolveStorageConfig(cfg *configV1) (*Config, *probe.Error) {
	if cfg == nil {
		return nil, errInvalidArgument().Trace()
	}

	backend := strings.ToLower(override(globalBackend, lookupEnv(envBackend, cfg.Backend)))
	projectID := override(globalProjectID, lookupEnv(envProjectID, cfg.ProjectID))

	conf := &Config{
		Backend:       backend,
		ProjectID:     projectID,
		Location:      cfg.Location,
		AppName:       appName,
		AppVersion:    Version,
		Debug:         globalDebug,
		Insecure:      globalInsecure,
		UploadLimit:   globalLimitUpload,
		DownloadLimit: globalLimitDownload,
	}

	switch backend {
	case backendGCS:
		conf.Endpoint = override(globalEndpoint, lookupEnv(envEndpoint, cfg.GCS.Endpoint))
		conf.CredentialsFile = cfg.GCS.CredentialsFile
		conf.Anonymous = cfg.GCS.Anonymous
		if conf.ProjectID == "" {
			return nil, errProjectIDEmpty().Trace(backend)
		}
	case backendS3:
		conf.Endpoint = override(globalEndpoint, lookupEnv(envEndpoint, cfg.S3.URL))
		conf.AccessKey = lookupEnv(envAccessKey, cfg.S3.AccessKey)
		conf.SecretKey = lookupEnv(envSecretKey, cfg.S3.SecretKey)
		conf.Region = cfg.S3.Region
		if conf.Region == "" {
			conf.Region = defaultS3Region
		}
		if conf.Endpoint == "" {
			return nil, errInvalidURL(conf.Endpoint).Trace(backend)
		}
	default:
		return nil, errInvalidBackend(backend).Trace(backend)
	}
	return conf, nil
}

// getStorageConfig loads config.json and resolves it for the current invocation.
func getStorageConfig() (*Config, *probe.Error) {
	initQuickstartConfig()

	cfg, err := loadQuickstartConfig()
	if err != nil {
		return nil, err.Trace()
	}
	return resolveStorageConfig(cfg)
}

// lookupEnv returns the value of the environment variable key when it
// is set, fallback otherwise. Values are taken literally, a project id
// such as `envoy-prod` is not a remote env reference.
func lookupEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// override returns value unless it is empty.
func override(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
