package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for configuration files.
// The same layout is read from JSON, YAML and TOML. Durations are accepted as
// strings ("30s"); JSON and YAML also accept numbers of nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
	} `json:"app,omitempty" yaml:"app" toml:"app"`

	Storage struct {
		Root       string `json:"root" yaml:"root" toml:"root"`
		JournalDSN string `json:"journal_dsn" yaml:"journal_dsn" toml:"journal_dsn"`
	} `json:"storage,omitempty" yaml:"storage" toml:"storage"`

	Remote struct {
		URLPrefix      string   `json:"url_prefix" yaml:"url_prefix" toml:"url_prefix"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout" toml:"request_timeout"`
	} `json:"remote,omitempty" yaml:"remote" toml:"remote"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address" toml:"http_address"`
		DataDir        string   `json:"data_dir" yaml:"data_dir" toml:"data_dir"`
		MaxUploadSize  int64    `json:"max_upload_size" yaml:"max_upload_size" toml:"max_upload_size"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout" toml:"request_timeout"`
	} `json:"server,omitempty" yaml:"server" toml:"server"`

	Workers struct {
		TickInterval Duration `json:"tick_interval" yaml:"tick_interval" toml:"tick_interval"`
		SyncInterval Duration `json:"sync_interval" yaml:"sync_interval" toml:"sync_interval"`
	} `json:"workers,omitempty" yaml:"workers" toml:"workers"`

	Policy struct {
		Reject StatusPolicyFile `json:"reject" yaml:"reject" toml:"reject"`
		Failed StatusPolicyFile `json:"failed" yaml:"failed" toml:"failed"`
	} `json:"policy,omitempty" yaml:"policy" toml:"policy"`
}

// StatusPolicyFile is the file layout of a [StatusPolicy].
type StatusPolicyFile struct {
	Command     string `json:"command" yaml:"command" toml:"command"`
	Kick        bool   `json:"kick" yaml:"kick" toml:"kick"`
	KickMessage string `json:"kick_message" yaml:"kick_message" toml:"kick_message"`
	Message     string `json:"message" yaml:"message" toml:"message"`
}

func (p StatusPolicyFile) policy() StatusPolicy {
	return StatusPolicy(p)
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return jsonCfg.structured(), nil
}

func (jsonCfg *StructuredJSONConfig) structured() *StructuredConfig {
	return &StructuredConfig{
		App: App{LogLevel: jsonCfg.App.LogLevel},
		Storage: Storage{
			Root:       jsonCfg.Storage.Root,
			JournalDSN: jsonCfg.Storage.JournalDSN,
		},
		Remote: Remote{
			URLPrefix:      jsonCfg.Remote.URLPrefix,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			DataDir:        jsonCfg.Server.DataDir,
			MaxUploadSize:  jsonCfg.Server.MaxUploadSize,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			TickInterval: time.Duration(jsonCfg.Workers.TickInterval),
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
		Policy: Policy{
			Reject: jsonCfg.Policy.Reject.policy(),
			Failed: jsonCfg.Policy.Failed.policy(),
		},
		JSONFilePath: "",
	}
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
