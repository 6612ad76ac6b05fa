package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args (normally os.Args[1:]).
//
// Flags:
//
//	-a pack host listen address in format [host]:[port]
//	-root pack storage root folder
//	-journal sync journal DSN
//	-url pack host URL prefix
//	-request-timeout pack host request timeout (e.g., "30s", "10m")
//	-tick-interval foreground queue drain interval
//	-sync-interval periodic full sync interval
//	-data-dir pack host data folder
//	-max-upload-size pack host upload limit in bytes
//	-log-level log level
//	-c/-config config file path (JSON, YAML or TOML)
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var storageRoot, journalDSN string
	var urlPrefix string
	var requestTimeout time.Duration
	var tickInterval, syncInterval time.Duration
	var dataDir string
	var maxUploadSize int64
	var logLevel string
	var jsonConfigPath string

	fs := flag.NewFlagSet("packsync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&storageRoot, "root", "", "Pack storage root folder")
	fs.StringVar(&journalDSN, "journal", "", "Sync journal DSN")
	fs.StringVar(&urlPrefix, "url", "", "Pack host URL prefix")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 10m)")
	fs.DurationVar(&tickInterval, "tick-interval", 0, "Foreground drain interval (e.g., 1s)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval (e.g., 25m)")
	fs.StringVar(&dataDir, "data-dir", "", "Pack host data folder")
	fs.Int64Var(&maxUploadSize, "max-upload-size", 0, "Pack host upload limit in bytes")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "Config file path (JSON, YAML or TOML)")
	fs.StringVar(&jsonConfigPath, "config", "", "Config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{LogLevel: logLevel},
		Storage: Storage{
			Root:       storageRoot,
			JournalDSN: journalDSN,
		},
		Remote: Remote{
			URLPrefix:      urlPrefix,
			RequestTimeout: requestTimeout,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			DataDir:        dataDir,
			MaxUploadSize:  maxUploadSize,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			TickInterval: tickInterval,
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
