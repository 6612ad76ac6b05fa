// Package config provides configuration loading, merging, and validation
// facilities for the packsync and packhost binaries.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// The main entry points are [GetSyncConfig] for the synchronization engine
// and [GetHostConfig] for the development pack host.
package config
