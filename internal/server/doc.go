// Package server runs the HTTP transport of the development pack host.
//
// It provides startup, signal handling and graceful shutdown.
package server
