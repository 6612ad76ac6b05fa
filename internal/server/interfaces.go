package server

import "context"

// Server defines the lifecycle contract of the pack host transport.
//
// Implementations block in [RunServer] until SIGTERM, SIGINT or SIGQUIT is
// received and release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Run is RunServer bound to ctx instead of process signals.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
