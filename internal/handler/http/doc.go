// Package http implements the HTTP transport of the development pack host.
//
// It exposes the download and upload routes the synchronization engine
// talks to, plus request tracing and access logging middleware. Requests are
// delegated to the service layer.
package http
