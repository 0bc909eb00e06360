// Package server wires and runs the relay server's transport lifecycle:
// startup, signal handling, and graceful shutdown of the HTTP/websocket
// listener.
package server
