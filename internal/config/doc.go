// Package config loads and merges psysync configuration from environment
// variables, command-line flags, and an optional JSON file.
//
// Sources are merged with mergo in precedence order (env > flags > JSON) and
// exposed as role-specific views: [GetClientConfig] for the sync client
// daemon and [GetServerConfig] for the realtime relay server.
package config
