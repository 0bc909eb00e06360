// Package realtime implements the fan-out side of the platform: websocket
// connections, authenticated identities, room membership, and the broadcast
// primitives the rest of the backend uses to push state changes to clients.
//
// Inbound messages are decoded once at the protocol boundary into typed
// variants; routing and authorization decisions are made on those variants,
// never on raw string tags scattered through the handler.
package realtime
