// Package service implements the client resilience core: the durable sync
// queue, the processor that drives its retry state machine, the observer
// registry for aggregate status notifications, and the network monitor that
// triggers processing on connectivity transitions.
package service
