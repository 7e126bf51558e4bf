// Package service implements the gas network inventory on top of the
// registries, the connection graph and a snapshot repository.
//
// # Services
//
// NetworkService owns one pipe registry, one station registry and the
// connection graph. Every operation validates its input, applies the change
// and publishes an Event describing it. Failed operations leave all state
// untouched.
//
// # Event System
//
// Events are delivered synchronously to every Recorder subscribed on the
// EventBus, in subscription order. The audit package provides the recorder
// that appends them to the operator's log file.
//
// # Persistence
//
// Save and Load move a detached domain.Inventory through a
// repository.Repository. The connection graph is never persisted; Export is
// the only way to write it out.
package service
