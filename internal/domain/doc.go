// Package domain defines the core types of the gas transport network inventory.
//
// This package contains the entities an operator manages and the value objects
// that describe how they are connected.
//
// # Core Types
//
// Pipe is a physical pipeline segment with a length, a diametre and a repair
// flag. A pipe under repair is never reused when stations are connected.
//
// CompressorStation is a facility with a total workshop count, the number of
// workshops currently active and an effectiveness metric. The active count can
// never exceed the total.
//
// Edge is a directed connection between two stations, labelled with the
// diametre of the pipe that realises it.
//
// Inventory is a plain snapshot of pipes and stations (plus edges for exports)
// that codecs and repositories exchange with the service layer.
//
// # Identity
//
// Entity IDs are decimal strings of positive integers. NextID allocates them
// and CompareIDs orders them numerically, so "10" sorts after "9".
//
// # Design Principles
//
// - Value types, copied in and out of registries
// - No database or external dependencies
// - Sentinel errors with wrapping types for context
package domain
