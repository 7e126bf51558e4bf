// Package repository defines where saved inventories live.
//
// A Repository stores named snapshots of an inventory. The textfile
// subpackage keeps one flat file per name in a directory; the sqlite
// subpackage keeps every save as a snapshot row in a SQLite database and
// loads the newest one for a name.
//
// Neither backend persists the connection graph.
//
// # Failure Semantics
//
// Save and Load failures wrap domain.ErrIOFailure. A failed Save never leaves
// a partially written snapshot behind, and Load returns nothing on failure so
// callers can leave their in-memory state untouched. Records that cannot be
// decoded are not failures: they are reported in codec.Decoded.Malformed.
package repository
