// Package tracking provides the ledger side of the domain: immutable audit
// records of every check-in, check-out, and status update performed on a
// tracked item.
//
// The package includes:
//   - Entry: One append-only audit record referencing item, department, and actor
//   - ActionType: Which workflow operation produced the record
//
// Entries are written in the same transaction as the item projection update
// they describe and are never edited afterwards.
package tracking
