// Package history keeps a SQLite ledger of trim runs.
//
// Each invocation of the trim command records one Run: what was processed,
// the detection settings, the resulting statistics and whether it succeeded.
// The ledger is optional and never blocks a trim; the CLI logs recording
// failures and carries on.
//
// The schema is versioned. A database created by a different schema version
// is rejected with ErrSchemaMismatch; "silencecut history --clear" or deleting
// the file resets it.
package history
