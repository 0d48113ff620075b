// Package staging owns the per-run scratch area where segment fragments, the
// concat manifest and the staged output live until publication.
//
// Each run gets a uniquely named workspace under the work root. Workspaces
// left behind by killed runs are reclaimed by CleanStale, and concurrent runs
// writing the same destination are serialized by LockDestination.
package staging
