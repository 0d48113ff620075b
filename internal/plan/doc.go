// Package plan computes the spans of source media to keep once padded
// silences are removed. Everything here is pure arithmetic over seconds.
package plan
