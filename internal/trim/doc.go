// Package trim runs one silence-removal job end to end.
//
// A Runner scans the input for silence, probes its duration, plans the keep
// segments, and hands them to the assembler. Each run gets a UUID that is
// attached to every log line and, when a Recorder is configured, to the
// history row written once the run finishes.
package trim
