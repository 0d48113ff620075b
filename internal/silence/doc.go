// Package silence turns ffmpeg's silencedetect diagnostics into ordered
// silence intervals.
//
// Parsing is split in two pure steps: ParseLine recognizes start/end events
// in a stderr line, and Reduce pairs them with a two-state machine. Detector
// wires both to a running ffmpeg process.
package silence
