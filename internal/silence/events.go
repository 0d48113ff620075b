package silence

import (
	"regexp"
	"strconv"
	"strings"
)

// EventKind distinguishes the two markers silencedetect emits.
type EventKind int

const (
	EventStart EventKind = iota + 1
	EventEnd
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is a single timestamped marker from the analysis stream.
type Event struct {
	Kind      EventKind
	Timestamp float64
}

// Interval is a detected silent span in seconds.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the length of the interval in seconds.
func (i Interval) Duration() float64 {
	return i.End - i.Start
}

const filterTag = "silencedetect"

var (
	startPattern = regexp.MustCompile(`silence_start:\s*(-?[0-9]+(?:\.[0-9]+)?(?:[eE][-+]?[0-9]+)?)`)
	endPattern   = regexp.MustCompile(`silence_end:\s*(-?[0-9]+(?:\.[0-9]+)?(?:[eE][-+]?[0-9]+)?)`)
)

// ParseLine extracts an event from one line of ffmpeg stderr. Lines that do
// not come from the silencedetect filter, or carry no parsable marker, are
// ignored.
func ParseLine(line string) (Event, bool) {
	if !strings.Contains(line, filterTag) {
		return Event{}, false
	}
	if m := startPattern.FindStringSubmatch(line); m != nil {
		if ts, err := strconv.ParseFloat(m[1], 64); err == nil {
			return Event{Kind: EventStart, Timestamp: ts}, true
		}
	}
	if m := endPattern.FindStringSubmatch(line); m != nil {
		if ts, err := strconv.ParseFloat(m[1], 64); err == nil {
			return Event{Kind: EventEnd, Timestamp: ts}, true
		}
	}
	return Event{}, false
}
