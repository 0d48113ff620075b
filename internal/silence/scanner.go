package silence

import (
	"bufio"
	"fmt"
	"io"
)

// pairer is the two-state machine that turns events into intervals. With
// pending unset it awaits a start; with pending set it awaits the matching
// end.
type pairer struct {
	pending    float64
	hasPending bool
	intervals  []Interval
}

func (p *pairer) feed(ev Event) {
	switch ev.Kind {
	case EventStart:
		// An unterminated start is overwritten by the next one.
		p.pending = ev.Timestamp
		p.hasPending = true
	case EventEnd:
		if !p.hasPending {
			return
		}
		if ev.Timestamp > p.pending {
			p.intervals = append(p.intervals, Interval{Start: p.pending, End: ev.Timestamp})
		}
		p.hasPending = false
	}
}

// Reduce pairs events into intervals. An end with no pending start is
// dropped, as is a start still pending when the events run out.
func Reduce(events []Event) []Interval {
	var p pairer
	for _, ev := range events {
		p.feed(ev)
	}
	return p.intervals
}

// Scan reads an ffmpeg stderr stream line by line and returns the intervals
// it describes. Unrelated output is skipped.
func Scan(r io.Reader) ([]Interval, error) {
	return scan(r, nil)
}

func scan(r io.Reader, onLine func(string)) ([]Interval, error) {
	var p pairer
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanLines)
	for scanner.Scan() {
		line := scanner.Text()
		if onLine != nil {
			onLine(line)
		}
		if ev, ok := ParseLine(line); ok {
			p.feed(ev)
		}
	}
	if err := scanner.Err(); err != nil {
		return p.intervals, fmt.Errorf("read silencedetect output: %w", err)
	}
	return p.intervals, nil
}

// scanLines splits on \n and on bare \r, since ffmpeg rewrites progress lines
// in place with carriage returns.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i, b := range data {
		if b == '\n' || b == '\r' {
			return i + 1, data[:i], nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
