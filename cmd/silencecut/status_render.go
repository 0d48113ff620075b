package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const ansiReset = "\x1b[0m"

var statusStyles = [...]struct{ tag, color string }{
	statusInfo:  {tag: "INFO", color: "\x1b[34m"},
	statusOK:    {tag: "OK", color: "\x1b[32m"},
	statusWarn:  {tag: "WARN", color: "\x1b[33m"},
	statusError: {tag: "ERROR", color: "\x1b[31m"},
}

// statusReport collects the sectioned lines printed by the status command.
// Colors are only emitted when colorize is set.
type statusReport struct {
	colorize bool
	lines    []string
}

func (r *statusReport) section(title string) {
	if len(r.lines) > 0 {
		r.lines = append(r.lines, "")
	}
	header := "== " + strings.TrimSpace(title) + " =="
	color := statusStyles[statusInfo].color
	r.lines = append(r.lines,
		r.paint(color, header),
		r.paint(color, strings.Repeat("-", len(header))),
	)
}

// item adds a "  Label:   [TAG] detail" line padded so tags line up.
func (r *statusReport) item(label string, kind statusKind, detail string) {
	style := statusStyles[kind]
	line := fmt.Sprintf("  %-20s [%s]", label+":", style.tag)
	if detail != "" {
		line += " " + detail
	}
	r.lines = append(r.lines, r.paint(style.color, line))
}

func (r *statusReport) paint(color, s string) string {
	if !r.colorize {
		return s
	}
	return color + s + ansiReset
}

func (r *statusReport) String() string {
	return strings.Join(r.lines, "\n")
}

// isTerminal reports whether writer is an interactive terminal.
func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
