package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Binary is the outcome of resolving one external tool.
type Binary struct {
	Name string
	// Command is the absolute path when the tool was found, otherwise the
	// command as configured.
	Command   string
	Available bool
	Detail    string
}

// Resolve looks command up on PATH, or as a path when it contains a
// separator, and labels the result with name.
func Resolve(name, command string) Binary {
	bin := Binary{Name: name, Command: strings.TrimSpace(command)}
	if bin.Command == "" {
		bin.Detail = "command not configured"
		return bin
	}
	resolved, err := exec.LookPath(bin.Command)
	if err != nil {
		bin.Detail = fmt.Sprintf("binary %q not found", bin.Command)
		return bin
	}
	bin.Command = resolved
	bin.Available = true
	return bin
}
