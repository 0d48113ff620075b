package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// WorkspacePrefix names every directory created by NewWorkspace.
const WorkspacePrefix = "silencecut-"

// Workspace is a scoped temporary directory owned by a single run.
type Workspace struct {
	ID  string
	Dir string

	closeOnce sync.Once
	closeErr  error
}

// NewWorkspace creates <root>/silencecut-<uuid>. An empty root uses the OS
// temp directory.
func NewWorkspace(root string) (*Workspace, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("ensure work root: %w", err)
	}
	id := uuid.NewString()
	dir := filepath.Join(root, WorkspacePrefix+id)
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{ID: id, Dir: dir}, nil
}

// Path joins name onto the workspace directory.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Close removes the workspace and everything in it. It is safe to call more
// than once.
func (w *Workspace) Close() error {
	if w == nil {
		return nil
	}
	w.closeOnce.Do(func() {
		if err := os.RemoveAll(w.Dir); err != nil {
			w.closeErr = fmt.Errorf("remove workspace: %w", err)
		}
	})
	return w.closeErr
}
