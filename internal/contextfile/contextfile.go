// Package contextfile handles the optional project-context attachment.
// The user points cardsmith at a .txt/.md/.rst file whose full text is
// appended to every composed prompt as background.
package contextfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// allowedExtensions are the file types accepted as project context.
var allowedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".rst": true,
}

// Context is the loaded project-context text and where it came from.
type Context struct {
	Path string
	Text string
}

// Name returns the base filename for display.
func (c Context) Name() string {
	return filepath.Base(c.Path)
}

// Load reads a project-context file, rejecting unsupported extensions.
func Load(path string) (Context, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedExtensions[ext] {
		return Context{}, fmt.Errorf("unsupported context file type %q (want .txt, .md, or .rst)", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Context{}, fmt.Errorf("context file %s: %w", path, err)
	}

	// Stored absolute so watcher events can be matched against it.
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	return Context{Path: path, Text: strings.TrimSpace(string(data))}, nil
}
