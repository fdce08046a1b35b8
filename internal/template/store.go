// Package template loads the card templates that every operation builds on.
// Templates live in a single text file as <tipo>...</tipo> blocks; the tag
// name becomes the card type shown to the user.
package template

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ErrNoTemplates is returned when the templates file contains no valid
// <tipo>...</tipo> blocks.
var ErrNoTemplates = errors.New("no templates found: check that <tipo>...</tipo> tags are well formed")

// blockRe matches one candidate template block. Go's regexp has no
// backreferences, so the closing tag name is captured and checked separately.
var blockRe = regexp.MustCompile(`(?s)<(\w+)>(.*?)</(\w+)>`)

// Store is an immutable, ordered collection of card templates.
// It is loaded once at startup and safe for concurrent reads.
type Store struct {
	names  []string
	byName map[string]string
}

// Load reads the templates file at path and extracts every card defined
// between matching tags, e.g. <bug>...</bug>, <chore>...</chore>.
// File order is preserved; a later block with a repeated tag name replaces
// the earlier body but keeps its original position.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("templates file %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse extracts templates from raw text. Blocks whose closing tag does not
// match the opening tag are skipped rather than treated as fatal.
func Parse(text string) (*Store, error) {
	s := &Store{byName: make(map[string]string)}

	for _, m := range blockRe.FindAllStringSubmatch(text, -1) {
		name, body, closing := m[1], m[2], m[3]
		if name != closing {
			continue
		}
		if _, seen := s.byName[name]; !seen {
			s.names = append(s.names, name)
		}
		s.byName[name] = strings.TrimSpace(body)
	}

	if len(s.names) == 0 {
		return nil, ErrNoTemplates
	}
	return s, nil
}

// Names returns the template names in file order.
func (s *Store) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Get returns the template body for a card type.
func (s *Store) Get(name string) (string, bool) {
	body, ok := s.byName[strings.TrimSpace(name)]
	return body, ok
}

// Len returns the number of loaded templates.
func (s *Store) Len() int {
	return len(s.names)
}
