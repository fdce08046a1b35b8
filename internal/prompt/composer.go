package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Placeholders recognized in the base prompt files.
const (
	placeholderTemplate = "{Card_modelo}"
	placeholderUserInfo = "{informacoes_fornecidas_pelo_usuario}"
	placeholderCard     = "{Card_para_analise}"
	placeholderContext  = "{informacoes_adicionais}"
)

// Composer merges base prompts, template bodies, and user text into the
// final prompt for each operation. Base prompts are loaded once at startup
// and never change.
type Composer struct {
	base map[Operation]string
}

// NewComposer loads the three base prompt files from the resources directory.
// A missing file is fatal; the application cannot operate without its prompts.
func NewComposer(resourcesDir string) (*Composer, error) {
	c := &Composer{base: make(map[Operation]string)}
	for _, op := range Operations() {
		path := filepath.Join(resourcesDir, op.File())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("base prompt %s: %w", path, err)
		}
		c.base[op] = string(data)
	}
	return c, nil
}

// Compose builds the final prompt for an operation. userText fills the
// operation's own slot: the task notes for validation/creation, or the card
// under analysis for the analyze operation. context is optional project
// background appended wherever the base prompt places it; when empty the
// placeholder is replaced with nothing.
//
// Substitution is pure: no truncation, no length validation. Length limits
// are the remote API's concern.
func (c *Composer) Compose(op Operation, templateBody, userText, context string) string {
	p := c.base[op]
	p = strings.ReplaceAll(p, placeholderTemplate, templateBody)

	switch op {
	case OpAnalyze:
		p = strings.ReplaceAll(p, placeholderCard, userText)
	default:
		p = strings.ReplaceAll(p, placeholderUserInfo, userText)
	}

	return strings.ReplaceAll(p, placeholderContext, context)
}

// Base returns the raw base prompt text for an operation.
func (c *Composer) Base(op Operation) string {
	return c.base[op]
}
