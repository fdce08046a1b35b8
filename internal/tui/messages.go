package tui

import (
	"cardsmith/internal/card"
	"cardsmith/internal/contextfile"
	"cardsmith/internal/prompt"
)

// ResultMsg is sent when a request finishes successfully.
type ResultMsg struct {
	Op     prompt.Operation
	Result card.Result
}

// ResultErrMsg is sent when a request fails.
type ResultErrMsg struct {
	Op  prompt.Operation
	Err error
}

// ContextUpdatedMsg is sent when the attached context file is loaded or
// re-read after an on-disk change.
type ContextUpdatedMsg struct {
	Context contextfile.Context
}

// ContextErrMsg is sent when the attached context file cannot be read.
type ContextErrMsg struct {
	Err error
}
