// Package prompt builds the final prompt sent to the LLM for each operation.
package prompt

// Operation identifies one of the three user-facing actions.
type Operation int

const (
	// OpValidate checks whether free-text notes carry enough information
	// to fill the chosen card template.
	OpValidate Operation = iota
	// OpCreate generates a filled card from a template plus a description.
	OpCreate
	// OpAnalyze critiques an already-written card against its template.
	OpAnalyze
)

// String returns a human-readable operation name.
func (op Operation) String() string {
	switch op {
	case OpValidate:
		return "validation"
	case OpCreate:
		return "creation"
	case OpAnalyze:
		return "analysis"
	default:
		return "unknown"
	}
}

// File returns the base prompt filename for the operation.
func (op Operation) File() string {
	switch op {
	case OpValidate:
		return "info_validation_prompt.txt"
	case OpCreate:
		return "creation_prompt.txt"
	case OpAnalyze:
		return "analisys_prompt.txt"
	default:
		return ""
	}
}

// ReplyTag returns the tag the model is instructed to wrap its reply in.
func (op Operation) ReplyTag() string {
	switch op {
	case OpValidate:
		return "info_validacao"
	case OpCreate:
		return "card"
	case OpAnalyze:
		return "analise"
	default:
		return ""
	}
}

// Operations lists all operations in tab order.
func Operations() []Operation {
	return []Operation{OpValidate, OpCreate, OpAnalyze}
}
