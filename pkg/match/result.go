package match

import (
	"github.com/bastiangx/cadprompt/pkg/template"
)

// State is where the input stands relative to the matched template.
type State int

const (
	// NoMatch means no template is consistent with the input; the text is
	// free-form and carries no structure.
	NoMatch State = iota
	// LiteralPending means the input stops inside a literal part.
	LiteralPending
	// ParameterPending means the input stops at or inside a parameter part.
	ParameterPending
	// Complete means the input equals the fully instantiated template.
	Complete
)

var stateNames = [...]string{"no-match", "literal", "parameter", "complete"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Result describes one input text against the template registry. It is
// recomputed from scratch for every input and never carries state over.
type Result struct {
	State    State
	Template *template.Template
	// PartIndex is the part being resolved; the last part when Complete.
	PartIndex int
	// Context holds the parameter values recovered left to right, including
	// a non-empty in-progress free-text value.
	Context  template.Context
	Complete bool

	// Parameter is the parameter being typed when State is ParameterPending.
	Parameter *template.Parameter
	// Prefix is the input consumed before the current part; choosing a
	// suggestion replaces the input with Prefix plus the suggestion.
	Prefix string
	// Value is the text typed into the current parameter so far.
	Value       string
	Suggestions []string
	// NeedsInput is set when the current parameter takes free text.
	NeedsInput bool

	// Error is the first validation failure, empty when the values are valid.
	Error string
	// Invalid names the parameter that produced Error.
	Invalid string
}

// Matched reports whether a template is consistent with the input.
func (r Result) Matched() bool {
	return r.State != NoMatch
}

// TemplateID returns the matched template id or "".
func (r Result) TemplateID() string {
	if r.Template == nil {
		return ""
	}
	return r.Template.ID
}

func noMatch() Result {
	return Result{State: NoMatch, Context: template.Context{}, Suggestions: []string{}}
}
