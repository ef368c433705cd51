package match

import (
	"github.com/bastiangx/cadprompt/pkg/suggest"
	"github.com/bastiangx/cadprompt/pkg/template"
	"github.com/bastiangx/cadprompt/pkg/validate"
)

// Engine plans the template match for an input text.
type Engine interface {
	Plan(input string) Result
}

// Plan matches input against every template of reg in priority order and
// returns the first complete or partial match, with validation folded in.
// Empty input and input no template is consistent with yield NoMatch.
func Plan(reg *template.Registry, input string) Result {
	if input == "" {
		return noMatch()
	}
	for _, t := range reg.Templates() {
		res := Segment(t, input)
		if res.State == NoMatch {
			continue
		}
		checkValues(&res)
		return res
	}
	return noMatch()
}

// checkValues validates the committed values in part order, then the
// in-progress free-text value. The first failure is recorded on res.
func checkValues(res *Result) {
	seen := template.Context{}
	for i, part := range res.Template.Parts {
		if part.IsLiteral() {
			continue
		}
		p := part.Param
		value, ok := res.Context[p.Name]
		inProgress := res.Parameter == p && i == res.PartIndex
		if inProgress && (!res.NeedsInput || res.Value == "") {
			return
		}
		if !ok && !inProgress {
			return
		}
		if v := validate.Validate(p, value, seen); !v.Valid {
			res.Error = v.Reason
			res.Invalid = p.Name
			return
		}
		if inProgress {
			return
		}
		seen[p.Name] = value
	}
}

// Apply returns the input text that results from choosing choice for the
// current part of res.
func Apply(res Result, choice string) string {
	if !res.Matched() {
		return choice
	}
	return res.Prefix + choice
}

// Planner binds a registry to the presentation settings of a front end.
type Planner struct {
	registry       *template.Registry
	maxSuggestions int
}

// NewPlanner returns a Planner over reg. maxSuggestions <= 0 keeps every suggestion.
func NewPlanner(reg *template.Registry, maxSuggestions int) *Planner {
	return &Planner{registry: reg, maxSuggestions: maxSuggestions}
}

// Plan implements Engine.
func (p *Planner) Plan(input string) Result {
	res := Plan(p.registry, input)
	res.Suggestions = suggest.Limit(res.Suggestions, p.maxSuggestions)
	return res
}

// Registry returns the templates the planner matches against.
func (p *Planner) Registry() *template.Registry {
	return p.registry
}

// Stats returns registry counts and the suggestion limit.
func (p *Planner) Stats() map[string]int {
	stats := p.registry.Stats()
	stats["maxSuggestions"] = p.maxSuggestions
	return stats
}
