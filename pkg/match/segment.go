/*
Package match recognizes fill-in-the-blank templates in text as it is typed.

Every call re-derives the match from the raw input string alone. The walk over
a template is a single greedy forward pass: once a literal or an option is
committed it is never revisited, even if a later part then fails. Options are
tried in declaration order and the first one consistent with the input wins,
not the longest; with options ["m", "mm"] the input "mm" commits "m".

	planner := match.NewPlanner(registry, 10)
	res := planner.Plan("Generate a sphere with 5 cm ")
	// res.State == match.ParameterPending
	// res.Parameter.Name == "type", res.Suggestions == ["radius"]

Plan never fails: an input no template is consistent with yields a NoMatch
result, which callers treat as plain free-form text.
*/
package match

import (
	"strings"

	"github.com/bastiangx/cadprompt/pkg/suggest"
	"github.com/bastiangx/cadprompt/pkg/template"
)

// Segment walks the parts of t against input. The built prefix is always a
// prefix of input; parts are committed left to right into the context.
func Segment(t *template.Template, input string) Result {
	if t == nil || len(t.Parts) == 0 {
		return noMatch()
	}

	ctx := template.Context{}
	var built strings.Builder

	for i, part := range t.Parts {
		prefix := built.String()

		if part.IsLiteral() {
			expected := prefix + part.Literal
			if len(input) < len(expected) {
				if strings.HasPrefix(expected, input) {
					return Result{
						State:       LiteralPending,
						Template:    t,
						PartIndex:   i,
						Context:     ctx,
						Prefix:      prefix,
						Suggestions: []string{},
					}
				}
				return noMatch()
			}
			if !strings.HasPrefix(input, expected) {
				return noMatch()
			}
			built.WriteString(part.Literal)
			continue
		}

		p := part.Param
		if p.Kind == template.KindOptions {
			options := suggest.ResolveOptions(p, ctx)
			if opt, found := firstOption(options, prefix, input); found {
				ctx[p.Name] = opt
				built.WriteString(opt)
				continue
			}

			fragment := input[len(prefix):]
			if fragment == "" {
				return pending(t, i, ctx, p, prefix, "", options, false)
			}
			if narrowed := suggest.Filter(options, fragment); len(narrowed) > 0 {
				return pending(t, i, ctx, p, prefix, fragment, narrowed, false)
			}
			return noMatch()
		}

		value, closed := freeTextValue(t, i, input, len(prefix))
		if !closed || value == "" {
			if value != "" {
				ctx[p.Name] = value
			}
			suggestions := suggest.ResolveSuggestions(p, ctx)
			if value != "" {
				suggestions = suggest.Filter(suggestions, value)
			}
			res := pending(t, i, ctx, p, prefix, value, suggestions, true)
			// A trailing free-text value completes the template while it
			// stays open for more typing.
			if value != "" && i == len(t.Parts)-1 {
				res.State = Complete
				res.Complete = true
			}
			return res
		}
		ctx[p.Name] = value
		built.WriteString(value)
	}

	if built.Len() != len(input) {
		return noMatch()
	}
	return Result{
		State:       Complete,
		Template:    t,
		PartIndex:   len(t.Parts) - 1,
		Context:     ctx,
		Complete:    true,
		Prefix:      input,
		Suggestions: []string{},
	}
}

// firstOption returns the first option, in declaration order, such that
// prefix+option is a prefix of input.
func firstOption(options []string, prefix, input string) (string, bool) {
	rest := input[len(prefix):]
	for _, opt := range options {
		if opt != "" && strings.HasPrefix(rest, opt) {
			return opt, true
		}
	}
	return "", false
}

// freeTextValue extracts the value of the free-text parameter at part i. The
// value runs from start to the first occurrence of the next literal part; it
// is closed when that literal was found. Without a later literal, or when it
// is not in the input yet, the value is the remainder and still open.
func freeTextValue(t *template.Template, i int, input string, start int) (string, bool) {
	next := ""
	for _, part := range t.Parts[i+1:] {
		if part.IsLiteral() {
			next = part.Literal
			break
		}
	}
	rest := input[start:]
	if next == "" {
		return rest, false
	}
	end := strings.Index(rest, next)
	if end < 0 {
		return rest, false
	}
	return rest[:end], true
}

func pending(t *template.Template, i int, ctx template.Context, p *template.Parameter,
	prefix, value string, suggestions []string, needsInput bool) Result {
	return Result{
		State:       ParameterPending,
		Template:    t,
		PartIndex:   i,
		Context:     ctx,
		Parameter:   p,
		Prefix:      prefix,
		Value:       value,
		Suggestions: suggestions,
		NeedsInput:  needsInput,
	}
}
