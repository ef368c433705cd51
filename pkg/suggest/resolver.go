// Package suggest resolves the option and suggestion lists of template
// parameters and narrows them to what the user has typed so far.
//
// Option functions are supplied by template authors and are treated as
// untrusted: a panic inside one is recovered and yields an empty list, so a
// malformed function can never take down the matching engine.
package suggest

import (
	"github.com/bastiangx/cadprompt/internal/utils"
	"github.com/bastiangx/cadprompt/pkg/template"
	"github.com/charmbracelet/log"
)

// ResolveOptions returns the enumeration of valid values for an Options
// parameter, evaluated against ctx. Other kinds have no enumeration and yield
// an empty list.
func ResolveOptions(p *template.Parameter, ctx template.Context) []string {
	if p == nil || p.Kind != template.KindOptions {
		return []string{}
	}
	return safeEval(p.Name, p.Options, ctx)
}

// ResolveSuggestions returns the values worth offering for p. For Options
// parameters it is identical to ResolveOptions; for free-text kinds it is the
// configured suggestion list, which does not restrict input.
func ResolveSuggestions(p *template.Parameter, ctx template.Context) []string {
	if p == nil {
		return []string{}
	}
	if p.Kind == template.KindOptions {
		return ResolveOptions(p, ctx)
	}
	return safeEval(p.Name, p.Suggestions, ctx)
}

// safeEval evaluates src with a private copy of ctx and recovers panics.
// Empty and repeated values are dropped.
func safeEval(name string, src template.Source, ctx template.Context) (values []string) {
	if src.IsZero() {
		return []string{}
	}
	defer func() {
		if r := recover(); r != nil {
			log.Debugf("Option source for %q panicked: %v", name, r)
			values = []string{}
		}
	}()
	return utils.Dedupe(src.Eval(ctx.Clone()))
}
