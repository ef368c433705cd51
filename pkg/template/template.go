/*
Package template defines the declarative fill-in-the-blank templates that the
matching engine recognizes while a user types.

A Template is an ordered sequence of Parts. Each Part is either a Literal, an
exact case-sensitive fragment that must appear verbatim, or a Parameter, a
named blank whose value is recovered from the input text:

	t := &template.Template{
		ID:   "basic-shape",
		Name: "3D Shape Generator",
		Parts: []template.Part{
			template.Lit("Generate a "),
			template.Param(&template.Parameter{
				Name:    "shape",
				Kind:    template.KindOptions,
				Options: template.Static("cube", "sphere", "cylinder", "cone"),
			}),
		},
	}

Part order is the only valid token order. Templates are collected into a
Registry once at startup and never change afterwards; the order of templates in
the Registry is their matching priority, the first template consistent with the
input wins.

Option and suggestion lists come from a Source, which is either a static list or
a function of the Context built so far. A Source function may only read
parameters that occur strictly earlier in the template.
*/
package template

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies how a parameter value is entered.
type Kind int

const (
	// KindOptions restricts the value to an enumerated option list.
	KindOptions Kind = iota
	// KindNumber accepts a decimal number, optionally bounded.
	KindNumber
	// KindText accepts free text.
	KindText
	// KindCustom accepts free text checked by a custom rule.
	KindCustom
)

var kindNames = map[Kind]string{
	KindOptions: "options",
	KindNumber:  "number",
	KindText:    "text",
	KindCustom:  "custom",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a kind name as written in template files to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown parameter kind %q", s)
}

// IsFreeText reports whether values of this kind are typed rather than picked.
func (k Kind) IsFreeText() bool {
	return k != KindOptions
}

// Context maps parameter names to the values resolved so far.
type Context map[string]string

// Clone returns an independent copy of c.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Source is either a static list or a function of the Context.
// The zero Source is absent.
type Source struct {
	list []string
	fn   func(Context) []string
}

// Static returns a Source backed by a fixed list.
func Static(values ...string) Source {
	list := make([]string, len(values))
	copy(list, values)
	return Source{list: list}
}

// Dynamic returns a Source computed from the Context on every lookup.
func Dynamic(fn func(Context) []string) Source {
	return Source{fn: fn}
}

// IsZero reports whether no source was configured.
func (s Source) IsZero() bool {
	return s.fn == nil && s.list == nil
}

// IsDynamic reports whether s depends on the Context.
func (s Source) IsDynamic() bool {
	return s.fn != nil
}

// Eval returns the values of s for ctx. It does not guard against panics in
// dynamic sources; see suggest.ResolveOptions for the fail-safe path.
func (s Source) Eval(ctx Context) []string {
	if s.fn != nil {
		return s.fn(ctx)
	}
	out := make([]string, len(s.list))
	copy(out, s.list)
	return out
}

// Rules are the validation constraints of a parameter. Nil pointers are unset.
type Rules struct {
	Required  bool
	Min       *float64
	Max       *float64
	Pattern   *regexp.Regexp
	MinLength *int
	MaxLength *int
	Custom    func(value string, ctx Context) bool
}

// Float returns a pointer to v, for Rules.Min and Rules.Max.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for Rules.MinLength and Rules.MaxLength.
func Int(v int) *int { return &v }

// Parameter is a named blank in a template.
type Parameter struct {
	Name        string
	Kind        Kind
	Options     Source
	Suggestions Source
	Rules       *Rules
	Placeholder string
	Description string
}

// Part is one element of a template: a literal when Param is nil, otherwise a parameter.
type Part struct {
	Literal string
	Param   *Parameter
}

// Lit returns a literal part.
func Lit(text string) Part { return Part{Literal: text} }

// Param returns a parameter part.
func Param(p *Parameter) Part { return Part{Param: p} }

// IsLiteral reports whether the part is literal text.
func (p Part) IsLiteral() bool { return p.Param == nil }

// Template is one accepted input shape.
type Template struct {
	ID          string
	Name        string
	Description string
	Example     string
	Parts       []Part
}

// Parameters returns the parameter parts in template order.
func (t *Template) Parameters() []*Parameter {
	var params []*Parameter
	for _, part := range t.Parts {
		if !part.IsLiteral() {
			params = append(params, part.Param)
		}
	}
	return params
}

// Instantiate concatenates the template parts, substituting parameters with
// their values in ctx. Missing values are substituted with the empty string.
func (t *Template) Instantiate(ctx Context) string {
	var b strings.Builder
	for _, part := range t.Parts {
		if part.IsLiteral() {
			b.WriteString(part.Literal)
			continue
		}
		b.WriteString(ctx[part.Param.Name])
	}
	return b.String()
}

// String renders the template with parameters as {name} placeholders.
func (t *Template) String() string {
	var b strings.Builder
	for _, part := range t.Parts {
		if part.IsLiteral() {
			b.WriteString(part.Literal)
			continue
		}
		b.WriteString("{" + part.Param.Name + "}")
	}
	return b.String()
}

// Check reports the first definition error in t.
func (t *Template) Check() error {
	if t == nil {
		return &DefinitionError{Part: -1, Err: ErrNilTemplate}
	}
	if strings.TrimSpace(t.ID) == "" {
		return &DefinitionError{Part: -1, Err: ErrEmptyID}
	}
	if len(t.Parts) == 0 {
		return &DefinitionError{TemplateID: t.ID, Part: -1, Err: ErrNoParts}
	}
	seen := make(map[string]bool)
	for i, part := range t.Parts {
		if part.IsLiteral() {
			if part.Literal == "" {
				return &DefinitionError{TemplateID: t.ID, Part: i, Err: ErrEmptyLiteral}
			}
			continue
		}
		p := part.Param
		if strings.TrimSpace(p.Name) == "" {
			return &DefinitionError{TemplateID: t.ID, Part: i, Err: ErrEmptyName}
		}
		if seen[p.Name] {
			return &DefinitionError{TemplateID: t.ID, Part: i, Parameter: p.Name, Err: ErrDuplicateParameter}
		}
		seen[p.Name] = true
		if p.Kind == KindOptions && p.Options.IsZero() {
			return &DefinitionError{TemplateID: t.ID, Part: i, Parameter: p.Name, Err: ErrMissingOptions}
		}
		if _, ok := kindNames[p.Kind]; !ok {
			return &DefinitionError{TemplateID: t.ID, Part: i, Parameter: p.Name, Err: ErrUnknownKind}
		}
	}
	return nil
}
