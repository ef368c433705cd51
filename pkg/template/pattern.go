package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LookupFallback is the Lookup key used when the dependency value has no entry.
const LookupFallback = "*"

// Lookup maps a value of an earlier parameter to the options of a dependent
// parameter. It is the declarative form of a Dynamic option source.
type Lookup map[string][]string

// Source returns a Dynamic source that reads dep from the Context.
func (l Lookup) Source(dep string) Source {
	table := make(map[string][]string, len(l))
	for k, v := range l {
		table[k] = append([]string(nil), v...)
	}
	return Dynamic(func(ctx Context) []string {
		opts, ok := table[ctx[dep]]
		if !ok {
			opts = table[LookupFallback]
		}
		return append([]string(nil), opts...)
	})
}

var (
	numberDecl  = regexp.MustCompile(`^number(?:\s+(-?\d+(?:\.\d+)?)\s*-\s*(-?\d+(?:\.\d+)?))?$`)
	dependsDecl = regexp.MustCompile(`^options\(\s*([A-Za-z_][A-Za-z0-9_]*)\s*\)$`)
)

// ParsePattern compiles the compact template notation into a Template.
//
// Text outside braces is literal; "{{" and "}}" escape braces. Inside braces a
// parameter is written as name:decl where decl is one of
//
//	a|b|c              options, in declaration order
//	number             a decimal number
//	number MIN-MAX     a decimal number within inclusive bounds
//	text               free text (also the meaning of a bare {name})
//	options(dep)       options taken from lookups[name], keyed by the value of dep
//
// Every parameter declared this way is required. A dependency must be declared
// earlier in the pattern.
func ParsePattern(id, pattern string, lookups map[string]Lookup) (*Template, error) {
	t := &Template{ID: id, Name: id}
	declared := make(map[string]bool)
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.Parts = append(t.Parts, Lit(lit.String()))
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '{':
			if i+1 < len(pattern) && pattern[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(pattern[i+1:], '}')
			if end < 0 {
				return nil, patternError(id, len(t.Parts), fmt.Errorf("%w: unclosed '{' at offset %d", ErrInvalidPattern, i))
			}
			flush()
			p, err := parseParameter(pattern[i+1:i+1+end], declared, lookups)
			if err != nil {
				return nil, patternError(id, len(t.Parts), err)
			}
			t.Parts = append(t.Parts, Param(p))
			declared[p.Name] = true
			i += end + 1
		case '}':
			if i+1 < len(pattern) && pattern[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, patternError(id, len(t.Parts), fmt.Errorf("%w: unmatched '}' at offset %d", ErrInvalidPattern, i))
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	if err := t.Check(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustParsePattern is like ParsePattern but panics on error.
func MustParsePattern(id, pattern string, lookups map[string]Lookup) *Template {
	t, err := ParsePattern(id, pattern, lookups)
	if err != nil {
		panic(err)
	}
	return t
}

func patternError(id string, part int, err error) error {
	return &DefinitionError{TemplateID: id, Part: part, Err: err}
}

func parseParameter(body string, declared map[string]bool, lookups map[string]Lookup) (*Parameter, error) {
	name, decl, _ := strings.Cut(body, ":")
	name = strings.TrimSpace(name)
	decl = strings.TrimSpace(decl)
	if name == "" {
		return nil, fmt.Errorf("%w: parameter without a name in {%s}", ErrInvalidPattern, body)
	}

	p := &Parameter{Name: name, Rules: &Rules{Required: true}}

	switch {
	case decl == "" || decl == "text":
		p.Kind = KindText
	case decl == "custom":
		return nil, fmt.Errorf("%w: custom parameter %q needs a predicate and cannot be declared in a pattern", ErrInvalidPattern, name)
	case numberDecl.MatchString(decl):
		p.Kind = KindNumber
		m := numberDecl.FindStringSubmatch(decl)
		if m[1] != "" {
			lo, _ := strconv.ParseFloat(m[1], 64)
			hi, _ := strconv.ParseFloat(m[2], 64)
			if lo > hi {
				return nil, fmt.Errorf("%w: %q has min %s above max %s", ErrInvalidPattern, name, m[1], m[2])
			}
			p.Rules.Min = Float(lo)
			p.Rules.Max = Float(hi)
		}
	case dependsDecl.MatchString(decl):
		dep := dependsDecl.FindStringSubmatch(decl)[1]
		if !declared[dep] {
			return nil, fmt.Errorf("%w: %q reads %q", ErrForwardReference, name, dep)
		}
		table, ok := lookups[name]
		if !ok {
			return nil, fmt.Errorf("%w: no lookup table for %q", ErrInvalidPattern, name)
		}
		p.Kind = KindOptions
		p.Options = table.Source(dep)
	default:
		var opts []string
		for _, opt := range strings.Split(decl, "|") {
			opt = strings.TrimSpace(opt)
			if opt == "" {
				return nil, fmt.Errorf("%w: empty option in {%s}", ErrInvalidPattern, body)
			}
			opts = append(opts, opt)
		}
		p.Kind = KindOptions
		p.Options = Static(opts...)
	}
	return p, nil
}
