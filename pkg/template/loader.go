package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// fileDocument is the on-disk layout shared by TOML and YAML template files.
//
//	[[template]]
//	id = "mug"
//	pattern = "Make a mug {height:number 50-200} mm tall"
//
//	[[template]]
//	id = "plate"
//	[[template.part]]
//	text = "Make a plate in "
//	[[template.part]]
//	param = "material"
//	options = ["steel", "aluminium"]
type fileDocument struct {
	Templates []fileTemplate `toml:"template" yaml:"templates"`
}

type fileTemplate struct {
	ID          string                         `toml:"id" yaml:"id"`
	Name        string                         `toml:"name" yaml:"name"`
	Description string                         `toml:"description" yaml:"description"`
	Example     string                         `toml:"example" yaml:"example"`
	Pattern     string                         `toml:"pattern" yaml:"pattern"`
	Lookup      map[string]map[string][]string `toml:"lookup" yaml:"lookup"`
	Params      map[string]filePart            `toml:"params" yaml:"params"`
	Parts       []filePart                     `toml:"part" yaml:"parts"`
}

// filePart is either a literal (text) or a parameter (param). In the params
// table of a pattern template only the descriptive and rule fields apply.
type filePart struct {
	Text        string              `toml:"text" yaml:"text"`
	Param       string              `toml:"param" yaml:"param"`
	Kind        string              `toml:"kind" yaml:"kind"`
	Options     []string            `toml:"options" yaml:"options"`
	OptionsFrom string              `toml:"options_from" yaml:"options_from"`
	OptionsBy   map[string][]string `toml:"options_by" yaml:"options_by"`
	Suggestions []string            `toml:"suggestions" yaml:"suggestions"`
	Description string              `toml:"description" yaml:"description"`
	Placeholder string              `toml:"placeholder" yaml:"placeholder"`
	Required    *bool               `toml:"required" yaml:"required"`
	Min         *float64            `toml:"min" yaml:"min"`
	Max         *float64            `toml:"max" yaml:"max"`
	Regex       string              `toml:"regex" yaml:"regex"`
	MinLength   *int                `toml:"min_length" yaml:"min_length"`
	MaxLength   *int                `toml:"max_length" yaml:"max_length"`
}

// LoadFile reads the templates of a TOML or YAML file. Templates with a
// definition error are skipped; the well-formed ones are returned even when
// err is non-nil, and err then joins one *DefinitionError per skipped template.
// I/O and decoding failures return no templates.
func LoadFile(path string) ([]*Template, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", path, err)
	}

	var doc fileDocument
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			log.Warnf("Ignoring unknown keys in %s: %v", path, undecoded)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	var templates []*Template
	var errs []error
	for _, ft := range doc.Templates {
		t, err := ft.build()
		if err != nil {
			log.Warnf("Skipping template in %s: %v", path, err)
			errs = append(errs, err)
			continue
		}
		templates = append(templates, t)
	}
	log.Debugf("Loaded %d templates from %s", len(templates), path)
	return templates, errors.Join(errs...)
}

// LoadDir loads every template file in dir, in file name order.
func LoadDir(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read template dir %s: %w", dir, err)
	}
	var templates []*Template
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !IsTemplateFile(entry.Name()) {
			continue
		}
		loaded, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			errs = append(errs, err)
		}
		templates = append(templates, loaded...)
	}
	return templates, errors.Join(errs...)
}

func (ft fileTemplate) build() (*Template, error) {
	var t *Template
	switch {
	case ft.Pattern != "" && len(ft.Parts) > 0:
		return nil, &DefinitionError{TemplateID: ft.ID, Part: -1,
			Err: fmt.Errorf("%w: both pattern and parts are set", ErrInvalidPattern)}
	case ft.Pattern != "":
		lookups := make(map[string]Lookup, len(ft.Lookup))
		for name, table := range ft.Lookup {
			lookups[name] = Lookup(table)
		}
		parsed, err := ParsePattern(ft.ID, ft.Pattern, lookups)
		if err != nil {
			return nil, err
		}
		for i, part := range parsed.Parts {
			if part.IsLiteral() {
				continue
			}
			if extra, ok := ft.Params[part.Param.Name]; ok {
				if err := extra.apply(part.Param); err != nil {
					return nil, &DefinitionError{TemplateID: ft.ID, Part: i, Parameter: part.Param.Name, Err: err}
				}
			}
		}
		t = parsed
	default:
		t = &Template{ID: ft.ID}
		declared := make(map[string]bool)
		for i, fp := range ft.Parts {
			if fp.Param == "" {
				t.Parts = append(t.Parts, Lit(fp.Text))
				continue
			}
			if fp.Text != "" {
				return nil, &DefinitionError{TemplateID: ft.ID, Part: i, Parameter: fp.Param,
					Err: fmt.Errorf("%w: part sets both text and param", ErrInvalidPattern)}
			}
			p, err := fp.parameter(declared)
			if err != nil {
				return nil, &DefinitionError{TemplateID: ft.ID, Part: i, Parameter: fp.Param, Err: err}
			}
			t.Parts = append(t.Parts, Param(p))
			declared[p.Name] = true
		}
	}

	t.Name = ft.Name
	if t.Name == "" {
		t.Name = ft.ID
	}
	t.Description = ft.Description
	t.Example = ft.Example
	if err := t.Check(); err != nil {
		return nil, err
	}
	return t, nil
}

func (fp filePart) parameter(declared map[string]bool) (*Parameter, error) {
	p := &Parameter{Name: fp.Param, Kind: KindText}
	switch {
	case fp.Kind != "":
		kind, err := ParseKind(fp.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownKind, err)
		}
		p.Kind = kind
	case fp.Options != nil || fp.OptionsFrom != "":
		p.Kind = KindOptions
	}

	switch {
	case fp.OptionsFrom != "":
		if !declared[fp.OptionsFrom] {
			return nil, fmt.Errorf("%w: %q reads %q", ErrForwardReference, fp.Param, fp.OptionsFrom)
		}
		p.Options = Lookup(fp.OptionsBy).Source(fp.OptionsFrom)
	case fp.Options != nil:
		p.Options = Static(fp.Options...)
	}

	if err := fp.apply(p); err != nil {
		return nil, err
	}
	return p, nil
}

// apply copies the descriptive and rule fields onto p.
func (fp filePart) apply(p *Parameter) error {
	if fp.Description != "" {
		p.Description = fp.Description
	}
	if fp.Placeholder != "" {
		p.Placeholder = fp.Placeholder
	}
	if fp.Suggestions != nil {
		p.Suggestions = Static(fp.Suggestions...)
	}

	if fp.Required == nil && fp.Min == nil && fp.Max == nil && fp.Regex == "" &&
		fp.MinLength == nil && fp.MaxLength == nil {
		return nil
	}
	if p.Rules == nil {
		p.Rules = &Rules{}
	}
	if fp.Required != nil {
		p.Rules.Required = *fp.Required
	}
	if fp.Min != nil {
		p.Rules.Min = Float(*fp.Min)
	}
	if fp.Max != nil {
		p.Rules.Max = Float(*fp.Max)
	}
	if fp.Regex != "" {
		re, err := regexp.Compile(fp.Regex)
		if err != nil {
			return fmt.Errorf("%w: bad regex %q: %v", ErrInvalidPattern, fp.Regex, err)
		}
		p.Rules.Pattern = re
	}
	if fp.MinLength != nil {
		p.Rules.MinLength = Int(*fp.MinLength)
	}
	if fp.MaxLength != nil {
		p.Rules.MaxLength = Int(*fp.MaxLength)
	}
	return nil
}
