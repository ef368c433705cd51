package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapePattern = "Generate a {shape:cube|sphere|cylinder|cone} with {dimension:number 0.1-1000} {unit:cm|mm|m|inches} {type:options(shape)}"

func TestParsePatternBasicShape(t *testing.T) {
	tmpl, err := ParsePattern("basic-shape", shapePattern, map[string]Lookup{"type": shapeDimensions})
	require.NoError(t, err)
	require.Len(t, tmpl.Parts, 8)

	assert.Equal(t, "Generate a ", tmpl.Parts[0].Literal)

	shape := tmpl.Parts[1].Param
	require.NotNil(t, shape)
	assert.Equal(t, KindOptions, shape.Kind)
	assert.Equal(t, []string{"cube", "sphere", "cylinder", "cone"}, shape.Options.Eval(nil))

	dim := tmpl.Parts[3].Param
	require.NotNil(t, dim)
	assert.Equal(t, KindNumber, dim.Kind)
	require.NotNil(t, dim.Rules)
	assert.True(t, dim.Rules.Required)
	assert.Equal(t, 0.1, *dim.Rules.Min)
	assert.Equal(t, 1000.0, *dim.Rules.Max)

	kind := tmpl.Parts[7].Param
	require.NotNil(t, kind)
	assert.True(t, kind.Options.IsDynamic())
	assert.Equal(t, []string{"radius"}, kind.Options.Eval(Context{"shape": "sphere"}))
	assert.Equal(t, []string{"dimension"}, kind.Options.Eval(Context{}))

	assert.Equal(t, BasicShape().String(), tmpl.String())
}

func TestParsePatternForms(t *testing.T) {
	tmpl, err := ParsePattern("t", "Note {{raw}} {title} {n:number}", nil)
	require.NoError(t, err)
	require.Len(t, tmpl.Parts, 4)
	assert.Equal(t, "Note {raw} ", tmpl.Parts[0].Literal)
	assert.Equal(t, KindText, tmpl.Parts[1].Param.Kind)
	assert.Equal(t, " ", tmpl.Parts[2].Literal)
	assert.Equal(t, KindNumber, tmpl.Parts[3].Param.Kind)
	assert.Nil(t, tmpl.Parts[3].Param.Rules.Min)
}

func TestParsePatternErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		lookups map[string]Lookup
		want    error
	}{
		{"unclosed brace", "Make a {shape", nil, ErrInvalidPattern},
		{"stray closing brace", "Make a } box", nil, ErrInvalidPattern},
		{"missing name", "Make a {:a|b}", nil, ErrInvalidPattern},
		{"empty option", "Make a {shape:a||b}", nil, ErrInvalidPattern},
		{"custom kind", "Make a {x:custom}", nil, ErrInvalidPattern},
		{"inverted bounds", "Size {n:number 10-1}", nil, ErrInvalidPattern},
		{"forward reference", "{type:options(shape)} {shape:cube}", map[string]Lookup{"type": shapeDimensions}, ErrForwardReference},
		{"missing lookup", "{shape:cube} {type:options(shape)}", nil, ErrInvalidPattern},
		{"duplicate names", "{a:x|y} {a:z}", nil, ErrDuplicateParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePattern("t", tt.pattern, tt.lookups)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLookupSourceIsolatedFromTable(t *testing.T) {
	table := Lookup{"a": {"x"}}
	src := table.Source("dep")
	table["a"][0] = "changed"
	assert.Equal(t, []string{"x"}, src.Eval(Context{"dep": "a"}))
	assert.Empty(t, src.Eval(Context{"dep": "b"}))
}

func TestBuiltinTemplatesAreWellFormed(t *testing.T) {
	for _, tmpl := range Builtin() {
		assert.NoError(t, tmpl.Check(), tmpl.ID)
		assert.NotEmpty(t, tmpl.Example, tmpl.ID)
	}

	gear := SpurGear()
	teeth := gear.Parameters()[0]
	require.Equal(t, "teeth", teeth.Name)
	require.NotNil(t, teeth.Rules.Custom)
	assert.True(t, teeth.Rules.Custom("24", nil))
	assert.False(t, teeth.Rules.Custom("24.5", nil))
}
