package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlTemplates = `
[[template]]
id = "mug"
name = "Mug"
example = "Make a mug 90 mm tall"
pattern = "Make a mug {height:number 50-200} mm tall"

[template.params.height]
description = "Height of the mug"
suggestions = ["80", "100"]

[[template]]
id = "plate"
description = "Flat plate"

[[template.part]]
text = "Make a plate in "

[[template.part]]
param = "material"
options = ["steel", "aluminium"]

[[template.part]]
text = " with "

[[template.part]]
param = "finish"
options_from = "material"
options_by = { steel = ["brushed", "painted"], "*" = ["raw"] }

[[template]]
id = "broken"

[[template.part]]
param = "unit"
kind = "options"
`

const yamlTemplates = `
templates:
  - id: label
    parts:
      - text: "Engrave "
      - param: label
        kind: text
        required: true
        min_length: 2
        max_length: 12
        regex: "^[A-Za-z0-9 ]+$"
      - text: " on the lid"
  - id: shape
    pattern: "Draw a {shape:circle|square} sized {kind:options(shape)}"
    lookup:
      kind:
        circle: [radius]
        "*": [side]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFileTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cad.toml", tomlTemplates)

	templates, err := LoadFile(path)
	require.Error(t, err, "the broken template must be reported")
	assert.ErrorIs(t, err, ErrMissingOptions)
	var defErr *DefinitionError
	require.True(t, errors.As(err, &defErr))
	assert.Equal(t, "broken", defErr.TemplateID)

	require.Len(t, templates, 2)

	mug := templates[0]
	assert.Equal(t, "Mug", mug.Name)
	height := mug.Parameters()[0]
	assert.Equal(t, "Height of the mug", height.Description)
	assert.Equal(t, []string{"80", "100"}, height.Suggestions.Eval(nil))
	assert.Equal(t, 50.0, *height.Rules.Min)

	plate := templates[1]
	assert.Equal(t, "plate", plate.Name)
	finish := plate.Parameters()[1]
	assert.Equal(t, KindOptions, finish.Kind)
	assert.Equal(t, []string{"brushed", "painted"}, finish.Options.Eval(Context{"material": "steel"}))
	assert.Equal(t, []string{"raw"}, finish.Options.Eval(Context{"material": "aluminium"}))
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cad.yaml", yamlTemplates)

	templates, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, templates, 2)

	label := templates[0].Parameters()[0]
	assert.Equal(t, KindText, label.Kind)
	require.NotNil(t, label.Rules)
	assert.True(t, label.Rules.Required)
	assert.Equal(t, 2, *label.Rules.MinLength)
	assert.Equal(t, 12, *label.Rules.MaxLength)
	assert.True(t, label.Rules.Pattern.MatchString("Hello 1"))

	kind := templates[1].Parameters()[1]
	assert.Equal(t, []string{"radius"}, kind.Options.Eval(Context{"shape": "circle"}))
}

func TestLoadFileRejectsForwardReference(t *testing.T) {
	content := `
[[template]]
id = "fwd"
[[template.part]]
param = "finish"
options_from = "material"
options_by = { "*" = ["raw"] }
[[template.part]]
text = " in "
[[template.part]]
param = "material"
options = ["steel"]
`
	path := writeFile(t, t.TempDir(), "fwd.toml", content)
	templates, err := LoadFile(path)
	assert.Empty(t, templates)
	assert.ErrorIs(t, err, ErrForwardReference)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(writeFile(t, dir, "notes.txt", "hello"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, dir, "bad.toml", "[[template]\nid="))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestLoadDirOrderAndSkips(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", yamlTemplates)
	writeFile(t, dir, "a.toml", tomlTemplates)
	writeFile(t, dir, "readme.md", "# not a template")

	templates, err := LoadDir(dir)
	assert.Error(t, err, "a.toml carries a broken template")

	var ids []string
	for _, tmpl := range templates {
		ids = append(ids, tmpl.ID)
	}
	assert.Equal(t, []string{"mug", "plate", "label", "shape"}, ids)

	reg, err := NewRegistry(templates...)
	require.NoError(t, err)
	assert.Equal(t, 4, reg.Len())
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	format, err := DetectFileFormat(writeFile(t, dir, "x.yml", "templates: []"))
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, format)

	format, err = DetectFileFormat(writeFile(t, dir, "x.toml", "# empty"))
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, format)

	_, err = DetectFileFormat(writeFile(t, dir, "empty.toml", ""))
	assert.Error(t, err)

	assert.True(t, IsTemplateFile("A.YAML"))
	assert.False(t, IsTemplateFile("a.json"))
}
