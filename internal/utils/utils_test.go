package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe(t *testing.T) {
	in := []string{"mm", "", "cm", "mm", "in", "cm"}
	assert.Equal(t, []string{"mm", "cm", "in"}, Dedupe(in))
	assert.Equal(t, []string{"mm", "", "cm", "mm", "in", "cm"}, in)
	assert.Empty(t, Dedupe(nil))
}

func TestSuggestionFilterCaseSensitive(t *testing.T) {
	f := NewSuggestionFilter()
	assert.True(t, f.ShouldInclude("MM"))
	assert.True(t, f.ShouldInclude("mm"))
	assert.False(t, f.ShouldInclude("mm"))
	assert.False(t, f.ShouldInclude(""))
}

func TestCreateRankList(t *testing.T) {
	assert.Equal(t, []uint16{1, 2, 3}, CreateRankList(3))
	assert.Empty(t, CreateRankList(0))
	assert.Empty(t, CreateRankList(-1))
}

func TestExtractors(t *testing.T) {
	var data map[string]any
	_, err := toml.Decode(`
[templates]
dir = "shapes"
files = ["a.toml", "b.yaml"]
mixed = ["a", 1]

[engine]
max_suggestions = 5
builtin_templates = false
`, &data)
	require.NoError(t, err)

	tpl, ok := ExtractSection(data, "templates")
	require.True(t, ok)
	dir, ok := ExtractString(tpl, "dir")
	assert.True(t, ok)
	assert.Equal(t, "shapes", dir)

	files, ok := ExtractStrings(tpl, "files")
	assert.True(t, ok)
	assert.Equal(t, []string{"a.toml", "b.yaml"}, files)

	_, ok = ExtractStrings(tpl, "mixed")
	assert.False(t, ok)
	_, ok = ExtractStrings(tpl, "missing")
	assert.False(t, ok)

	engine, ok := ExtractSection(data, "engine")
	require.True(t, ok)
	n, ok := ExtractInt64(engine, "max_suggestions")
	assert.True(t, ok)
	assert.Equal(t, 5, n)
	b, ok := ExtractBool(engine, "builtin_templates")
	assert.True(t, ok)
	assert.False(t, b)

	_, ok = ExtractInt64(engine, "builtin_templates")
	assert.False(t, ok)
	_, ok = ExtractSection(data, "server")
	assert.False(t, ok)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "cad", "gears.toml"), ExpandHome("~/cad/gears.toml"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestSaveAndLoadTOMLFile(t *testing.T) {
	type section struct {
		Dir   string   `toml:"dir"`
		Files []string `toml:"files"`
	}
	type doc struct {
		Templates section `toml:"templates"`
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	want := doc{Templates: section{Dir: "shapes", Files: []string{"a.toml"}}}
	require.NoError(t, SaveTOMLFile(want, path))

	var got doc
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestParseTOMLWithRecovery(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte("[cli]\ncolor = false\n"), 0644))
	data, err := ParseTOMLWithRecovery(good)
	require.NoError(t, err)
	cli, ok := ExtractSection(data, "cli")
	require.True(t, ok)
	assert.Equal(t, false, cli["color"])

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[cli\ncolor = "), 0644))
	_, err = ParseTOMLWithRecovery(bad)
	assert.Error(t, err)

	_, err = ParseTOMLWithRecovery(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestTemplateDir(t *testing.T) {
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	pr, err := NewPathResolver("cadprompt-test")
	require.NoError(t, err)

	user := t.TempDir()
	assert.Equal(t, "", pr.TemplateDir(user), "empty dir is not a template dir")

	require.NoError(t, os.WriteFile(filepath.Join(user, "notes.txt"), nil, 0644))
	assert.Equal(t, "", pr.TemplateDir(user))

	require.NoError(t, os.WriteFile(filepath.Join(user, "gears.YAML"), nil, 0644))
	assert.Equal(t, user, pr.TemplateDir(user))

	defaultDir := filepath.Join(cfgHome, "cadprompt-test", "templates")
	require.NoError(t, os.MkdirAll(defaultDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(defaultDir, "mine.toml"), nil, 0644))
	assert.Equal(t, defaultDir, pr.TemplateDir(""))
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	res := CheckDirStatus(dir)
	require.NoError(t, res.Error)
	assert.True(t, res.Exists)
	assert.True(t, res.Writable)
	assert.True(t, FileExists(dir))
}
