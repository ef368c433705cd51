package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/cadprompt/internal/render"
	"github.com/bastiangx/cadprompt/pkg/match"
	"github.com/bastiangx/cadprompt/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, opts Options, lines ...string) string {
	t.Helper()
	reg, err := template.NewRegistry(template.Builtin()...)
	require.NoError(t, err)
	opts.Styles = render.NewStyles(false)

	var out bytes.Buffer
	h := NewInputHandler(match.NewPlanner(reg, 8), opts, strings.NewReader(strings.Join(lines, "\n")), &out)
	require.NoError(t, h.Start())
	return out.String()
}

func TestInputHandlerKeepsTrailingSpace(t *testing.T) {
	out := runCLI(t, Options{ShowPreview: true}, "Generate a sphere with 5 cm ")

	assert.Contains(t, out, "Generate a sphere with 5 cm {type}")
	assert.Contains(t, out, " 1. radius")
}

func TestInputHandlerPicksSuggestion(t *testing.T) {
	out := runCLI(t, Options{}, "Generate a sph", "/1", "/9")

	assert.Contains(t, out, "> Generate a sphere\n")
	assert.Contains(t, out, "basic-shape: keep typing")
	assert.Contains(t, out, "no suggestion 9")
}

func TestInputHandlerReportsValidation(t *testing.T) {
	out := runCLI(t, Options{}, "Generate a cube with -5 cm sides", "Hello there")

	assert.Contains(t, out, "! dimension must be at least 0.1")
	assert.Contains(t, out, "free text")
}

func TestInputHandlerQuits(t *testing.T) {
	out := runCLI(t, Options{}, "/q", "Generate a ")
	assert.NotContains(t, out, "cube")
}

func TestInputHandlerMaxInput(t *testing.T) {
	out := runCLI(t, Options{MaxInput: 5}, "Generate a ")
	assert.NotContains(t, out, "cube")
}
