package server

import (
	"bytes"
	"testing"

	"github.com/bastiangx/cadprompt/pkg/config"
	"github.com/bastiangx/cadprompt/pkg/match"
	"github.com/bastiangx/cadprompt/pkg/template"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// run feeds requests through a fresh server and returns a decoder over its
// output, positioned after the ready message.
func run(t *testing.T, requests ...any) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		require.NoError(t, enc.Encode(r))
	}

	reg, err := template.NewRegistry(template.Builtin()...)
	require.NoError(t, err)
	cfg := config.DefaultConfig().Server
	cfg.MaxInput = 64
	srv := NewServerWithIO(match.NewPlanner(reg, 8), cfg, "test", &in, &out)
	require.NoError(t, srv.Start())

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready.Status)
	assert.Equal(t, "test", ready.Version)
	return dec
}

func TestServerPlan(t *testing.T) {
	dec := run(t, Request{ID: "req_001", Input: "Generate a sphere with 5 cm ", Limit: 4})

	var resp PlanResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "req_001", resp.ID)
	assert.Equal(t, "basic-shape", resp.Template)
	assert.Equal(t, "parameter", resp.State)
	assert.Equal(t, 7, resp.Part)
	assert.Equal(t, "type", resp.Parameter)
	assert.Equal(t, []Suggestion{{Text: "radius", Rank: 1}}, resp.Suggestions)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "sphere", resp.Context["shape"])
	assert.False(t, resp.Complete)
}

func TestServerPlanLimitAndValidation(t *testing.T) {
	dec := run(t,
		Request{ID: "a", Action: ActionPlan, Input: "Generate a ", Limit: 2},
		Request{ID: "b", Input: "Generate a cube with -5 cm sides"},
	)

	var limited PlanResponse
	require.NoError(t, dec.Decode(&limited))
	assert.Equal(t, []Suggestion{{"cube", 1}, {"sphere", 2}}, limited.Suggestions)

	var invalid PlanResponse
	require.NoError(t, dec.Decode(&invalid))
	assert.True(t, invalid.Complete)
	assert.Equal(t, "dimension must be at least 0.1", invalid.Error)
	assert.Equal(t, "dimension", invalid.Invalid)
}

func TestServerSelect(t *testing.T) {
	dec := run(t, Request{ID: "sel", Action: ActionSelect, Input: "Generate a sph", Choice: "sphere"})

	var resp PlanResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "Generate a sphere", resp.Text)
	assert.Equal(t, "literal", resp.State)
	assert.Equal(t, "Generate a sphere", resp.Prefix)
}

func TestServerNoMatch(t *testing.T) {
	dec := run(t, Request{ID: "nm", Input: "Hello there"})

	var resp PlanResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "no-match", resp.State)
	assert.Empty(t, resp.Template)
	assert.Empty(t, resp.Suggestions)
	assert.Empty(t, resp.Error)
}

func TestServerTemplatesAndHealth(t *testing.T) {
	dec := run(t,
		Request{ID: "t", Action: ActionTemplates},
		Request{ID: "h", Action: ActionHealth},
	)

	var list TemplatesResponse
	require.NoError(t, dec.Decode(&list))
	require.Len(t, list.Templates, 3)
	assert.Equal(t, "basic-shape", list.Templates[0].ID)
	assert.Equal(t, "Generate a {shape} with {dimension} {unit} {type}", list.Templates[0].Pattern)
	assert.Equal(t, []string{"shape", "dimension", "unit", "type"}, list.Templates[0].Parameters)

	var health HealthResponse
	require.NoError(t, dec.Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 3, health.Stats["templates"])
	assert.Equal(t, 8, health.Stats["maxSuggestions"])
	assert.Equal(t, 2, health.Requests)
}

func TestServerErrors(t *testing.T) {
	dec := run(t,
		Request{ID: "x", Action: "explode"},
		Request{ID: "long", Input: string(bytes.Repeat([]byte("a"), 65))},
		Request{ID: "sel", Action: ActionSelect, Input: "Generate a "},
		42,
		Request{ID: "after", Input: "Generate a "},
	)

	var unknown ErrorResponse
	require.NoError(t, dec.Decode(&unknown))
	assert.Equal(t, "x", unknown.ID)
	assert.Equal(t, 400, unknown.Code)
	assert.Contains(t, unknown.Error, "explode")

	var tooLong ErrorResponse
	require.NoError(t, dec.Decode(&tooLong))
	assert.Equal(t, 413, tooLong.Code)

	var missingChoice ErrorResponse
	require.NoError(t, dec.Decode(&missingChoice))
	assert.Equal(t, 400, missingChoice.Code)

	var malformed ErrorResponse
	require.NoError(t, dec.Decode(&malformed))
	assert.Equal(t, "Invalid msgpack request", malformed.Error)

	var after PlanResponse
	require.NoError(t, dec.Decode(&after))
	assert.Equal(t, "after", after.ID, "the server keeps serving after a bad request")
}

func TestServerGeneratesMissingIDs(t *testing.T) {
	dec := run(t, Request{Input: "Generate a "})

	var resp PlanResponse
	require.NoError(t, dec.Decode(&resp))
	_, err := uuid.Parse(resp.ID)
	assert.NoError(t, err)
}
