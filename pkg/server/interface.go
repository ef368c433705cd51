/*
Package server implements msgpack IPC for template-aware prompt completion.

Clients such as an editor plugin or a chat front end spawn the process and
write msgpack-encoded requests to its stdin. Every request gets exactly one
msgpack-encoded response on stdout. Logs go to stderr only.

# IPC

Each request carries an ID and an action. A plan request sends the current
input text:

	{"id": "req_001", "action": "plan", "i": "Generate a sphere with 5 cm ", "l": 8}

The response describes the match for that text:

	{"id": "req_001", "tpl": "basic-shape", "st": "parameter", "pi": 7, "param": "type",
	 "pre": "Generate a sphere with 5 cm ", "s": [{"w": "radius", "r": 1}], "c": 1, "t": 42}

An empty action means plan. A select request applies a chosen suggestion and
returns the plan for the resulting text in "text":

	{"id": "req_002", "action": "select", "i": "Generate a sph", "c": "sphere"}

"templates" lists the loaded templates and "health" reports engine counts.
A request without an ID is answered with a generated UUID.

# Message Types

Request is the single inbound message. PlanResponse, TemplatesResponse,
HealthResponse and ErrorResponse are the outbound messages; StatusResponse
is written once at startup.
*/
package server

// Actions understood by the server.
const (
	ActionPlan      = "plan"
	ActionSelect    = "select"
	ActionTemplates = "templates"
	ActionHealth    = "health"
)

// Request is an inbound message.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Input  string `msgpack:"i"`
	Choice string `msgpack:"c,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// Suggestion is one ranked suggestion; rank 1 comes first.
type Suggestion struct {
	Text string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// PlanResponse carries the match for one input text.
type PlanResponse struct {
	ID          string            `msgpack:"id"`
	Text        string            `msgpack:"text,omitempty"`
	Template    string            `msgpack:"tpl,omitempty"`
	State       string            `msgpack:"st"`
	Part        int               `msgpack:"pi"`
	Complete    bool              `msgpack:"done"`
	Parameter   string            `msgpack:"param,omitempty"`
	Prefix      string            `msgpack:"pre"`
	Value       string            `msgpack:"v,omitempty"`
	Context     map[string]string `msgpack:"ctx"`
	Suggestions []Suggestion      `msgpack:"s"`
	Count       int               `msgpack:"c"`
	NeedsInput  bool              `msgpack:"ni"`
	Error       string            `msgpack:"err,omitempty"`
	Invalid     string            `msgpack:"inv,omitempty"`
	TimeTaken   int64             `msgpack:"t"`
}

// TemplateInfo summarizes a registered template.
type TemplateInfo struct {
	ID          string   `msgpack:"id"`
	Name        string   `msgpack:"name"`
	Description string   `msgpack:"desc,omitempty"`
	Example     string   `msgpack:"example,omitempty"`
	Pattern     string   `msgpack:"pattern"`
	Parameters  []string `msgpack:"params"`
}

// TemplatesResponse lists templates in priority order.
type TemplatesResponse struct {
	ID        string         `msgpack:"id"`
	Templates []TemplateInfo `msgpack:"templates"`
}

// HealthResponse reports engine counts.
type HealthResponse struct {
	ID       string         `msgpack:"id"`
	Status   string         `msgpack:"status"`
	Stats    map[string]int `msgpack:"stats"`
	Requests int            `msgpack:"requests"`
}

// StatusResponse is written once when the server is ready.
type StatusResponse struct {
	Status  string `msgpack:"status"`
	Version string `msgpack:"version,omitempty"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"code"`
}
