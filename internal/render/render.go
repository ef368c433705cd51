// Package render draws match results for the terminal front ends.
package render

import (
	"fmt"
	"strings"

	"github.com/bastiangx/cadprompt/pkg/match"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles of every rendered element.
type Styles struct {
	Literal  lipgloss.Style
	Filled   lipgloss.Style
	Current  lipgloss.Style
	Pending  lipgloss.Style
	Invalid  lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles returns the colored style set, or plain styles when color is off.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Literal: plain, Filled: plain, Current: plain, Pending: plain, Invalid: plain,
			Selected: plain, Item: plain, Error: plain, Muted: plain,
		}
	}
	return Styles{
		Literal: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}),
		Filled: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		Current: lipgloss.NewStyle().Bold(true).Underline(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#d7827e", Dark: "#ebbcba"}),
		Pending: lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"}),
		Invalid: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"}),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}),
		Item: lipgloss.NewStyle(),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"}),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"}),
	}
}

// Preview renders the matched template with literal text as is and a badge
// per parameter: the value once filled, "{name}" while pending. The part
// being typed uses the Current style and the parameter that failed
// validation the Invalid style. A no-match result renders as "".
func Preview(res match.Result, st Styles) string {
	if !res.Matched() || res.Template == nil {
		return ""
	}
	var b strings.Builder
	for i, part := range res.Template.Parts {
		if part.IsLiteral() {
			b.WriteString(st.Literal.Render(part.Literal))
			continue
		}
		p := part.Param
		value, filled := res.Context[p.Name]
		label := "{" + p.Name + "}"
		if filled && value != "" {
			label = value
		}
		switch {
		case p.Name == res.Invalid:
			b.WriteString(st.Invalid.Render(label))
		case i == res.PartIndex && !res.Complete:
			b.WriteString(st.Current.Render(label))
		case filled:
			b.WriteString(st.Filled.Render(label))
		default:
			b.WriteString(st.Pending.Render(label))
		}
	}
	return b.String()
}

// Status renders a one-line summary of the match state.
func Status(res match.Result, st Styles) string {
	switch res.State {
	case match.NoMatch:
		return st.Muted.Render("free text")
	case match.LiteralPending:
		return st.Muted.Render(fmt.Sprintf("%s: keep typing", res.TemplateID()))
	case match.ParameterPending:
		hint := res.Parameter.Name
		if res.Parameter.Placeholder != "" {
			hint = res.Parameter.Placeholder
		} else if res.Parameter.Description != "" {
			hint = res.Parameter.Description
		}
		return st.Muted.Render(fmt.Sprintf("%s: %s", res.TemplateID(), hint))
	default:
		return st.Filled.Render(fmt.Sprintf("%s: complete", res.TemplateID()))
	}
}

// Suggestions renders the list one per line, marking selected. A negative
// selected marks nothing.
func Suggestions(list []string, selected int, st Styles) string {
	lines := make([]string, len(list))
	for i, s := range list {
		if i == selected {
			lines[i] = st.Selected.Render("> " + s)
			continue
		}
		lines[i] = st.Item.Render("  " + s)
	}
	return strings.Join(lines, "\n")
}

// ErrorLine renders the validation error of res, or "" when there is none.
func ErrorLine(res match.Result, st Styles) string {
	if res.Error == "" {
		return ""
	}
	return st.Error.Render("! " + res.Error)
}
