// Package cli runs a line based prompt for trying templates from a terminal.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/cadprompt/internal/render"
	"github.com/bastiangx/cadprompt/pkg/match"
	"github.com/charmbracelet/log"
)

// Options controls what the handler prints.
type Options struct {
	ShowPreview bool
	MaxInput    int
	Styles      render.Styles
}

// InputHandler reads one input text per line and prints its match. Trailing
// spaces are kept since they are part of the text being matched.
//
// A line of the form "/N" applies suggestion N of the previous result to the
// previous input; "/q" quits.
type InputHandler struct {
	engine       match.Engine
	opts         Options
	in           *bufio.Reader
	out          io.Writer
	lastResult   match.Result
	requestCount int
}

// NewInputHandler creates a handler reading from in and writing to out.
func NewInputHandler(engine match.Engine, opts Options, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		engine: engine,
		opts:   opts,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

// Start begins the prompt loop. It returns nil when the input ends or the
// user quits.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "cadprompt CLI")
	fmt.Fprintln(h.out, "type a prompt and press Enter, /N picks suggestion N, /q quits:")

	for {
		fmt.Fprint(h.out, "> ")
		line, err := h.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "/q" {
			return nil
		}
		if line != "" {
			h.handleLine(line)
		}
		if err != nil {
			fmt.Fprintln(h.out)
			return nil
		}
	}
}

func (h *InputHandler) handleLine(line string) {
	if n, ok := parsePick(line); ok {
		if n < 1 || n > len(h.lastResult.Suggestions) {
			fmt.Fprintln(h.out, h.opts.Styles.Error.Render(fmt.Sprintf("no suggestion %d", n)))
			return
		}
		line = match.Apply(h.lastResult, h.lastResult.Suggestions[n-1])
		fmt.Fprintln(h.out, line)
	}
	h.handleInput(line)
}

func parsePick(line string) (int, bool) {
	if !strings.HasPrefix(line, "/") {
		return 0, false
	}
	n, err := strconv.Atoi(line[1:])
	return n, err == nil
}

func (h *InputHandler) handleInput(input string) {
	h.requestCount++
	if h.opts.MaxInput > 0 && utf8.RuneCountInString(input) > h.opts.MaxInput {
		log.Errorf("Input too long: %d characters (max %d)", utf8.RuneCountInString(input), h.opts.MaxInput)
		return
	}

	start := time.Now()
	res := h.engine.Plan(input)
	log.Debugf("Took [ %v ] for input %q", time.Since(start), input)

	h.lastResult = res

	st := h.opts.Styles
	if h.opts.ShowPreview {
		if preview := render.Preview(res, st); preview != "" {
			fmt.Fprintln(h.out, preview)
		}
	}
	fmt.Fprintln(h.out, render.Status(res, st))
	if errLine := render.ErrorLine(res, st); errLine != "" {
		fmt.Fprintln(h.out, errLine)
	}
	for i, s := range res.Suggestions {
		fmt.Fprintf(h.out, "%2d. %s\n", i+1, st.Item.Render(s))
	}
}
