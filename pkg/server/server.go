package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/cadprompt/internal/logger"
	"github.com/bastiangx/cadprompt/internal/utils"
	"github.com/bastiangx/cadprompt/pkg/config"
	"github.com/bastiangx/cadprompt/pkg/match"
	"github.com/bastiangx/cadprompt/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Server answers msgpack requests against a planner.
type Server struct {
	planner      *match.Planner
	cfg          config.ServerConfig
	version      string
	writer       *bufio.Writer
	dec          *msgpack.Decoder
	enc          *msgpack.Encoder
	log          *log.Logger
	requestCount int
}

// NewServer creates a server on stdin/stdout.
func NewServer(planner *match.Planner, cfg config.ServerConfig, version string) *Server {
	return NewServerWithIO(planner, cfg, version, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams.
func NewServerWithIO(planner *match.Planner, cfg config.ServerConfig, version string, r io.Reader, w io.Writer) *Server {
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)
	return &Server{
		planner: planner,
		cfg:     cfg,
		version: version,
		writer:  writer,
		dec:     msgpack.NewDecoder(reader),
		enc:     msgpack.NewEncoder(writer),
		log:     logger.New("ipc"),
	}
}

// Start signals readiness and serves requests until the input closes.
// A clean EOF returns nil.
func (s *Server) Start() error {
	s.log.Debug("Starting server")
	if err := s.send(StatusResponse{Status: "ready", Version: s.version}); err != nil {
		return err
	}

	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.log.Debug("Input closed", "requests", s.requestCount)
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return fmt.Errorf("read request: %w", err)
		}
		if err := s.handleRaw(raw); err != nil {
			return err
		}
	}
}

func (s *Server) handleRaw(raw msgpack.RawMessage) error {
	s.requestCount++
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.log.Errorf("Unmarshaling request: %v", err)
		return s.sendError("", "Invalid msgpack request", 400)
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	return s.handleRequest(req)
}

func (s *Server) handleRequest(req Request) error {
	switch req.Action {
	case "", ActionPlan:
		return s.handlePlan(req, req.Input, "")
	case ActionSelect:
		if req.Choice == "" {
			return s.sendError(req.ID, "Missing 'c' choice for select", 400)
		}
		res := s.planner.Plan(req.Input)
		text := match.Apply(res, req.Choice)
		return s.handlePlan(req, text, text)
	case ActionTemplates:
		return s.send(s.templates(req.ID))
	case ActionHealth:
		return s.send(HealthResponse{
			ID:       req.ID,
			Status:   "ok",
			Stats:    s.planner.Stats(),
			Requests: s.requestCount,
		})
	default:
		return s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handlePlan(req Request, input, text string) error {
	if n := utf8.RuneCountInString(input); n > s.cfg.MaxInput {
		s.log.Debug("Input too long", "id", req.ID, "runes", n)
		return s.sendError(req.ID, fmt.Sprintf("Input exceeds maximum length of %d characters", s.cfg.MaxInput), 413)
	}

	start := time.Now()
	res := s.planner.Plan(input)
	elapsed := time.Since(start)

	suggestions := suggest.Limit(res.Suggestions, req.Limit)
	resp := PlanResponse{
		ID:          req.ID,
		Text:        text,
		Template:    res.TemplateID(),
		State:       res.State.String(),
		Part:        res.PartIndex,
		Complete:    res.Complete,
		Prefix:      res.Prefix,
		Value:       res.Value,
		Context:     map[string]string(res.Context),
		Suggestions: rankSuggestions(suggestions),
		Count:       len(suggestions),
		NeedsInput:  res.NeedsInput,
		Error:       res.Error,
		Invalid:     res.Invalid,
	}
	if res.Parameter != nil {
		resp.Parameter = res.Parameter.Name
	}
	if s.cfg.EnableTiming {
		resp.TimeTaken = elapsed.Microseconds()
	}
	return s.send(resp)
}

// rankSuggestions numbers suggestions in presentation order.
func rankSuggestions(list []string) []Suggestion {
	ranks := utils.CreateRankList(len(list))
	out := make([]Suggestion, len(list))
	for i, text := range list {
		out[i] = Suggestion{Text: text, Rank: ranks[i]}
	}
	return out
}

func (s *Server) templates(id string) TemplatesResponse {
	resp := TemplatesResponse{ID: id, Templates: []TemplateInfo{}}
	for _, t := range s.planner.Registry().Templates() {
		info := TemplateInfo{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Example:     t.Example,
			Pattern:     t.String(),
			Parameters:  []string{},
		}
		for _, p := range t.Parameters() {
			info.Parameters = append(info.Parameters, p.Name)
		}
		resp.Templates = append(resp.Templates, info)
	}
	return resp
}

func (s *Server) send(v any) error {
	if err := s.enc.Encode(v); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encode response: %w", err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
