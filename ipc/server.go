// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ipc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/poiesic/dictcc/core"
)

// MaxQueryLength bounds the query text of a request, in characters.
const MaxQueryLength = 256

// ErrTranslatorRequired is returned when a server is created without a translator.
var ErrTranslatorRequired = errors.New("translator is required")

// Translator is the dictionary session a server answers from.
type Translator interface {
	From() string
	To() string
	Lookup(ctx context.Context, query string) ([]core.Translation, error)
	Complete(ctx context.Context, partial string) ([]string, error)
}

// Server answers requests read from r with responses written to w.
// Requests are handled one at a time in arrival order.
type Server struct {
	translator Translator
	dec        *msgpack.Decoder
	enc        *msgpack.Encoder
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a server over the given streams.
func NewServer(translator Translator, r io.Reader, w io.Writer, opts ...Option) (*Server, error) {
	if translator == nil {
		return nil, ErrTranslatorRequired
	}
	s := &Server{
		translator: translator,
		dec:        msgpack.NewDecoder(r),
		enc:        msgpack.NewEncoder(w),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "ipc")
	return s, nil
}

// Serve processes requests until the input ends or ctx is cancelled.
// A clean end of input returns nil.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Debug("starting server", "from", s.translator.From(), "to", s.translator.To())
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}
		if err := s.handle(ctx, req); err != nil {
			return err
		}
	}
}

// handle answers one request. Only write failures are returned.
func (s *Server) handle(ctx context.Context, req Request) error {
	switch req.Command {
	case CommandLookup:
		return s.handleLookup(ctx, req)
	case CommandComplete:
		return s.handleComplete(ctx, req)
	case CommandHealth:
		return s.send(StatusResponse{
			ID:     req.ID,
			Status: "ok",
			Pair:   s.translator.From() + "-" + s.translator.To(),
			From:   s.translator.From(),
		})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown command: %q", req.Command), 400)
	}
}

func (s *Server) handleLookup(ctx context.Context, req Request) error {
	if msg := checkQuery(req.Query); msg != "" {
		return s.sendError(req.ID, msg, 400)
	}
	start := time.Now()
	rows, err := s.translator.Lookup(ctx, req.Query)
	if err != nil {
		s.logger.Error("lookup failed", "query", req.Query, "error", err)
		return s.sendError(req.ID, "lookup failed", 500)
	}
	if req.Limit > 0 && len(rows) > req.Limit {
		rows = rows[:req.Limit]
	}
	results := make([]Translation, len(rows))
	for i, row := range rows {
		results[i] = Translation{
			Source:        row.Source,
			Target:        row.Target,
			WordClasses:   row.WordClasses,
			SubjectLabels: row.SubjectLabels,
			Score:         row.Score,
		}
	}
	return s.send(LookupResponse{
		ID:        req.ID,
		Results:   results,
		Count:     len(results),
		TimeTaken: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleComplete(ctx context.Context, req Request) error {
	if msg := checkQuery(req.Query); msg != "" {
		return s.sendError(req.ID, msg, 400)
	}
	start := time.Now()
	words, err := s.translator.Complete(ctx, req.Query)
	if err != nil {
		s.logger.Error("completion failed", "partial", req.Query, "error", err)
		return s.sendError(req.ID, "completion failed", 500)
	}
	if req.Limit > 0 && len(words) > req.Limit {
		words = words[:req.Limit]
	}
	if words == nil {
		words = []string{}
	}
	return s.send(CompleteResponse{
		ID:        req.ID,
		Words:     words,
		Count:     len(words),
		TimeTaken: time.Since(start).Milliseconds(),
	})
}

func checkQuery(q string) string {
	switch {
	case q == "":
		return "missing 'q' parameter"
	case !utf8.ValidString(q):
		return "query is not valid UTF-8"
	case utf8.RuneCountInString(q) > MaxQueryLength:
		return fmt.Sprintf("query exceeds maximum length of %d characters", MaxQueryLength)
	}
	return ""
}

func (s *Server) send(v any) error {
	if err := s.enc.Encode(v); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, status int) error {
	s.logger.Debug("request rejected", "id", id, "error", message)
	return s.send(ErrorResponse{ID: id, Error: message, Status: status})
}
