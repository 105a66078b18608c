// Package rpc exposes the regex tester over JSON-RPC 2.0, framed like a
// language server (Content-Length headers) so editors can drive it on stdio.
package rpc

import (
	"context"
	"encoding/json"
	"io"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/log"
	"github.com/zjrosen/rexy/internal/regex"
	"github.com/zjrosen/rexy/internal/tester"
)

// Method names.
const (
	MethodTokenize = "regex.tokenize"
	MethodResolve  = "regex.resolve"
	MethodRender   = "regex.render"
	MethodReplace  = "regex.replace"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// TokenizeParams are the params of regex.tokenize.
type TokenizeParams struct {
	Pattern string `json:"pattern"`
}

// EvaluateParams are the params of regex.resolve, regex.render and
// regex.replace. Replacement is required by regex.replace only.
type EvaluateParams struct {
	Pattern     string  `json:"pattern"`
	Flags       string  `json:"flags"`
	Subject     string  `json:"subject"`
	Replacement *string `json:"replacement,omitempty"`
}

// ResolveResult is the result of regex.resolve.
type ResolveResult struct {
	Groups  []regex.GroupInfo   `json:"groups"`
	Matches []regex.MatchRecord `json:"matches"`
	Error   *regex.PatternError `json:"error,omitempty"`
}

// RenderResult is the result of regex.render.
type RenderResult struct {
	Pattern highlight.MarkedText `json:"pattern"`
	Spans   highlight.MarkedText `json:"spans"`
	Error   *regex.PatternError  `json:"error,omitempty"`
}

// ReplaceResult is the result of regex.replace. Result is the subject
// unchanged when the pattern is invalid.
type ReplaceResult struct {
	Result string              `json:"result"`
	Error  *regex.PatternError `json:"error,omitempty"`
}

// Server answers regex requests. Every request is evaluated from scratch;
// only the compiled-pattern cache is shared.
type Server struct {
	evaluator *tester.Evaluator
}

// NewServer creates a server over evaluator.
func NewServer(evaluator *tester.Evaluator) *Server {
	return &Server{evaluator: evaluator}
}

type method func(context.Context, json.RawMessage) (any, error)

// Handler returns the JSON-RPC handler routing the regex.* methods.
func (s *Server) Handler() jsonrpc2.Handler {
	return routingHandler(map[string]method{
		MethodTokenize: s.tokenize,
		MethodResolve:  s.resolve,
		MethodRender:   s.render,
		MethodReplace:  s.replace,
	})
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			log.Debug(log.CatRPC, "Unknown method", "method", req.Method)
			return nil, errMethodNotFound
		}
		if req.Params == nil {
			return nil, errInvalidParams
		}
		return fn(ctx, *req.Params)
	})
}

// Serve runs the server on rw until the peer disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context, rw io.ReadWriteCloser) error {
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(rw, jsonrpc2.VSCodeObjectCodec{}),
		s.Handler())
	log.Info(log.CatRPC, "RPC server started")

	select {
	case <-conn.DisconnectNotify():
	case <-ctx.Done():
		_ = conn.Close()
	}
	log.Info(log.CatRPC, "RPC server stopped")
	return nil
}

func (s *Server) tokenize(_ context.Context, raw json.RawMessage) (any, error) {
	var params TokenizeParams
	if json.Unmarshal(raw, &params) != nil {
		return nil, errInvalidParams
	}
	tokens := regex.Tokenize(params.Pattern)
	if tokens == nil {
		tokens = []regex.Token{}
	}
	return tokens, nil
}

func (s *Server) resolve(ctx context.Context, raw json.RawMessage) (any, error) {
	snap, err := s.evaluate(ctx, raw, false)
	if err != nil {
		return nil, err
	}
	return ResolveResult{
		Groups:  orEmpty(snap.Groups),
		Matches: orEmpty(snap.Matches),
		Error:   snap.PatternError(),
	}, nil
}

func (s *Server) render(ctx context.Context, raw json.RawMessage) (any, error) {
	snap, err := s.evaluate(ctx, raw, false)
	if err != nil {
		return nil, err
	}
	return RenderResult{
		Pattern: orEmpty(snap.Pattern),
		Spans:   orEmpty(snap.Subject),
		Error:   snap.PatternError(),
	}, nil
}

func (s *Server) replace(ctx context.Context, raw json.RawMessage) (any, error) {
	snap, err := s.evaluate(ctx, raw, true)
	if err != nil {
		return nil, err
	}
	result := snap.Input.Subject
	if snap.HasReplaced {
		result = snap.Replaced
	}
	return ReplaceResult{Result: result, Error: snap.PatternError()}, nil
}

func (s *Server) evaluate(ctx context.Context, raw json.RawMessage, needReplacement bool) (tester.Snapshot, error) {
	var params EvaluateParams
	if json.Unmarshal(raw, &params) != nil {
		return tester.Snapshot{}, errInvalidParams
	}
	if needReplacement && params.Replacement == nil {
		return tester.Snapshot{}, errInvalidParams
	}
	in := tester.Input{
		Pattern: params.Pattern,
		Flags:   params.Flags,
		Subject: params.Subject,
	}
	if needReplacement {
		in.Replacement = params.Replacement
	}
	return s.evaluator.Evaluate(ctx, in), nil
}

func orEmpty[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
