// Package rpc serves the JSON-RPC 2.0 endpoint of the cyrel API.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/jsonrpc2"

	"github.com/cyrel-edt/cyrel/internal/auth"
	"github.com/cyrel-edt/cyrel/internal/otel"
	"github.com/cyrel-edt/cyrel/internal/service"
	"github.com/cyrel-edt/cyrel/internal/sync/state"
)

// maxBodySize bounds a request body, batches included
const maxBodySize = 1 << 20

type methodFunc func(ctx context.Context, params json.RawMessage) (any, error)

type method struct {
	fn       methodFunc
	needUser bool
}

// Handler decodes JSON-RPC requests, single or batched, and dispatches them
type Handler struct {
	svc     service.TimetableService
	issuer  *auth.TokenIssuer
	runs    state.RunStateService
	tracer  trace.Tracer
	methods map[string]method
}

// Option configures a Handler
type Option func(*Handler)

// WithRunState enables the sync_status method
func WithRunState(runs state.RunStateService) Option {
	return func(h *Handler) {
		h.runs = runs
	}
}

// WithTracer traces every call
func WithTracer(tracer trace.Tracer) Option {
	return func(h *Handler) {
		h.tracer = tracer
	}
}

// NewHandler creates the JSON-RPC handler
func NewHandler(svc service.TimetableService, issuer *auth.TokenIssuer, opts ...Option) *Handler {
	h := &Handler{
		svc:    svc,
		issuer: issuer,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.methods = map[string]method{
		"ping":         {fn: h.ping},
		"login":        {fn: h.login},
		"sync_status":  {fn: h.syncStatus},
		"schedule_get": {fn: h.scheduleGet, needUser: true},
		"groups_get":   {fn: h.groupsGet, needUser: true},
		"groups_user":  {fn: h.groupsUser, needUser: true},
		"groups_join":  {fn: h.groupsJoin, needUser: true},
		"config_get":   {fn: h.configGet, needUser: true},
		"config_set":   {fn: h.configSet, needUser: true},
	}
	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		h.writeJSON(w, h.errorResponse(fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidRequest, err)))
		return
	}

	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		h.writeJSON(w, h.errorResponse(jsonrpc2.ErrParse))
		return
	}

	if body[0] != '[' {
		resp := h.handle(r.Context(), body)
		if resp == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.writeJSON(w, resp)
		return
	}

	var batch []json.RawMessage
	if err := json.Unmarshal(body, &batch); err != nil || len(batch) == 0 {
		h.writeJSON(w, h.errorResponse(jsonrpc2.ErrInvalidRequest))
		return
	}
	responses := make([]json.RawMessage, 0, len(batch))
	for _, item := range batch {
		if resp := h.handle(r.Context(), item); resp != nil {
			responses = append(responses, resp)
		}
	}
	if len(responses) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	data, err := json.Marshal(responses)
	if err != nil {
		slog.Error("Failed to encode batch response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, data)
}

// handle processes one message and returns its encoded response, nil for notifications
func (h *Handler) handle(ctx context.Context, data []byte) []byte {
	msg, err := jsonrpc2.DecodeMessage(data)
	if err != nil {
		return h.errorResponse(fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidRequest, err))
	}
	req, ok := msg.(*jsonrpc2.Request)
	if !ok {
		return h.errorResponse(jsonrpc2.ErrInvalidRequest)
	}

	result, callErr := h.call(ctx, req.Method, req.Params)
	if !req.IsCall() {
		return nil
	}

	resp, err := jsonrpc2.NewResponse(req.ID, result, callErr)
	if err != nil {
		slog.Error("Failed to encode result", "method", req.Method, "error", err)
		resp, _ = jsonrpc2.NewResponse(req.ID, nil, jsonrpc2.ErrInternal)
	}
	encoded, err := jsonrpc2.EncodeMessage(resp)
	if err != nil {
		slog.Error("Failed to encode response", "method", req.Method, "error", err)
		return nil
	}
	return encoded
}

func (h *Handler) call(ctx context.Context, name string, params json.RawMessage) (any, error) {
	m, ok := h.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", jsonrpc2.ErrMethodNotFound, name)
	}

	ctx, span := otel.StartSpan(ctx, h.tracer, "rpc."+name,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(otel.AttrRPCMethod.String(name)),
	)
	defer span.End()

	if m.needUser {
		if _, ok := auth.UserIDFromContext(ctx); !ok {
			return nil, ErrUnauthorized
		}
	}

	result, err := m.fn(ctx, params)
	if err != nil {
		err = toRPCError(name, err)
		otel.RecordError(span, err)
		return nil, err
	}
	return result, nil
}

// errorResponse encodes a response without id
func (*Handler) errorResponse(rerr error) []byte {
	resp, err := jsonrpc2.NewResponse(jsonrpc2.ID{}, nil, rerr)
	if err != nil {
		return nil
	}
	data, err := jsonrpc2.EncodeMessage(resp)
	if err != nil {
		return nil
	}
	return data
}

func (*Handler) writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Debug("Failed to write RPC response", "error", err)
	}
}
