package main

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/baditaflorin/l"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/baditaflorin/go_azstemmer/internal/metrics"
	"github.com/baditaflorin/go_azstemmer/pkg/stemmer"
)

const requestIDHeader = "X-Request-ID"

// TextRequest carries raw text for /normalize and /stem.
type TextRequest struct {
	Text   string   `json:"text"`
	Tokens []string `json:"tokens,omitempty"`
}

// AnalyzeRequest carries a single token for /analyze.
type AnalyzeRequest struct {
	Word string `json:"word"`
}

// TokensResponse is returned by /normalize.
type TokensResponse struct {
	Tokens []string `json:"tokens"`
}

// StemsResponse is returned by /stem.
type StemsResponse struct {
	Stems []string `json:"stems"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	stemmer *stemmer.Stemmer
	logger  l.Logger
	timeout time.Duration
	metrics fasthttp.RequestHandler
}

func newHandler(s *stemmer.Stemmer, logger l.Logger, timeout time.Duration) *handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &handler{
		stemmer: s,
		logger:  logger,
		timeout: timeout,
		metrics: fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()),
	}
}

// serve is the main fasthttp request handler
func (h *handler) serve(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	path := string(ctx.Path())

	requestID := string(ctx.Request.Header.Peek(requestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Response.Header.Set(requestIDHeader, requestID)

	switch path {
	case "/health":
		h.handleHealthCheck(ctx)
	case "/normalize":
		h.handleNormalize(ctx)
	case "/stem":
		h.handleStem(ctx)
	case "/analyze":
		h.handleAnalyze(ctx)
	case "/metrics":
		h.metrics(ctx)
	default:
		path = "other"
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		h.writeJSONError(ctx, "Not found")
	}

	duration := time.Since(startTime)
	status := ctx.Response.StatusCode()
	metrics.HTTPRequestsTotal.WithLabelValues(path, strconv.Itoa(status)).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(path).Observe(duration.Seconds())

	h.logger.Info("Request processed",
		"request_id", requestID,
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", status,
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

func (h *handler) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	lx := h.stemmer.Lexicon()
	h.writeJSONResponse(ctx, map[string]interface{}{
		"status":   "ok",
		"time":     time.Now().Format(time.RFC3339),
		"roots":    lx.RootCount(),
		"suffixes": lx.SuffixCount(),
	})
}

func (h *handler) handleNormalize(ctx *fasthttp.RequestCtx) {
	var req TextRequest
	if !h.decodePost(ctx, &req) {
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, TokensResponse{Tokens: h.stemmer.Normalize(req.Text)})
}

func (h *handler) handleStem(ctx *fasthttp.RequestCtx) {
	var req TextRequest
	if !h.decodePost(ctx, &req) {
		return
	}

	tokens := req.Tokens
	if tokens == nil {
		tokens = h.stemmer.Normalize(req.Text)
	}

	c, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	stems, err := h.stemmer.StemAll(c, tokens)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		h.writeJSONError(ctx, "Stemming aborted: "+err.Error())
		return
	}
	metrics.TokensStemmed.Add(float64(len(stems)))

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, StemsResponse{Stems: stems})
}

func (h *handler) handleAnalyze(ctx *fasthttp.RequestCtx) {
	var req AnalyzeRequest
	if !h.decodePost(ctx, &req) {
		return
	}
	if req.Word == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, "A word is required")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	result, err := h.stemmer.AnalyzeContext(c, req.Word)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		h.writeJSONError(ctx, "Analysis aborted: "+err.Error())
		return
	}
	metrics.TokensStemmed.Inc()
	if !result.Matched {
		metrics.TokensUnmatched.Inc()
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, result)
}

// decodePost rejects non-POST requests and decodes the JSON body into v.
func (h *handler) decodePost(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, "Method not allowed")
		return false
	}
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// writeJSONResponse writes a JSON response to the context
func (h *handler) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("Error marshaling JSON response", "error", err)
		h.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (h *handler) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		h.logger.Error("Error marshaling JSON error response", "error", err)
		response = []byte(`{"error":"Internal server error"}`)
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}
