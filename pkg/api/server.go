// Package api exposes the bridge over HTTP: a health probe, the tool
// catalog, a call-tool endpoint for web and mobile clients, and
// Prometheus metrics.
package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/synapsecrm/mcp-bridge/pkg/catalog"
	"github.com/synapsecrm/mcp-bridge/pkg/dispatch"
	"github.com/synapsecrm/mcp-bridge/pkg/httputil"
	"github.com/synapsecrm/mcp-bridge/pkg/observability"
)

// Server represents the bridge HTTP server
type Server struct {
	router     *mux.Router
	catalog    *catalog.Catalog
	dispatcher *dispatch.Dispatcher
	logger     *observability.Logger
	metrics    *observability.Metrics
	version    string
}

// NewServer creates a new HTTP server
func NewServer(cat *catalog.Catalog, dispatcher *dispatch.Dispatcher, logger *observability.Logger, metrics *observability.Metrics, version string) *Server {
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	s := &Server{
		router:     mux.NewRouter(),
		catalog:    cat,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		version:    version,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteNotFound(w, "no such endpoint: "+r.URL.Path)
	})

	s.router.HandleFunc("/health", s.health).Methods("GET")
	s.router.HandleFunc("/mcp/tools", s.listTools).Methods("GET")
	s.router.HandleFunc("/mcp/call-tool", s.callTool).Methods("POST")

	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, map[string]interface{}{
		"status":     "ok",
		"version":    s.version,
		"transports": []string{"http"},
		"tools":      s.catalog.Len(),
	})
}

// toolInfo is the catalog listing entry exposed to clients.
type toolInfo struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	InputSchema catalog.InputSchema `json:"inputSchema"`
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	tools := s.catalog.List()
	out := make([]toolInfo, 0, len(tools))
	for _, t := range tools {
		out = append(out, toolInfo{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	httputil.WriteSuccess(w, map[string]interface{}{"tools": out})
}

// toolCallRequest is the call-tool request body.
type toolCallRequest struct {
	ToolName  string                 `json:"tool_name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// toolCallContent mirrors an MCP text content block.
type toolCallContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (s *Server) callTool(w http.ResponseWriter, r *http.Request) {
	var req toolCallRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.ToolName == "" {
		httputil.WriteBadRequest(w, "tool_name is required")
		return
	}

	arguments := make(map[string]interface{}, len(req.Arguments)+1)
	for k, v := range req.Arguments {
		arguments[k] = v
	}

	// Pre-authenticated callers pass their token in the Authorization
	// header; it rides along as the jwt argument.
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		arguments["jwt"] = strings.TrimPrefix(auth, "Bearer ")
	}

	s.logger.WithTool(req.ToolName).
		WithField("request_id", observability.GetRequestID(r.Context())).
		Info("Tool call received")

	text, err := s.dispatcher.Call(r.Context(), req.ToolName, arguments)
	if err != nil {
		// Tool failures are results, not HTTP errors; clients read the
		// text the same way for success and failure.
		text = dispatch.ErrorText(err)
	}

	httputil.WriteSuccess(w, map[string]interface{}{
		"result": []toolCallContent{{Type: "text", Text: text}},
	})
}
