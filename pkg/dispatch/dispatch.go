// Package dispatch executes catalog tools against the CRM backend. Each
// call resolves a session, checks permissions, templates the endpoint
// path, forwards the HTTP request, and renders the response as text.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/synapsecrm/mcp-bridge/pkg/catalog"
	"github.com/synapsecrm/mcp-bridge/pkg/format"
	"github.com/synapsecrm/mcp-bridge/pkg/observability"
	"github.com/synapsecrm/mcp-bridge/pkg/rbac"
	"github.com/synapsecrm/mcp-bridge/pkg/session"
)

// Config holds dispatcher construction parameters.
type Config struct {
	// BackendURL is the CRM backend base URL, e.g. http://localhost:5000
	BackendURL string
	// APIPrefix is prepended to every endpoint path, e.g. /api
	APIPrefix string
	// RequestTimeout bounds each backend call
	RequestTimeout time.Duration
}

// Dispatcher routes tool calls to the backend. It holds no mutable state
// of its own beyond the session store, so concurrent calls need no
// coordination.
type Dispatcher struct {
	catalog *catalog.Catalog
	checker *rbac.Checker
	store   session.Store
	baseURL string
	client  *http.Client
	logger  *observability.Logger
	metrics *observability.Metrics
}

// New creates a Dispatcher. The HTTP client is instrumented with
// otelhttp so backend calls show up in traces.
func New(cat *catalog.Catalog, checker *rbac.Checker, store session.Store, cfg Config, logger *observability.Logger, metrics *observability.Metrics) *Dispatcher {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	if metrics == nil {
		metrics = observability.NewMetrics(nil)
	}
	return &Dispatcher{
		catalog: cat,
		checker: checker,
		store:   store,
		baseURL: strings.TrimRight(cfg.BackendURL, "/") + cfg.APIPrefix,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Call executes a single tool invocation and returns the result text.
// Failures come back as *Error; render them with ErrorText.
func (d *Dispatcher) Call(ctx context.Context, name string, arguments map[string]interface{}) (string, error) {
	start := time.Now()
	text, err := d.call(ctx, name, arguments)

	outcome := "success"
	if err != nil {
		outcome = "error"
		kind := KindTransport
		var de *Error
		if errors.As(err, &de) {
			kind = de.Kind
		}
		d.metrics.ObserveToolError(name, string(kind))
		d.logger.WithTool(name).WithError(err).Warn("Tool call failed")
	}
	d.metrics.ObserveToolCall(name, outcome, time.Since(start))
	return text, err
}

func (d *Dispatcher) call(ctx context.Context, name string, arguments map[string]interface{}) (string, error) {
	// Never mutate the caller's map; path substitution consumes keys.
	args := make(map[string]interface{}, len(arguments))
	for k, v := range arguments {
		args[k] = v
	}

	switch name {
	case "login":
		return d.login(ctx, args)
	case "logout":
		return d.logout()
	case "whoami":
		return d.whoami()
	}

	token, role, err := d.resolveSession(args)
	if err != nil {
		return "", err
	}

	tool, ok := d.catalog.Get(name)
	if !ok {
		return "", unknownTool(name)
	}

	// A caller-provided token is authorized by the backend itself; only
	// persisted sessions go through the local permission table.
	if role != "" {
		if allowed, reason := d.checker.Check(role, name); !allowed {
			return "", forbidden(reason)
		}
	}

	return d.callBackend(ctx, tool, args, token)
}

// resolveSession returns the bearer token for a call. A jwt argument
// takes priority over the persisted session; its role comes back empty
// since the bridge never inspects caller-supplied tokens for RBAC.
func (d *Dispatcher) resolveSession(args map[string]interface{}) (token, role string, err error) {
	if raw, ok := args["jwt"]; ok {
		delete(args, "jwt")
		if s, ok := raw.(string); ok && s != "" {
			return s, "", nil
		}
		return "", "", notAuthenticated()
	}

	sess, err := d.store.Get()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return "", "", notAuthenticated()
		}
		d.metrics.ObserveSessionOp("get", "error")
		return "", "", transportError(err)
	}
	d.metrics.ObserveSessionOp("get", "ok")
	return sess.JWT, sess.Role, nil
}

// login authenticates against the backend and persists the session.
func (d *Dispatcher) login(ctx context.Context, args map[string]interface{}) (string, error) {
	email, _ := args["email"].(string)
	password, _ := args["password"].(string)

	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", transportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/auth/signin", bytes.NewReader(payload))
	if err != nil {
		return "", transportError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", backendError(extractMessage(body, "Login failed"))
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", backendError("Login failed")
	}

	token := extractToken(data)
	if token == "" {
		return "", backendError("Login failed")
	}

	user, _ := data["dbUser"].(map[string]interface{})
	role := stringField(user, "role")
	if role == "" {
		role = string(rbac.RoleMember)
	}

	sess := &session.Session{
		Email:    email,
		JWT:      token,
		UserID:   stringField(user, "id"),
		Role:     role,
		TenantID: stringField(user, "tenantId"),
	}
	if err := d.store.Put(sess); err != nil {
		d.metrics.ObserveSessionOp("put", "error")
		return "", transportError(fmt.Errorf("saving session: %w", err))
	}
	d.metrics.ObserveSessionOp("put", "ok")

	d.logger.WithFields(map[string]interface{}{
		"email": email,
		"role":  role,
	}).Info("Login succeeded")

	return fmt.Sprintf("Logged in as %s\nRole: %s\nSession saved. You can now use CRM tools.", email, role), nil
}

func (d *Dispatcher) logout() (string, error) {
	if err := d.store.Delete(); err != nil {
		d.metrics.ObserveSessionOp("delete", "error")
		return "", transportError(fmt.Errorf("clearing session: %w", err))
	}
	d.metrics.ObserveSessionOp("delete", "ok")
	return "Logged out successfully.", nil
}

func (d *Dispatcher) whoami() (string, error) {
	sess, err := d.store.Get()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return "Not logged in.", nil
		}
		return "", transportError(err)
	}

	age := time.Since(sess.CreatedAt)
	remaining := session.Expiry - age
	if remaining < 0 {
		remaining = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Logged in as: %s\nRole: %s\nSession age: %dh %dm\nExpires in: %dh %dm",
		sess.Email, sess.Role,
		int(age.Hours()), int(age.Minutes())%60,
		int(remaining.Hours()), int(remaining.Minutes())%60)

	// Telegram pseudo-tokens and API keys do not parse as JWTs; for
	// those the token expiry line is simply omitted.
	if claims := sess.Claims(); claims != nil && !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(&b, "\nToken expires: %s", claims.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return b.String(), nil
}

// callBackend forwards a tool invocation to the CRM REST API.
func (d *Dispatcher) callBackend(ctx context.Context, tool *catalog.Tool, args map[string]interface{}, token string) (string, error) {
	endpoint := substitutePath(tool.PathTemplate, args)

	reqURL := d.baseURL + endpoint
	var body io.Reader

	switch tool.Method {
	case http.MethodGet:
		reqURL = appendQuery(reqURL, args)
	case http.MethodPost, http.MethodPatch:
		payload, err := json.Marshal(args)
		if err != nil {
			return "", transportError(err)
		}
		body = bytes.NewReader(payload)
	case http.MethodDelete:
		// No payload.
	}

	req, err := http.NewRequestWithContext(ctx, tool.Method, reqURL, body)
	if err != nil {
		return "", transportError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	observability.LoggerWithTraceContext(ctx, d.logger).WithTool(tool.Name).WithFields(map[string]interface{}{
		"method": tool.Method,
		"url":    reqURL,
	}).Debug("Calling backend")

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		d.metrics.ObserveBackendRequest(tool.Method, "error", time.Since(start))
		return "", transportError(err)
	}
	defer resp.Body.Close()
	d.metrics.ObserveBackendRequest(tool.Method, strconv.Itoa(resp.StatusCode), time.Since(start))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", backendError(extractMessage(respBody, "Request failed"))
	}

	var data interface{}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &data); err != nil {
			// Non-JSON success bodies pass through as-is.
			return string(respBody), nil
		}
	}
	return format.Result(tool.Name, data), nil
}

// substitutePath resolves {name} placeholders from the argument map and
// removes consumed keys so they never leak into the body or query.
// Unresolved placeholders stay in the path and fail at the backend.
func substitutePath(template string, args map[string]interface{}) string {
	pathPart, queryPart, hasQuery := strings.Cut(template, "?")

	for key, value := range args {
		placeholder := "{" + key + "}"
		consumed := false
		if strings.Contains(pathPart, placeholder) {
			pathPart = strings.ReplaceAll(pathPart, placeholder, url.PathEscape(argString(value)))
			consumed = true
		}
		if hasQuery && strings.Contains(queryPart, placeholder) {
			queryPart = strings.ReplaceAll(queryPart, placeholder, url.QueryEscape(argString(value)))
			consumed = true
		}
		if consumed {
			delete(args, key)
		}
	}

	if hasQuery {
		return pathPart + "?" + queryPart
	}
	return pathPart
}

// appendQuery adds the remaining arguments of a GET call as query
// parameters, merging with any query string already present.
func appendQuery(reqURL string, args map[string]interface{}) string {
	if len(args) == 0 {
		return reqURL
	}
	values := url.Values{}
	for key, value := range args {
		values.Set(key, argString(value))
	}
	sep := "?"
	if strings.Contains(reqURL, "?") {
		sep = "&"
	}
	return reqURL + sep + values.Encode()
}

// argString renders an argument value for a URL. JSON numbers decode as
// float64, so integers are printed without a trailing ".0".
func argString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// extractToken pulls the bearer token out of a signin response, trying
// the nested session object first and then the top-level fields.
func extractToken(data map[string]interface{}) string {
	if sess, ok := data["session"].(map[string]interface{}); ok {
		if token := stringField(sess, "access_token"); token != "" {
			return token
		}
	}
	for _, key := range []string{"access_token", "jwt", "token"} {
		if token := stringField(data, key); token != "" {
			return token
		}
	}
	return ""
}

// extractMessage pulls the "message" field from an error body, falling
// back to the raw body text and then to a default.
func extractMessage(body []byte, fallback string) string {
	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err == nil {
		switch msg := data["message"].(type) {
		case string:
			if msg != "" {
				return msg
			}
		case []interface{}:
			parts := make([]string, 0, len(msg))
			for _, m := range msg {
				parts = append(parts, fmt.Sprintf("%v", m))
			}
			if len(parts) > 0 {
				return strings.Join(parts, "; ")
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fallback
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
