package dispatch

import "fmt"

// ErrorKind classifies dispatch failures for metrics and display.
type ErrorKind string

const (
	KindNotAuthenticated ErrorKind = "not_authenticated"
	KindForbidden        ErrorKind = "forbidden"
	KindUnknownTool      ErrorKind = "unknown_tool"
	KindBackend          ErrorKind = "backend"
	KindTransport        ErrorKind = "transport"
)

// Error is a dispatch failure. Every failure a tool call can produce is
// one of these; nothing escapes as a panic.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Text renders the failure as user-facing text with a kind-specific prefix.
func (e *Error) Text() string {
	switch e.Kind {
	case KindNotAuthenticated:
		return "Not authenticated. " + e.Message
	case KindForbidden:
		return "Permission denied: " + e.Message
	case KindUnknownTool:
		return "Unknown tool: " + e.Message
	case KindBackend:
		return "Backend error: " + e.Message
	default:
		return "Request failed: " + e.Message
	}
}

func notAuthenticated() *Error {
	return &Error{Kind: KindNotAuthenticated, Message: "Please login first or provide a valid JWT."}
}

func forbidden(reason string) *Error {
	return &Error{Kind: KindForbidden, Message: reason}
}

func unknownTool(name string) *Error {
	return &Error{Kind: KindUnknownTool, Message: name}
}

func backendError(message string) *Error {
	return &Error{Kind: KindBackend, Message: message}
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: err.Error()}
}

// ErrorText returns the display text for a dispatch failure, falling
// back to a generic rendering for unexpected error values.
func ErrorText(err error) string {
	if de, ok := err.(*Error); ok {
		return de.Text()
	}
	return fmt.Sprintf("Request failed: %v", err)
}
