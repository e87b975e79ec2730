// Package errors provides typed errors for the analyzer.
// This file contains the analyzer-specific error codes and factories.
package errors

import "sync"

// Error codes used across the analyzer.
const (
	// Parsing
	CodeYAMLSyntax   = "yaml_syntax"
	CodeFileRead     = "file_read_error"
	CodeFileNotFound = "file_not_found"

	// Configuration
	CodeConfigLoad    = "config_load"
	CodeConfigInvalid = "config_invalid"

	// Extraction
	CodeExtractionPanic = "extraction_panic"
	CodeDepthExceeded   = "depth_exceeded"

	// Knowledge sources
	CodeHistoryUnavailable    = "history_unavailable"
	CodeHistoryTimeout        = "history_timeout"
	CodeCapabilityUnavailable = "capability_unavailable"
	CodeRegistryUnavailable   = "registry_unavailable"
	CodeRecorderQuery         = "recorder_query"

	// Home Assistant transport
	CodeWebsocket    = "websocket_error"
	CodeAuthFailed   = "auth_failed"
	CodeHTTPStatus   = "http_status"
	CodeResponseJSON = "response_json"
)

// ErrorDefinition describes a registered error code.
type ErrorDefinition struct {
	Code    string
	Type    ErrorType
	Message string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]ErrorDefinition)
)

// Register adds an error definition to the registry. Later registrations
// with the same code replace earlier ones.
func Register(def ErrorDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[def.Code] = def
}

// Create builds an Error from a registered code. Unregistered codes produce
// an internal error carrying the code verbatim.
func Create(code string) *Error {
	registryMu.RLock()
	def, ok := registry[code]
	registryMu.RUnlock()
	if !ok {
		return &Error{Type: ErrorTypeInternal, Code: code, Message: "unregistered error code"}
	}
	return &Error{Type: def.Type, Code: def.Code, Message: def.Message}
}

func init() {
	Register(ErrorDefinition{Code: CodeYAMLSyntax, Type: ErrorTypeParse, Message: "YAML syntax error"})
	Register(ErrorDefinition{Code: CodeFileRead, Type: ErrorTypeParse, Message: "failed to read file"})
	Register(ErrorDefinition{Code: CodeFileNotFound, Type: ErrorTypeParse, Message: "file not found"})

	Register(ErrorDefinition{Code: CodeConfigLoad, Type: ErrorTypeConfig, Message: "failed to load configuration"})
	Register(ErrorDefinition{Code: CodeConfigInvalid, Type: ErrorTypeConfig, Message: "invalid configuration value"})

	Register(ErrorDefinition{Code: CodeExtractionPanic, Type: ErrorTypeExtraction, Message: "extraction failed for automation"})
	Register(ErrorDefinition{Code: CodeDepthExceeded, Type: ErrorTypeExtraction, Message: "recursion depth budget exhausted"})

	Register(ErrorDefinition{Code: CodeHistoryUnavailable, Type: ErrorTypeProvider, Message: "history source unavailable"})
	Register(ErrorDefinition{Code: CodeHistoryTimeout, Type: ErrorTypeProvider, Message: "history load timed out"})
	Register(ErrorDefinition{Code: CodeCapabilityUnavailable, Type: ErrorTypeProvider, Message: "capability snapshot unavailable"})
	Register(ErrorDefinition{Code: CodeRegistryUnavailable, Type: ErrorTypeProvider, Message: "registry fetch failed"})
	Register(ErrorDefinition{Code: CodeRecorderQuery, Type: ErrorTypeProvider, Message: "recorder query failed"})

	Register(ErrorDefinition{Code: CodeWebsocket, Type: ErrorTypeProvider, Message: "websocket error"})
	Register(ErrorDefinition{Code: CodeAuthFailed, Type: ErrorTypeProvider, Message: "authentication failed"})
	Register(ErrorDefinition{Code: CodeHTTPStatus, Type: ErrorTypeProvider, Message: "unexpected HTTP status"})
	Register(ErrorDefinition{Code: CodeResponseJSON, Type: ErrorTypeProvider, Message: "failed to decode response"})
}

// ErrYAMLSyntax creates a YAML syntax error.
func ErrYAMLSyntax(path string, cause error) *Error {
	return Create(CodeYAMLSyntax).WithPath(path).WithCause(cause)
}

// ErrFileRead creates a file read error.
func ErrFileRead(path string, cause error) *Error {
	return Create(CodeFileRead).WithPath(path).WithCause(cause)
}

// ErrHistoryTimeout creates a history load timeout error.
func ErrHistoryTimeout(cause error) *Error {
	return Create(CodeHistoryTimeout).WithCause(cause)
}

// ErrRecorderQuery creates a recorder query error.
func ErrRecorderQuery(cause error) *Error {
	return Create(CodeRecorderQuery).WithCause(cause)
}

// ErrHTTPStatus creates an unexpected-status error.
func ErrHTTPStatus(status int, body string) *Error {
	return Create(CodeHTTPStatus).WithMessagef("unexpected HTTP status %d: %s", status, body)
}
