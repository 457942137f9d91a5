// Package errors provides centralized error definitions and error handling
// utilities for the HotTake codebase. It defines domain-specific errors,
// semantic error types, error constructors with context wrapping, and error
// classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - ProfileError: errors related to the local profile store
//   - DirectoryError: errors related to the remote debate directory
//   - SessionError: errors related to the debate session workflow
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found
//   - ValidationError: invalid input or state
//   - NetworkError: a remote call failed
//
// # Usage
//
// Creating errors:
//
//	// Domain-specific error
//	err := errors.NewProfileError("failed to load profile", errors.ErrMalformedProfile)
//
//	// Semantic error
//	err := errors.NewNotFoundError("debate", "d1")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrDebateNotFound) { ... }
//
//	var netErr *errors.NetworkError
//	if errors.As(err, &netErr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
//
// # Error Classification
//
// Errors can be classified by severity and behavior:
//   - Retryable: transient errors that may succeed on retry
//   - UserFacing: errors safe to display to users (vs internal errors)
//   - Severity: Debug, Info, Warning, Error, Critical
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Profile-related sentinel errors
var (
	// ErrProfileNotFound indicates that no profile has been persisted yet.
	ErrProfileNotFound = New("profile not found")
	// ErrMalformedProfile indicates that the persisted profile payload could
	// not be decoded. Callers treat this the same as an absent profile.
	ErrMalformedProfile = New("persisted profile is malformed")
	// ErrProfileIdentity indicates an attempt to change an assigned profile id.
	ErrProfileIdentity = New("profile identity is immutable")
)

// Directory-related sentinel errors
var (
	// ErrDebateNotFound indicates that the server reported no debate for the id.
	ErrDebateNotFound = New("debate not found")
	// ErrDirectoryUnavailable indicates that the directory API could not be reached.
	ErrDirectoryUnavailable = New("debate directory unavailable")
)

// Session-related sentinel errors
var (
	// ErrNoSelection indicates a confirm without a selected debate.
	ErrNoSelection = New("no debate selected")
	// ErrNotInSession indicates an in-session control used outside a session.
	ErrNotInSession = New("not in a session")
	// ErrStaleResponse indicates a superseded fetch result that was discarded.
	ErrStaleResponse = New("stale response discarded")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrOperationFailed indicates a general operation failure.
	ErrOperationFailed = New("operation failed")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// HotTakeError is the base interface for all HotTake errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type HotTakeError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ProfileError represents errors related to the local profile store.
//
// Example:
//
//	err := errors.NewProfileError("failed to persist profile", cause)
//	err = err.WithProfileID("abc123")
type ProfileError struct {
	baseError
	ProfileID string
}

// NewProfileError creates a new ProfileError.
func NewProfileError(message string, cause error) *ProfileError {
	return &ProfileError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithProfileID adds a profile ID to the error context.
func (e *ProfileError) WithProfileID(id string) *ProfileError {
	e.ProfileID = id
	return e
}

// WithSeverity sets the error severity.
func (e *ProfileError) WithSeverity(s Severity) *ProfileError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *ProfileError) Error() string {
	prefix := "profile error"
	if e.ProfileID != "" {
		prefix = fmt.Sprintf("profile error [profile=%s]", e.ProfileID)
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ProfileError) Is(target error) bool {
	if _, ok := target.(*ProfileError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// DirectoryError represents errors from the remote debate directory.
//
// Example:
//
//	err := errors.NewDirectoryError("list debates failed", cause).
//		WithOperation("list").WithStatusCode(502)
type DirectoryError struct {
	baseError
	Operation  string
	DebateID   string
	StatusCode int
}

// NewDirectoryError creates a new DirectoryError.
func NewDirectoryError(message string, cause error) *DirectoryError {
	return &DirectoryError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  true,
			userFacing: true,
		},
	}
}

// WithOperation adds the directory operation name to the error context.
func (e *DirectoryError) WithOperation(op string) *DirectoryError {
	e.Operation = op
	return e
}

// WithDebateID adds a debate ID to the error context.
func (e *DirectoryError) WithDebateID(id string) *DirectoryError {
	e.DebateID = id
	return e
}

// WithStatusCode adds the HTTP status code to the error context.
func (e *DirectoryError) WithStatusCode(code int) *DirectoryError {
	e.StatusCode = code
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *DirectoryError) WithRetryable(r bool) *DirectoryError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *DirectoryError) Error() string {
	var parts []string
	if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Operation))
	}
	if e.DebateID != "" {
		parts = append(parts, fmt.Sprintf("debate=%s", e.DebateID))
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	prefix := "directory error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("directory error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *DirectoryError) Is(target error) bool {
	if _, ok := target.(*DirectoryError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// SessionError represents errors related to the debate session workflow.
type SessionError struct {
	baseError
	DebateID string
	State    string
}

// NewSessionError creates a new SessionError.
func NewSessionError(message string, cause error) *SessionError {
	return &SessionError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithDebateID adds a debate ID to the error context.
func (e *SessionError) WithDebateID(id string) *SessionError {
	e.DebateID = id
	return e
}

// WithState adds the workflow state to the error context.
func (e *SessionError) WithState(state string) *SessionError {
	e.State = state
	return e
}

// Error returns the formatted error message.
func (e *SessionError) Error() string {
	var parts []string
	if e.DebateID != "" {
		parts = append(parts, fmt.Sprintf("debate=%s", e.DebateID))
	}
	if e.State != "" {
		parts = append(parts, fmt.Sprintf("state=%s", e.State))
	}

	prefix := "session error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("session error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *SessionError) Is(target error) bool {
	if _, ok := target.(*SessionError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("debate", "d1")
//	fmt.Println(err) // "debate 'd1' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	if e.ResourceType == "debate" && errors.Is(target, ErrDebateNotFound) {
		return true
	}
	if e.ResourceType == "profile" && errors.Is(target, ErrProfileNotFound) {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("title cannot be empty")
//	err = err.WithField("title").WithValue("")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// NetworkError represents a failed remote call. Network errors are never
// fatal: they surface as a banner in the initiating view and the user may
// retry by repeating the action.
//
// Example:
//
//	err := errors.NewNetworkError("GET /debates", cause)
type NetworkError struct {
	baseError
	Endpoint   string
	StatusCode int
}

// NewNetworkError creates a new NetworkError.
func NewNetworkError(endpoint string, cause error) *NetworkError {
	return &NetworkError{
		baseError: baseError{
			message:    fmt.Sprintf("request to %s failed", endpoint),
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  true,
			userFacing: true,
		},
		Endpoint: endpoint,
	}
}

// WithStatusCode adds the HTTP status code to the error context.
func (e *NetworkError) WithStatusCode(code int) *NetworkError {
	e.StatusCode = code
	return e
}

// Error returns the formatted error message.
func (e *NetworkError) Error() string {
	base := fmt.Sprintf("network error: request to %s failed", e.Endpoint)
	if e.StatusCode != 0 {
		base = fmt.Sprintf("%s (status %d)", base, e.StatusCode)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

// Is checks if this error matches the target.
func (e *NetworkError) Is(target error) bool {
	if _, ok := target.(*NetworkError); ok {
		return true
	}
	if errors.Is(target, ErrDirectoryUnavailable) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var hotTakeErr HotTakeError
	if As(err, &hotTakeErr) {
		return hotTakeErr.IsRetryable()
	}

	if Is(err, ErrDirectoryUnavailable) {
		return true
	}

	return false
}

// IsUserFacing returns true if the error message is safe to display to end
// users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var hotTakeErr HotTakeError
	if As(err, &hotTakeErr) {
		return hotTakeErr.IsUserFacing()
	}

	var notFound *NotFoundError
	var validation *ValidationError
	var network *NetworkError

	if As(err, &notFound) || As(err, &validation) || As(err, &network) {
		return true
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement HotTakeError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var hotTakeErr HotTakeError
	if As(err, &hotTakeErr) {
		return hotTakeErr.Severity()
	}

	return SeverityError
}

// IsNotFound returns true if the error indicates a missing remote entity.
// This is distinct from a generic network failure so callers can surface
// "debate no longer exists" instead of "directory unreachable".
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var notFound *NotFoundError
	if As(err, &notFound) {
		return true
	}
	return Is(err, ErrDebateNotFound) || Is(err, ErrProfileNotFound)
}

// IsValidation returns true if the error is a local validation failure.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}

	var validation *ValidationError
	if As(err, &validation) {
		return true
	}
	return Is(err, ErrInvalidInput)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to refresh debates")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to join debate %s", debateID)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
