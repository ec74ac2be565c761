package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

const (
	CodeIdentityMissing  = "E110"
	CodeBackendTransport = "E300"
	CodeBackendStatus    = "E301"
	CodeDelivery         = "E600"
	CodeInternal         = "E900"
)

// User-facing texts.
const (
	MsgIdentityMissing    = "Sorry, I couldn't identify your user ID."
	MsgBackendDown        = "Sorry, our backend service seems to be down. Please try again later."
	MsgBalanceFetchFailed = "❌ An error occurred while fetching your balance. Please try again later."
	MsgInternal           = "⚠️ Something went wrong. Please try again later."
)

type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	// StatusCode is the upstream HTTP status, zero when not applicable.
	StatusCode int
	cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

func NewIdentityError() *AppError {
	return &AppError{
		Code:        CodeIdentityMissing,
		Message:     "sender identity missing from update",
		UserMessage: MsgIdentityMissing,
		Severity:    SeverityLow,
	}
}

func NewBackendTransportError(cause error) *AppError {
	return &AppError{
		Code:        CodeBackendTransport,
		Message:     "balance backend request failed",
		UserMessage: MsgBalanceFetchFailed,
		Severity:    SeverityMedium,
		cause:       cause,
	}
}

func NewBackendStatusError(status int) *AppError {
	return &AppError{
		Code:        CodeBackendStatus,
		Message:     fmt.Sprintf("Backend service responded with status: %d", status),
		UserMessage: MsgBackendDown,
		Severity:    SeverityMedium,
		StatusCode:  status,
	}
}

func NewDeliveryError(recipient string, cause error) *AppError {
	return &AppError{
		Code:     CodeDelivery,
		Message:  fmt.Sprintf("failed to deliver message to %s", recipient),
		Severity: SeverityMedium,
		cause:    cause,
	}
}

func NewInternalError(cause error) *AppError {
	return &AppError{
		Code:        CodeInternal,
		Message:     "internal error",
		UserMessage: MsgInternal,
		Severity:    SeverityCritical,
		cause:       cause,
	}
}
