package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Backend API error codes
const (
	CodeBackendUnreachable Code = "BACKEND_UNREACHABLE"
	CodeBackendError       Code = "BACKEND_ERROR"
	CodeBackendBadResponse Code = "BACKEND_BAD_RESPONSE"
	CodeStoreNotFound      Code = "STORE_NOT_FOUND"
	CodeRateLimitExceeded  Code = "RATE_LIMIT_EXCEEDED"
)

// Realtime stream error codes
const (
	CodeStreamConnectionError Code = "STREAM_CONNECTION_ERROR"
	CodeStreamReconnecting    Code = "STREAM_RECONNECTING"
	CodeStreamClosed          Code = "STREAM_CLOSED"
	CodeStreamSendError       Code = "STREAM_SEND_ERROR"
)

// Decision workflow error codes
const (
	CodeOpportunityNotActionable Code = "OPPORTUNITY_NOT_ACTIONABLE"
	CodeDecisionInFlight         Code = "DECISION_IN_FLIGHT"
	CodeTradeCreateFailed        Code = "TRADE_CREATE_FAILED"
	CodeBidCreateFailed          Code = "BID_CREATE_FAILED"
	CodeDecisionSaveFailed       Code = "DECISION_SAVE_FAILED"
)

// Analytics error codes (never surfaced to the operator; fallbacks apply)
const (
	CodeAnalyticsUnavailable Code = "ANALYTICS_UNAVAILABLE"
	CodeCircuitOpen          Code = "CIRCUIT_OPEN"
)
