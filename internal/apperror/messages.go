package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	CodeConfigurationError: "Configuration error",

	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	CodeBackendUnreachable: "Cannot connect to the trading backend",
	CodeBackendError:       "Trading backend returned an error",
	CodeBackendBadResponse: "Trading backend returned an unexpected response shape",
	CodeStoreNotFound:      "Store not found",
	CodeRateLimitExceeded:  "Rate limit exceeded",

	CodeStreamConnectionError: "Realtime stream connection error",
	CodeStreamReconnecting:    "Realtime stream reconnecting",
	CodeStreamClosed:          "Realtime stream closed",
	CodeStreamSendError:       "Failed to send realtime stream message",

	CodeOpportunityNotActionable: "Opportunity is missing a valid source or target store",
	CodeDecisionInFlight:         "A decision for this opportunity is already in flight",
	CodeTradeCreateFailed:        "Failed to create trade record",
	CodeBidCreateFailed:          "Failed to create marketplace bid",
	CodeDecisionSaveFailed:       "Failed to persist trade decision",

	CodeAnalyticsUnavailable: "Analytics endpoint unavailable",
	CodeCircuitOpen:          "Circuit breaker is open",
}
