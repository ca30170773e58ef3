package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation failed",

	// Configuration
	CodeConfigurationError: "Configuration error",
	CodeInvalidCredentials: "Invalid credentials",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	// Parameters
	CodeInvalidAmount:        "Invalid amount",
	CodeInvalidAddress:       "Invalid address",
	CodeInvalidSlippage:      "Slippage must be between 0 and 50 percent",
	CodeUnsupportedNetwork:   "Unsupported network",
	CodeUnsupportedOperation: "Operation is not supported",
	CodeMissingParameter:     "Missing required parameter",
	CodeInvalidRoute:         "Invalid route",

	// Upstream
	CodeUpstreamAPIError:         "1inch API Error",
	CodeDecodeFailed:             "Failed to decode upstream response",
	CodeEthereumConnectionFailed: "Failed to connect to Ethereum node",
	CodeContractCallFailed:       "Contract call failed",
	CodeCircuitOpen:              "Circuit breaker is open",
}
