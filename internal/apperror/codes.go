package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_FAILED"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Amount, address and parameter errors raised before any request leaves the process.
const (
	CodeInvalidAmount        Code = "INVALID_AMOUNT"
	CodeInvalidAddress       Code = "INVALID_ADDRESS"
	CodeInvalidSlippage      Code = "INVALID_SLIPPAGE"
	CodeUnsupportedNetwork   Code = "UNSUPPORTED_NETWORK"
	CodeUnsupportedOperation Code = "UNSUPPORTED_OPERATION"
	CodeMissingParameter     Code = "MISSING_PARAMETER"
	CodeInvalidRoute         Code = "INVALID_ROUTE"
)

// Upstream errors
const (
	// 1inch REST API
	CodeUpstreamAPIError Code = "UPSTREAM_API_ERROR"
	CodeDecodeFailed     Code = "DECODE_FAILED"

	// Ethereum RPC
	CodeEthereumConnectionFailed Code = "ETHEREUM_CONNECTION_FAILED"
	CodeContractCallFailed       Code = "CONTRACT_CALL_FAILED"

	// Circuit breaker errors
	CodeCircuitOpen Code = "CIRCUIT_OPEN"
)
