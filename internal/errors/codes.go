package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
)

// Data error codes (DATA_*) for inputs below minimum cardinality
const (
	DataInsufficientExpenses ErrorCode = "DATA_001"
	DataInsufficientHistory  ErrorCode = "DATA_002"
	DataEmptyInput           ErrorCode = "DATA_003"
)

// Model error codes (MODEL_*) for trained-state failures
const (
	ModelStateCorrupt     ErrorCode = "MODEL_001"
	ModelNotTrained       ErrorCode = "MODEL_002"
	ModelTrainingFailed   ErrorCode = "MODEL_003"
	ModelComputationError ErrorCode = "MODEL_004"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemStoreError         ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",

	// Data errors
	DataInsufficientExpenses: "Not enough expenses for anomaly detection",
	DataInsufficientHistory:  "Need at least 6 months of historical data",
	DataEmptyInput:           "Input is empty after trimming",

	// Model errors
	ModelStateCorrupt:     "Persisted model state is corrupt or unreadable",
	ModelNotTrained:       "Model has not been trained",
	ModelTrainingFailed:   "Model training failed",
	ModelComputationError: "Model computation failed",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemStoreError:         "Model store error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
