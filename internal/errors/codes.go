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
	ValidationConstraint    ErrorCode = "VALIDATION_006"
)

// User error codes (USER_*)
const (
	UserNotFound  ErrorCode = "USER_001"
	UserInvalidID ErrorCode = "USER_002"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound      ErrorCode = "ACCOUNT_001"
	AccountInvalidID     ErrorCode = "ACCOUNT_002"
	AccountOwnerNotFound ErrorCode = "ACCOUNT_003"
)

// Asset error codes (ASSET_*)
const (
	AssetNotFound        ErrorCode = "ASSET_001"
	AssetInvalidID       ErrorCode = "ASSET_002"
	AssetAccountNotFound ErrorCode = "ASSET_003"
	AssetPriceNotFound   ErrorCode = "ASSET_004"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
	SystemRouteNotFound      ErrorCode = "SYSTEM_007"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",
	ValidationConstraint:    "Record violates a data constraint",

	// User errors
	UserNotFound:  "User not found",
	UserInvalidID: "Invalid user ID",

	// Account errors
	AccountNotFound:      "Account not found",
	AccountInvalidID:     "Invalid account ID",
	AccountOwnerNotFound: "The user owning this account does not exist",

	// Asset errors
	AssetNotFound:        "Asset not found",
	AssetInvalidID:       "Invalid asset ID",
	AssetAccountNotFound: "The account holding this asset does not exist",
	AssetPriceNotFound:   "No closing price recorded for this asset",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemRouteNotFound:      "Resource not found",
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
