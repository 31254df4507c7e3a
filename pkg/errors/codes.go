package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_005"
	ErrCodeValidation         ErrorCode = "COMMON_007"
	ErrCodeSerialization      ErrorCode = "COMMON_008"
	ErrCodeCacheError         ErrorCode = "COMMON_009"

	// CodeOK is the sentinel for "no error" returned by GetCode(nil).
	CodeOK      ErrorCode = "OK"
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Scoring Model Error Codes
const (
	ErrCodeModelEmptyImportance ErrorCode = "MODEL_001"
	ErrCodeModelSnapshotInvalid ErrorCode = "MODEL_002"
	ErrCodeModelSaveFailed      ErrorCode = "MODEL_003"
	ErrCodeModelLoadFailed      ErrorCode = "MODEL_004"
	ErrCodeModelParamInvalid    ErrorCode = "MODEL_005"
)

// Forecast Module Error Codes
const (
	ErrCodeForecastTimeframeUnknown ErrorCode = "FCST_001"
	ErrCodeForecastStoreFailed      ErrorCode = "FCST_002"
	ErrCodeForecastCycleFailed      ErrorCode = "FCST_003"
)

// Watchlist Module Error Codes
const (
	ErrCodeWatchlistDuplicateEntry ErrorCode = "WTC_001"
	ErrCodeWatchlistEntryNotFound  ErrorCode = "WTC_002"
	ErrCodeWatchlistStoreFailed    ErrorCode = "WTC_003"
)

// Content Store Error Codes
const (
	ErrCodeContentUnreadable ErrorCode = "SRC_001"
	ErrCodeContentMalformed  ErrorCode = "SRC_002"
)

// Persistence Error Codes
const (
	ErrCodeStoreWriteFailed ErrorCode = "STORE_001"
	ErrCodeStoreReadFailed  ErrorCode = "STORE_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,

	ErrCodeModelEmptyImportance: http.StatusUnprocessableEntity,
	ErrCodeModelSnapshotInvalid: http.StatusInternalServerError,
	ErrCodeModelSaveFailed:      http.StatusInternalServerError,
	ErrCodeModelLoadFailed:      http.StatusInternalServerError,
	ErrCodeModelParamInvalid:    http.StatusBadRequest,

	ErrCodeForecastTimeframeUnknown: http.StatusNotFound,
	ErrCodeForecastStoreFailed:      http.StatusInternalServerError,
	ErrCodeForecastCycleFailed:      http.StatusInternalServerError,

	ErrCodeWatchlistDuplicateEntry: http.StatusConflict,
	ErrCodeWatchlistEntryNotFound:  http.StatusNotFound,
	ErrCodeWatchlistStoreFailed:    http.StatusInternalServerError,

	ErrCodeContentUnreadable: http.StatusBadGateway,
	ErrCodeContentMalformed:  http.StatusBadGateway,

	ErrCodeStoreWriteFailed: http.StatusInternalServerError,
	ErrCodeStoreReadFailed:  http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",

	ErrCodeModelEmptyImportance: "feature-importance map is empty",
	ErrCodeModelSnapshotInvalid: "model snapshot is invalid",
	ErrCodeModelSaveFailed:      "failed to save model snapshot",
	ErrCodeModelLoadFailed:      "failed to load model snapshot",
	ErrCodeModelParamInvalid:    "invalid model parameter",

	ErrCodeForecastTimeframeUnknown: "unknown forecast timeframe",
	ErrCodeForecastStoreFailed:      "failed to persist forecasts",
	ErrCodeForecastCycleFailed:      "forecast cycle failed",

	ErrCodeWatchlistDuplicateEntry: "entry already present in watchlist",
	ErrCodeWatchlistEntryNotFound:  "entry not present in watchlist",
	ErrCodeWatchlistStoreFailed:    "failed to persist watchlist",

	ErrCodeContentUnreadable: "content document unreadable",
	ErrCodeContentMalformed:  "content document malformed",

	ErrCodeStoreWriteFailed: "store write failed",
	ErrCodeStoreReadFailed:  "store read failed",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
