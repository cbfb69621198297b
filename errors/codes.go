package errors

// ErrorCode identifies an application error in API responses
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED ErrorCode = 0

	// Success code mirrored from HTTP
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1002
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1004

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2001
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2002

	// Summaries
	ErrorCode_TRANSCRIPT_REQUIRED  ErrorCode = 3001
	ErrorCode_SUMMARY_NOT_FOUND    ErrorCode = 3002
	ErrorCode_SUMMARY_NOT_ARCHIVED ErrorCode = 3003

	// AI
	ErrorCode_AI_SUMMARY_FAILED       ErrorCode = 4001
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 4002
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 4003
	ErrorCode_AI_QUOTA_EXCEEDED       ErrorCode = 4004

	// Uploads
	ErrorCode_UPLOAD_TOO_LARGE  ErrorCode = 5001
	ErrorCode_UNSUPPORTED_MEDIA ErrorCode = 5002

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 6001
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 6002
	ErrorCode_DB_QUERY_FAILED            ErrorCode = 6003
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:                "UNSPECIFIED",
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_TRANSCRIPT_REQUIRED:        "TRANSCRIPT_REQUIRED",
	ErrorCode_SUMMARY_NOT_FOUND:          "SUMMARY_NOT_FOUND",
	ErrorCode_SUMMARY_NOT_ARCHIVED:       "SUMMARY_NOT_ARCHIVED",
	ErrorCode_AI_SUMMARY_FAILED:          "AI_SUMMARY_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:     "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_QUOTA_EXCEEDED:          "AI_QUOTA_EXCEEDED",
	ErrorCode_UPLOAD_TOO_LARGE:           "UPLOAD_TOO_LARGE",
	ErrorCode_UNSUPPORTED_MEDIA:          "UNSUPPORTED_MEDIA",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
