package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPayload       ErrorCode = 102

	// Store errors (200-299)
	ErrCodeStoreUnavailable ErrorCode = 200
	ErrCodeCreateFailed     ErrorCode = 201
	ErrCodeQueryFailed      ErrorCode = 202

	// Quote errors (700-799)
	ErrCodeSymbolNotFound   ErrorCode = 700
	ErrCodeNoUsableData     ErrorCode = 701
	ErrCodeQuoteFetchFailed ErrorCode = 702
)

// IsQuoteCode reports whether the code belongs to the quote error category.
func IsQuoteCode(code ErrorCode) bool {
	return code >= 700 && code <= 799
}
