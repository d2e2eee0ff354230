// internal/api/types/response.go
package types

// PaginatedResponse defines a generic structure for paginated API responses.
type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"total_count"`
}

// ErrorBody is the stable error envelope: a machine-readable kind and a
// human-readable message, never stack traces or internal identifiers.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ErrorResponse wraps an ErrorBody.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
