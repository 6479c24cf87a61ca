package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse wraps a success message with optional data.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PaginationData holds list paging metadata.
type PaginationData struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// PaginatedResponse wraps list data with pagination metadata.
type PaginatedResponse struct {
	Data       interface{}    `json:"data"`
	Pagination PaginationData `json:"pagination"`
}

// ValidationErrorResponse carries field-level validation detail.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func SuccessJSON(ctx *gin.Context, statusCode int, message string, data interface{}) {
	ctx.JSON(statusCode, SuccessResponse{Message: message, Data: data})
}

func ErrorJSON(ctx *gin.Context, statusCode int, message string) {
	ctx.JSON(statusCode, ErrorResponse{Error: message})
}

func ValidationErrorJSON(ctx *gin.Context, message string, fields map[string]string) {
	ctx.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: message, Fields: fields})
}

func PaginatedJSON(ctx *gin.Context, data interface{}, page, limit int, total int64) {
	if limit <= 0 {
		limit = 10
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)
	ctx.JSON(http.StatusOK, PaginatedResponse{
		Data: data,
		Pagination: PaginationData{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
			HasNext:    int64(page) < totalPages,
			HasPrev:    page > 1,
		},
	})
}

func UnauthorizedJSON(ctx *gin.Context) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized access"})
}

func ForbiddenJSON(ctx *gin.Context) {
	ctx.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Access forbidden"})
}

func NotFoundJSON(ctx *gin.Context, resource string) {
	ctx.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

func ConflictJSON(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// InternalErrorJSON hides the underlying error from clients; log it at
// the call site.
func InternalErrorJSON(ctx *gin.Context) {
	ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}
